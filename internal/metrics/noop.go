package metrics

import "time"

// Noop is a Collector that discards everything. Useful in tests and when
// metrics are disabled.
type Noop struct{}

// RecordCall does nothing.
func (Noop) RecordCall(string, string, string, time.Duration) {}

// RecordValidationRetry does nothing.
func (Noop) RecordValidationRetry(string) {}
