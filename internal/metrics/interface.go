// Package metrics provides Prometheus instrumentation for LLM and retrieval
// calls, plus a no-op collector for tests.
package metrics

import "time"

// Collector records call-level instrumentation. Implementations must be safe
// for concurrent use.
type Collector interface {
	// RecordCall records one backend call with its outcome and duration.
	RecordCall(operation, backend, status string, duration time.Duration)

	// RecordValidationRetry records one structured-output validation miss.
	RecordValidationRetry(operation string)
}

// Call statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
