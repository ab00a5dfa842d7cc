package advisor

import "errors"

// RejectionMessage is returned verbatim to callers whose input fails the
// gate. Rejection is a user-facing outcome, not a service failure.
const RejectionMessage = "Please enter a valid job title/description."

var (
	// ErrClassifierContract reports a zero-shot classifier reply outside
	// {0,1}. The calling contract assumes exactly two possible values, so
	// anything else is a defect to surface, not a value to coerce.
	ErrClassifierContract = errors.New("classifier returned a token outside {0,1}")

	// ErrRetrievalShortfall reports that the index returned fewer extracts
	// than the job-design prompt requires. Padding with empty extracts would
	// silently malform the prompt, so this is an error.
	ErrRetrievalShortfall = errors.New("retrieval returned fewer extracts than required")
)
