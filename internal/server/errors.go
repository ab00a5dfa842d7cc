package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/job-advisor/internal/advisor"
	"github.com/jonathan/job-advisor/internal/llm"
)

// HTTPStatus returns the appropriate HTTP status code for an error
// surfacing from the orchestration layer. Gate rejections never reach
// here; they are answered with the fixed rejection message instead.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, llm.ErrValidationExhausted),
		errors.Is(err, advisor.ErrClassifierContract):
		return http.StatusInternalServerError
	case errors.Is(err, advisor.ErrRetrievalShortfall):
		// The index is under-populated; retrying without an ingest run
		// cannot succeed.
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
