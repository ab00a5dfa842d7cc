package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/job-advisor/internal/advisor"
	"github.com/jonathan/job-advisor/internal/types"
)

// streamRequest is the payload for the two streaming endpoints. fast opts
// into the faster alternative backend for generation.
type streamRequest struct {
	types.JobPostingInput
	Fast bool `json:"fast,omitempty"`
}

// decodeInput parses and validates the request payload. On failure it has
// already written a 400 response and returns false.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request, dst interface {
	Validate() error
}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	if err := dst.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_title and job_description are required")
		return false
	}
	return true
}

// gate runs the input-plausibility check shared by every endpoint. When the
// input is rejected it has already written the fixed rejection message (an
// ordinary 200, not an HTTP error) and returns false. A gate failure is a
// service failure, also already written.
func (s *Server) gate(w http.ResponseWriter, r *http.Request, in types.JobPostingInput) bool {
	bad, err := s.advisor.IsBadInput(r.Context(), in)
	if err != nil {
		s.serviceFailure(w, r, err)
		return false
	}
	if bad {
		s.jsonResponse(w, http.StatusOK, advisor.RejectionMessage)
		return false
	}
	return true
}

func (s *Server) serviceFailure(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	s.errorResponse(w, HTTPStatus(err), "failed to process request")
}

// handleTitleCheck classifies whether the title matches the description,
// returning 1 or 0.
func (s *Server) handleTitleCheck(w http.ResponseWriter, r *http.Request) {
	var in types.JobPostingInput
	if !s.decodeInput(w, r, &in) || !s.gate(w, r, in) {
		return
	}

	match, err := s.advisor.CheckTitleAccuracy(r.Context(), in)
	if err != nil {
		s.serviceFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, match)
}

// handleAltTitles returns 1 to 3 alternative job titles.
func (s *Server) handleAltTitles(w http.ResponseWriter, r *http.Request) {
	var in types.JobPostingInput
	if !s.decodeInput(w, r, &in) || !s.gate(w, r, in) {
		return
	}

	titles, err := s.advisor.AlternativeTitles(r.Context(), in)
	if err != nil {
		s.serviceFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, titles)
}

// handlePositiveContentCheck reports which recommended sections the
// description already covers.
func (s *Server) handlePositiveContentCheck(w http.ResponseWriter, r *http.Request) {
	var in types.JobPostingInput
	if !s.decodeInput(w, r, &in) || !s.gate(w, r, in) {
		return
	}

	result, err := s.advisor.PositiveContentScan(r.Context(), in.JobDescription)
	if err != nil {
		s.serviceFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleNegativeContentCheck reports discouraged requirements found in the
// description.
func (s *Server) handleNegativeContentCheck(w http.ResponseWriter, r *http.Request) {
	var in types.JobPostingInput
	if !s.decodeInput(w, r, &in) || !s.gate(w, r, in) {
		return
	}

	result, err := s.advisor.NegativeContentScan(r.Context(), in.JobDescription)
	if err != nil {
		s.serviceFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleJobDesignSuggestions streams re-design recommendations grounded in
// the report-extract index.
func (s *Server) handleJobDesignSuggestions(w http.ResponseWriter, r *http.Request) {
	var req streamRequest
	if !s.decodeInput(w, r, &req) || !s.gate(w, r, req.JobPostingInput) {
		return
	}

	frags, errs, err := s.advisor.DesignSuggestions(r.Context(), req.JobPostingInput, req.Fast)
	if err != nil {
		s.serviceFailure(w, r, err)
		return
	}
	s.streamResponse(w, r, frags, errs)
}

// handleRewriteJD streams a rewritten job posting.
func (s *Server) handleRewriteJD(w http.ResponseWriter, r *http.Request) {
	var req streamRequest
	if !s.decodeInput(w, r, &req) || !s.gate(w, r, req.JobPostingInput) {
		return
	}

	frags, errs := s.advisor.Rewrite(r.Context(), req.JobPostingInput, req.Fast)
	s.streamResponse(w, r, frags, errs)
}

// streamResponse forwards fragments to the client until generation finishes
// or the client disconnects. Disconnection cancels the request context,
// which abandons the upstream generation.
func (s *Server) streamResponse(w http.ResponseWriter, r *http.Request, frags <-chan string, errs <-chan error) {
	sw, err := NewStreamWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	for frag := range frags {
		if err := sw.WriteFragment(frag); err != nil {
			// Client went away; the context cancellation stops generation.
			return
		}
	}

	if err := <-errs; err != nil && r.Context().Err() == nil {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("stream failed")
		sw.WriteError("generation failed")
	}
}
