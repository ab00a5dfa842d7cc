package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-advisor/internal/advisor"
	"github.com/jonathan/job-advisor/internal/types"
)

func TestTitleCheckReturnsClassification(t *testing.T) {
	adv := &stubAdvisor{titleMatch: 1}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/title_check", testAPIKey, validPayload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "1", rec.Body.String())
	assert.Equal(t, 1, adv.gateCalls)
	assert.Equal(t, 1, adv.downstreamCalls)
}

func TestGateRejectionReturnsFixedMessage(t *testing.T) {
	// Nonsense input is answered with the rejection string as an ordinary
	// 200, and nothing downstream runs.
	adv := &stubAdvisor{bad: true}
	s := newTestServer(adv)

	endpoints := []string{
		"/title_check",
		"/alt_titles",
		"/positive_content_check",
		"/negative_content_check",
		"/job_design_suggestions",
		"/rewrite_jd",
	}
	payload := `{"job_title": "asdkjh", "job_description": "qwdqwd"}`
	for _, endpoint := range endpoints {
		rec := doRequest(t, s, http.MethodPost, endpoint, testAPIKey, payload)
		require.Equal(t, http.StatusOK, rec.Code, endpoint)
		assert.JSONEq(t, fmt.Sprintf("%q", advisor.RejectionMessage), rec.Body.String(), endpoint)
	}
	assert.Zero(t, adv.downstreamCalls, "rejected input must not reach generation")
}

func TestGateFailureIsServiceFailure(t *testing.T) {
	adv := &stubAdvisor{gateErr: errors.New("backend down")}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/title_check", testAPIKey, validPayload)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAltTitles(t *testing.T) {
	adv := &stubAdvisor{titles: []string{"Backend Engineer", "Platform Engineer"}}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/alt_titles", testAPIKey, validPayload)
	require.Equal(t, http.StatusOK, rec.Code)

	var titles []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &titles))
	assert.Equal(t, []string{"Backend Engineer", "Platform Engineer"}, titles)
}

func TestPositiveContentCheckShape(t *testing.T) {
	adv := &stubAdvisor{positive: &types.PositiveContentCheck{
		EmployeeValueProposition: true,
		ExampleActivities:        true,
	}}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/positive_content_check", testAPIKey, validPayload)
	require.Equal(t, http.StatusOK, rec.Code)

	var fields map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Len(t, fields, 8)
	assert.True(t, fields["employee_value_proposition"])
	assert.False(t, fields["required_certification"])
}

func TestNegativeContentCheckShape(t *testing.T) {
	adv := &stubAdvisor{negative: &types.NegativeContentCheck{RequiredYearsOfExperience: true}}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/negative_content_check", testAPIKey, validPayload)
	require.Equal(t, http.StatusOK, rec.Code)

	var fields map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Len(t, fields, 2)
	assert.True(t, fields["required_years_of_experience"])
	assert.False(t, fields["required_formal_education"])
}

func TestJobDesignSuggestionsStreams(t *testing.T) {
	adv := &stubAdvisor{streamText: "Consider rotating on-call duties."}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/job_design_suggestions", testAPIKey, validPayload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Consider rotating on-call duties.", rec.Body.String())
	assert.False(t, adv.lastFast)
}

func TestStreamingFastFlag(t *testing.T) {
	adv := &stubAdvisor{streamText: "quick"}
	s := newTestServer(adv)

	payload := `{"job_title": "Software Engineer", "job_description": "Develop services.", "fast": true}`
	rec := doRequest(t, s, http.MethodPost, "/rewrite_jd", testAPIKey, payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, adv.lastFast)
}

func TestJobDesignSuggestionsShortfall(t *testing.T) {
	adv := &stubAdvisor{suggestErr: fmt.Errorf("%w: got 4, need 5", advisor.ErrRetrievalShortfall)}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/job_design_suggestions", testAPIKey, validPayload)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStreamErrorEmitsErrorEvent(t *testing.T) {
	adv := &stubAdvisor{streamText: "partial output ", streamErr: errors.New("stream reset")}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/rewrite_jd", testAPIKey, validPayload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "partial output")
	assert.Contains(t, rec.Body.String(), "event: error")
}

func TestRewriteStreamsFullBody(t *testing.T) {
	adv := &stubAdvisor{streamText: "**Job Summary**\nBuild things that last."}
	s := newTestServer(adv)

	rec := doRequest(t, s, http.MethodPost, "/rewrite_jd", testAPIKey, validPayload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "**Job Summary**\nBuild things that last.", rec.Body.String())
}
