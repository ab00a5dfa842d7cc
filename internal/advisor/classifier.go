package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/job-advisor/internal/llm"
	"github.com/jonathan/job-advisor/internal/metrics"
	"github.com/jonathan/job-advisor/internal/prompts"
	"github.com/jonathan/job-advisor/internal/types"
)

// binaryLogitBias pins the reply vocabulary to the digit tokens for "0" and
// "1" (cl100k token IDs 15 and 16). Together with MaxTokens=1 this guarantees
// the classifier can only ever answer binary.
var binaryLogitBias = map[string]int{"15": 100, "16": 100}

// zeroShot runs a one-token binary classification on the primary backend and
// returns 0 or 1. Any other reply is ErrClassifierContract.
func (a *Advisor) zeroShot(ctx context.Context, op, systemMessage, text string) (int, error) {
	start := time.Now()
	raw, err := a.primary.Complete(ctx, llm.Request{
		Model:         a.models.Chat,
		SystemMessage: systemMessage,
		UserMessage:   text,
		MaxTokens:     1,
		LogitBias:     binaryLogitBias,
	})

	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
	}
	a.metrics.RecordCall(op, backendAzure, status, time.Since(start))
	if err != nil {
		return 0, err
	}

	switch strings.TrimSpace(raw) {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	}
	return 0, fmt.Errorf("%w: got %q", ErrClassifierContract, raw)
}

// CheckTitleAccuracy classifies whether the job title matches the job
// description. Returns 1 for a match, 0 otherwise.
func (a *Advisor) CheckTitleAccuracy(ctx context.Context, in types.JobPostingInput) (int, error) {
	return a.zeroShot(ctx, "title_check",
		prompts.MustGet(prompts.KeyClassifyTitleAccuracy),
		prompts.JobPosting(in.JobTitle, in.JobDescription))
}
