package advisor

import (
	"context"

	"github.com/jonathan/job-advisor/internal/llm"
	"github.com/jonathan/job-advisor/internal/prompts"
	"github.com/jonathan/job-advisor/internal/types"
)

// The positive and negative scans share one system message but different
// output schemas. They are issued as two independent calls; a single call
// cannot be relied on to satisfy both schemas at once.

// PositiveContentScan maps the description onto the eight recommended
// job-posting sections, flagging which are present.
func (a *Advisor) PositiveContentScan(ctx context.Context, jobDescription string) (*types.PositiveContentCheck, error) {
	var out types.PositiveContentCheck
	err := a.structured(ctx, "positive_scan", llm.Request{
		Model:         a.models.Chat,
		SystemMessage: prompts.MustGet(prompts.KeyScanJobDescription),
		UserMessage:   jobDescription,
	}, types.PositiveContentCheckSchema, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// NegativeContentScan flags discouraged requirements in the description:
// years of experience and formal education.
func (a *Advisor) NegativeContentScan(ctx context.Context, jobDescription string) (*types.NegativeContentCheck, error) {
	var out types.NegativeContentCheck
	err := a.structured(ctx, "negative_scan", llm.Request{
		Model:         a.models.Chat,
		SystemMessage: prompts.MustGet(prompts.KeyScanJobDescription),
		UserMessage:   jobDescription,
	}, types.NegativeContentCheckSchema, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
