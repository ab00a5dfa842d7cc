package advisor

import (
	"context"

	"github.com/jonathan/job-advisor/internal/prompts"
	"github.com/jonathan/job-advisor/internal/types"
	"golang.org/x/sync/errgroup"
)

// IsBadInput is the guardrail in front of every use case: two cheap,
// one-token classifications decide whether the title plausibly is a job title
// and the description plausibly describes a job. Both must pass for the input
// to be accepted; the checks are independent and run concurrently. A true
// result means "reject" — no downstream generation call should be made.
func (a *Advisor) IsBadInput(ctx context.Context, in types.JobPostingInput) (bool, error) {
	g, ctx := errgroup.WithContext(ctx)

	var titleOK, descOK int
	g.Go(func() error {
		v, err := a.zeroShot(ctx, "gate_title", prompts.MustGet(prompts.KeyClassifyJobTitle), in.JobTitle)
		titleOK = v
		return err
	})
	g.Go(func() error {
		v, err := a.zeroShot(ctx, "gate_description", prompts.MustGet(prompts.KeyClassifyJobDescription), in.JobDescription)
		descOK = v
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	return !(titleOK == 1 && descOK == 1), nil
}
