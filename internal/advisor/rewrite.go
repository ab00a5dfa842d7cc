package advisor

import (
	"context"

	"github.com/jonathan/job-advisor/internal/prompts"
	"github.com/jonathan/job-advisor/internal/types"
)

// Rewrite streams a restructured job posting following the fixed section
// template. Sections without supporting evidence in the input are filled with
// placeholder text by contract of the system message; the orchestration layer
// preserves that policy in the prompt asset rather than enforcing it
// programmatically. fast selects the alternative streaming backend.
func (a *Advisor) Rewrite(ctx context.Context, in types.JobPostingInput, fast bool) (<-chan string, <-chan error) {
	return a.stream(ctx, "rewrite", fast,
		prompts.MustGet(prompts.KeyRewriteJobDescription),
		prompts.JobPosting(in.JobTitle, in.JobDescription))
}
