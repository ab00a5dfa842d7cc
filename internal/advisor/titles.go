package advisor

import (
	"context"

	"github.com/jonathan/job-advisor/internal/llm"
	"github.com/jonathan/job-advisor/internal/prompts"
	"github.com/jonathan/job-advisor/internal/types"
)

// AlternativeTitles generates between one and three alternative job titles
// for the posting. Pure generation, no retrieval.
func (a *Advisor) AlternativeTitles(ctx context.Context, in types.JobPostingInput) ([]string, error) {
	var out types.AlternativeTitles
	err := a.structured(ctx, "alt_titles", llm.Request{
		Model:         a.models.Chat,
		SystemMessage: prompts.MustGet(prompts.KeySuggestAltTitles),
		UserMessage:   prompts.JobPosting(in.JobTitle, in.JobDescription),
	}, types.AlternativeTitlesSchema, &out)
	if err != nil {
		return nil, err
	}
	return out.AlternativeTitles, nil
}
