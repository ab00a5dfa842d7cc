package advisor

import (
	"context"
	"fmt"

	"github.com/jonathan/job-advisor/internal/prompts"
	"github.com/jonathan/job-advisor/internal/types"
)

// DesignSuggestions streams job re-design recommendations grounded in the
// report-extract index. The retrieval steps run synchronously so a shortfall
// or provider failure surfaces before any stream is started; the returned
// channels then deliver the completion incrementally. fast selects the
// alternative streaming backend.
func (a *Advisor) DesignSuggestions(ctx context.Context, in types.JobPostingInput, fast bool) (<-chan string, <-chan error, error) {
	vector, err := a.embedder.EmbedOne(ctx, in.JobTitle+in.JobDescription)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed query: %w", err)
	}

	extracts, err := a.index.Query(ctx, vector, prompts.RAGExtractCount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query index: %w", err)
	}
	if len(extracts) < prompts.RAGExtractCount {
		return nil, nil, fmt.Errorf("%w: got %d, need %d", ErrRetrievalShortfall, len(extracts), prompts.RAGExtractCount)
	}

	prompt, err := prompts.JobDesignRAG(in.JobTitle, in.JobDescription, extracts)
	if err != nil {
		return nil, nil, err
	}

	frags, errs := a.stream(ctx, "design_suggestions", fast,
		prompts.MustGet(prompts.KeyJobDesignSuggestions), prompt)
	return frags, errs, nil
}
