// Package advisor implements the use-case layer: input gating, zero-shot
// classification, structured generation and streaming generation over job
// postings. An Advisor holds only long-lived, read-only client handles and is
// safe for concurrent use; every call is an independent, stateless unit of
// work.
package advisor

import (
	"context"
	"time"

	"github.com/jonathan/job-advisor/internal/config"
	"github.com/jonathan/job-advisor/internal/llm"
	"github.com/jonathan/job-advisor/internal/metrics"
	"github.com/jonathan/job-advisor/internal/retrieval"
)

// Backend labels used in metrics.
const (
	backendAzure = "azure"
	backendGroq  = "groq"
)

// Advisor orchestrates prompt composition, retrieval and backend dispatch.
type Advisor struct {
	primary  llm.Provider
	fast     llm.Provider
	embedder retrieval.Embedder
	index    retrieval.Index
	models   config.Models
	metrics  metrics.Collector
}

// New creates an Advisor. collector may be nil, in which case metrics are
// discarded.
func New(primary, fast llm.Provider, embedder retrieval.Embedder, index retrieval.Index, models config.Models, collector metrics.Collector) *Advisor {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &Advisor{
		primary:  primary,
		fast:     fast,
		embedder: embedder,
		index:    index,
		models:   models,
		metrics:  collector,
	}
}

// callCounter counts completions issued by the structured retry loop so
// validation misses can be reported as metrics.
type callCounter struct {
	llm.Provider
	calls int
}

func (c *callCounter) Complete(ctx context.Context, req llm.Request) (string, error) {
	c.calls++
	return c.Provider.Complete(ctx, req)
}

// structured runs a schema-validated completion on the primary backend.
func (a *Advisor) structured(ctx context.Context, op string, req llm.Request, schemaJSON string, out any) error {
	counter := &callCounter{Provider: a.primary}
	start := time.Now()

	err := llm.CompleteStructured(ctx, counter, req, schemaJSON, out, llm.DefaultMaxAttempts)

	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
	}
	a.metrics.RecordCall(op, backendAzure, status, time.Since(start))
	for i := 1; i < counter.calls; i++ {
		a.metrics.RecordValidationRetry(op)
	}
	return err
}

// stream dispatches a streaming completion to the selected backend and
// forwards fragments until the backend finishes or ctx is cancelled.
func (a *Advisor) stream(ctx context.Context, op string, fast bool, systemMessage, prompt string) (<-chan string, <-chan error) {
	provider, model, backend := a.primary, a.models.ChatLarge, backendAzure
	if fast {
		provider, model, backend = a.fast, a.models.Fast, backendGroq
	}

	frags, errs := provider.Stream(ctx, llm.Request{
		Model:         model,
		SystemMessage: systemMessage,
		UserMessage:   prompt,
	})

	out := make(chan string)
	errOut := make(chan error, 1)
	start := time.Now()

	go func() {
		defer close(out)
		defer close(errOut)

	forward:
		for frag := range frags {
			select {
			case out <- frag:
			case <-ctx.Done():
				break forward
			}
		}
		err := <-errs

		status := metrics.StatusOK
		if err != nil {
			status = metrics.StatusError
		}
		a.metrics.RecordCall(op, backend, status, time.Since(start))
		if err != nil {
			errOut <- err
		}
	}()

	return out, errOut
}
