// Package llm provides the gateway to the LLM backends: chat-style one-shot
// completions, schema-validated structured completions with bounded retry, and
// streaming completions delivered as lazy fragment sequences.
package llm

import "context"

// Sampling is pinned for every call so classifier outputs are stable across
// identical inputs.
const (
	temperature = 0
	seed        = 1
)

// Request describes one chat completion. SystemMessage identifies the model's
// role for the use case; UserMessage carries the composed prompt.
type Request struct {
	Model         string
	SystemMessage string
	UserMessage   string

	// MaxTokens caps the reply length when > 0. Zero-shot classifiers set it
	// to 1 together with LogitBias so the reply can only be a single digit.
	MaxTokens int

	// LogitBias maps token IDs to bias values, passed through to the backend.
	LogitBias map[string]int

	// JSONMode asks the backend to constrain the reply to a JSON object.
	JSONMode bool
}

// Provider is a single LLM backend. Implementations hold no per-call state
// and are safe for concurrent use; construct once at startup and share.
type Provider interface {
	// Complete returns the full text of the reply.
	Complete(ctx context.Context, req Request) (string, error)

	// Stream returns a lazy, finite, non-restartable sequence of text
	// fragments in generation order. Empty fragments are filtered out. The
	// fragment channel is closed when the backend signals completion; the
	// error channel then yields at most one error. Cancelling ctx abandons
	// in-flight generation.
	Stream(ctx context.Context, req Request) (<-chan string, <-chan error)
}
