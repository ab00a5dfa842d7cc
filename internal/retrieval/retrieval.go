// Package retrieval provides the embedding client and the persistent vector
// index over "future of work" report extracts. The index is built offline by
// the ingest command and is read-only at serve time.
package retrieval

import "context"

// Embedder turns text into an embedding vector.
type Embedder interface {
	// Embed generates embeddings for multiple texts, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedOne generates an embedding for a single text.
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// Index is the vector index over stored report extracts.
type Index interface {
	// Query returns the contents of the k extracts most similar to the query
	// vector, most relevant first. Fewer than k results are returned when the
	// index holds fewer extracts; the caller decides whether that is an error.
	Query(ctx context.Context, query []float32, k int) ([]string, error)
}
