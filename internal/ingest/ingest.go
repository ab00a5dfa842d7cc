// Package ingest builds the report-extract index consumed by the
// job-design-suggestion flow: it reads future-of-work report material from
// local files or web pages, chunks it along sentence boundaries, embeds the
// chunks and stores them in the vector index.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/job-advisor/internal/retrieval"
)

// Store receives embedded chunks; satisfied by retrieval.SQLiteIndex.
type Store interface {
	Add(ctx context.Context, source, content string, embedding []float32) error
}

// Ingester chunks, embeds and stores report material.
type Ingester struct {
	embedder retrieval.Embedder
	store    Store
	client   *http.Client
	logger   zerolog.Logger
}

// New creates an Ingester.
func New(embedder retrieval.Embedder, store Store, logger zerolog.Logger) *Ingester {
	return &Ingester{
		embedder: embedder,
		store:    store,
		client:   &http.Client{Timeout: fetchTimeout},
		logger:   logger,
	}
}

// FromDir ingests every .txt and .md file under dir, recursively. Returns
// the number of chunks stored.
func (g *Ingester) FromDir(ctx context.Context, dir string) (int, error) {
	var total int
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md":
		default:
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		n, err := g.addDocument(ctx, path, string(content))
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		total += n
		return nil
	})
	if err != nil {
		return total, err
	}
	return total, nil
}

// FromURL fetches a page, reduces it to its main text and ingests it.
// Returns the number of chunks stored.
func (g *Ingester) FromURL(ctx context.Context, rawURL string) (int, error) {
	text, err := fetchPage(ctx, rawURL, g.client)
	if err != nil {
		return 0, err
	}
	return g.addDocument(ctx, rawURL, text)
}

// addDocument chunks one document, embeds all chunks in a single batch and
// stores them under the given source label.
func (g *Ingester) addDocument(ctx context.Context, source, text string) (int, error) {
	chunks := splitChunks(text)
	if len(chunks) == 0 {
		g.logger.Warn().Str("source", source).Msg("no text to ingest")
		return 0, nil
	}

	vectors, err := g.embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}

	for i, chunk := range chunks {
		if err := g.store.Add(ctx, source, chunk, vectors[i]); err != nil {
			return i, fmt.Errorf("failed to store chunk: %w", err)
		}
	}

	g.logger.Info().Str("source", source).Int("chunks", len(chunks)).Msg("ingested document")
	return len(chunks), nil
}
