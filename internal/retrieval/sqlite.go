package retrieval

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// SQLiteIndex is a SQLite-backed vector index. Similarity search is a cosine
// scan over all stored extracts, which is adequate for the corpus size this
// service indexes (report extracts, not web-scale documents).
type SQLiteIndex struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS extracts (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	content TEXT NOT NULL,
	embedding BLOB NOT NULL
);
`

// OpenIndex opens (creating if necessary) the index at path.
func OpenIndex(path string) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}
	return &SQLiteIndex{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

// Add stores an extract with its embedding. Used by ingestion only; the
// serving path never writes.
func (s *SQLiteIndex) Add(ctx context.Context, source, content string, embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("embedding cannot be empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO extracts (id, source, content, embedding) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), source, content, serializeEmbedding(embedding))
	if err != nil {
		return fmt.Errorf("failed to insert extract: %w", err)
	}
	return nil
}

// Count reports how many extracts are stored.
func (s *SQLiteIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM extracts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count extracts: %w", err)
	}
	return n, nil
}

type scored struct {
	content    string
	similarity float64
}

// Query returns the contents of the k most similar extracts, most relevant
// first.
func (s *SQLiteIndex) Query(ctx context.Context, query []float32, k int) ([]string, error) {
	if len(query) == 0 || k <= 0 {
		return []string{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT content, embedding FROM extracts`)
	if err != nil {
		return nil, fmt.Errorf("failed to scan extracts: %w", err)
	}
	defer rows.Close()

	var results []scored
	for rows.Next() {
		var content string
		var blob []byte
		if err := rows.Scan(&content, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan extract row: %w", err)
		}
		embedding, err := deserializeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("corrupt embedding: %w", err)
		}
		results = append(results, scored{content: content, similarity: cosineSimilarity(query, embedding)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate extracts: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].similarity > results[j].similarity
	})
	if len(results) > k {
		results = results[:k]
	}

	contents := make([]string, len(results))
	for i, r := range results {
		contents[i] = r.content
	}
	return contents, nil
}

// serializeEmbedding encodes a float32 vector as a little-endian blob.
func serializeEmbedding(embedding []float32) []byte {
	blob := make([]byte, 4*len(embedding))
	for i, v := range embedding {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

func deserializeEmbedding(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(blob))
	}
	embedding := make([]float32, len(blob)/4)
	for i := range embedding {
		embedding[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return embedding, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
