package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/MohamedRasheqA/teachback/internal/errs"
)

// Snippet is one retrieved document fragment with its cosine similarity.
// Snippets are produced per request and never persisted.
type Snippet struct {
	Text       string
	Similarity float64
}

// DocumentStore runs nearest-neighbor queries against the indexed document
// collection. The collection itself is populated out of band.
type DocumentStore struct {
	pool      *pgxpool.Pool
	threshold float64
	topK      int
}

// NewDocumentStore builds a document store bounded by the given similarity
// threshold and result cap.
func NewDocumentStore(pool *pgxpool.Pool, threshold float64, topK int) *DocumentStore {
	return &DocumentStore{pool: pool, threshold: threshold, topK: topK}
}

// SearchSnippets returns the snippets whose cosine similarity to the query
// embedding clears the threshold, most similar first. An empty result is a
// valid outcome meaning no relevant context was found.
func (s *DocumentStore) SearchSnippets(ctx context.Context, embedding []float32) ([]Snippet, error) {
	const query = `
		SELECT contents, 1 - (embedding <=> $1) AS similarity
		FROM documents
		WHERE 1 - (embedding <=> $1) > $2
		ORDER BY similarity DESC
		LIMIT $3`

	rows, err := s.pool.Query(ctx, query, pgvector.NewVector(embedding), s.threshold, s.topK)
	if err != nil {
		return nil, errs.Persistencef("searching documents", err)
	}
	defer rows.Close()

	var snippets []Snippet
	for rows.Next() {
		var snippet Snippet
		if err := rows.Scan(&snippet.Text, &snippet.Similarity); err != nil {
			return nil, errs.Persistencef("scanning document row", err)
		}
		snippets = append(snippets, snippet)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistencef("reading document rows", err)
	}

	return snippets, nil
}

// SimilarContent joins the retrieved snippet texts with blank lines, the form
// the prompt assembler injects as documentation context. Returns the empty
// string when nothing clears the threshold.
func (s *DocumentStore) SimilarContent(ctx context.Context, embedding []float32) (string, error) {
	snippets, err := s.SearchSnippets(ctx, embedding)
	if err != nil {
		return "", err
	}

	texts := make([]string, len(snippets))
	for i, snippet := range snippets {
		texts[i] = snippet.Text
	}
	return strings.Join(texts, "\n\n"), nil
}
