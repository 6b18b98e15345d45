// Package knowledge implements the retrieval-augmented knowledge base:
// splitting sources into chunks, embedding them, and searching them by
// vector similarity.
package knowledge

import (
	"context"

	"github.com/google/uuid"
)

// EmbeddedChunk is one searchable piece of a source document together
// with its vector.
type EmbeddedChunk struct {
	ID      uuid.UUID
	Source  string
	Content string
	Vector  []float32
}

// Store persists embedded chunks and searches them by vector similarity.
type Store interface {
	Insert(ctx context.Context, chunks []EmbeddedChunk) error
	// Search returns the contents of the k chunks nearest to vector,
	// best first. An empty result is valid.
	Search(ctx context.Context, vector []float32, k int) ([]string, error)
	DeleteBySource(ctx context.Context, source string) error

	Initialize(ctx context.Context) error
	Close() error
}
