// Package vectordb defines the vector store contract for knowledge
// chunks. The qdrant implementation lives in qdrantdb; tests substitute
// function-field mocks.
package vectordb

import (
	"context"

	"github.com/qflow/qflow-api/internal/domain/qna"
)

type ChunkStore interface {
	// EnsureCollection creates the chunk collection if it does not exist.
	EnsureCollection(ctx context.Context) error
	// UpsertChunks writes chunks and their vectors in one batch. Chunk
	// IDs are stable, so re-upserting an existing ID overwrites it.
	UpsertChunks(ctx context.Context, chunks []qna.Chunk) error
	// DeleteByDocument removes every chunk belonging to the document.
	DeleteByDocument(ctx context.Context, documentID string) error
	// SearchOwned returns the k nearest chunks owned by ownerID, best
	// first. Chunks of other owners are never returned.
	SearchOwned(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error)
}
