package ingest_test

import (
	"context"

	"github.com/qflow/qflow-api/internal/domain/qna"
)

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnEmbed func(ctx context.Context, text string) ([]float32, error)
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.OnEmbed != nil {
		return m.OnEmbed(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// MockChunkStore implements vectordb.ChunkStore
type MockChunkStore struct {
	OnEnsureCollection func(ctx context.Context) error
	OnUpsertChunks     func(ctx context.Context, chunks []qna.Chunk) error
	OnDeleteByDocument func(ctx context.Context, documentID string) error
	OnSearchOwned      func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error)
}

func (m *MockChunkStore) EnsureCollection(ctx context.Context) error {
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx)
	}
	return nil
}

func (m *MockChunkStore) UpsertChunks(ctx context.Context, chunks []qna.Chunk) error {
	if m.OnUpsertChunks != nil {
		return m.OnUpsertChunks(ctx, chunks)
	}
	return nil
}

func (m *MockChunkStore) DeleteByDocument(ctx context.Context, documentID string) error {
	if m.OnDeleteByDocument != nil {
		return m.OnDeleteByDocument(ctx, documentID)
	}
	return nil
}

func (m *MockChunkStore) SearchOwned(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
	if m.OnSearchOwned != nil {
		return m.OnSearchOwned(ctx, ownerID, vector, k)
	}
	return nil, nil
}

// MockDocumentStore implements qna.DocumentStore
type MockDocumentStore struct {
	OnCreate             func(ctx context.Context, doc *qna.Document) error
	OnFindByOwnerAndHash func(ctx context.Context, ownerID, contentHash string) (*qna.Document, error)
	OnListByOwner        func(ctx context.Context, ownerID string, limit, offset int) ([]qna.Document, int64, error)
}

func (m *MockDocumentStore) Create(ctx context.Context, doc *qna.Document) error {
	if m.OnCreate != nil {
		return m.OnCreate(ctx, doc)
	}
	return nil
}

func (m *MockDocumentStore) FindByOwnerAndHash(ctx context.Context, ownerID, contentHash string) (*qna.Document, error) {
	if m.OnFindByOwnerAndHash != nil {
		return m.OnFindByOwnerAndHash(ctx, ownerID, contentHash)
	}
	return nil, nil
}

func (m *MockDocumentStore) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]qna.Document, int64, error) {
	if m.OnListByOwner != nil {
		return m.OnListByOwner(ctx, ownerID, limit, offset)
	}
	return nil, 0, nil
}
