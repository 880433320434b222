package draft_test

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
	return []float32{0.1, 0.2}, nil
}

// MockProvider implements llm.Provider
type MockProvider struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked draft answer", nil
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

// MockQuestionStore implements qna.QuestionStore
type MockQuestionStore struct {
	OnCreateBatch   func(ctx context.Context, items []qna.QuestionItem) error
	OnGetByID       func(ctx context.Context, id string) (*qna.QuestionItem, error)
	OnListByProject func(ctx context.Context, projectID string, status qna.QuestionStatus) ([]qna.QuestionItem, error)
	OnCountByStatus func(ctx context.Context, projectID string) (map[qna.QuestionStatus]int, error)
	OnSaveDraft     func(ctx context.Context, id string, answer string, confidence float64, status qna.QuestionStatus) error
	OnUpdateStatus  func(ctx context.Context, id string, status qna.QuestionStatus) error
	OnSaveReview    func(ctx context.Context, id string, status qna.QuestionStatus, humanAnswer *string) error
}

func (m *MockQuestionStore) CreateBatch(ctx context.Context, items []qna.QuestionItem) error {
	if m.OnCreateBatch != nil {
		return m.OnCreateBatch(ctx, items)
	}
	return nil
}

func (m *MockQuestionStore) GetByID(ctx context.Context, id string) (*qna.QuestionItem, error) {
	if m.OnGetByID != nil {
		return m.OnGetByID(ctx, id)
	}
	return nil, nil
}

func (m *MockQuestionStore) ListByProject(ctx context.Context, projectID string, status qna.QuestionStatus) ([]qna.QuestionItem, error) {
	if m.OnListByProject != nil {
		return m.OnListByProject(ctx, projectID, status)
	}
	return nil, nil
}

func (m *MockQuestionStore) CountByStatus(ctx context.Context, projectID string) (map[qna.QuestionStatus]int, error) {
	if m.OnCountByStatus != nil {
		return m.OnCountByStatus(ctx, projectID)
	}
	return map[qna.QuestionStatus]int{}, nil
}

func (m *MockQuestionStore) SaveDraft(ctx context.Context, id string, answer string, confidence float64, status qna.QuestionStatus) error {
	if m.OnSaveDraft != nil {
		return m.OnSaveDraft(ctx, id, answer, confidence, status)
	}
	return nil
}

func (m *MockQuestionStore) UpdateStatus(ctx context.Context, id string, status qna.QuestionStatus) error {
	if m.OnUpdateStatus != nil {
		return m.OnUpdateStatus(ctx, id, status)
	}
	return nil
}

func (m *MockQuestionStore) SaveReview(ctx context.Context, id string, status qna.QuestionStatus, humanAnswer *string) error {
	if m.OnSaveReview != nil {
		return m.OnSaveReview(ctx, id, status, humanAnswer)
	}
	return nil
}

// MockCitationStore implements qna.CitationStore
type MockCitationStore struct {
	OnReplaceForQuestion func(ctx context.Context, questionItemID string, citations []qna.AnswerCitation) error
	OnListByQuestion     func(ctx context.Context, questionItemID string) ([]qna.AnswerCitation, error)
}

func (m *MockCitationStore) ReplaceForQuestion(ctx context.Context, questionItemID string, citations []qna.AnswerCitation) error {
	if m.OnReplaceForQuestion != nil {
		return m.OnReplaceForQuestion(ctx, questionItemID, citations)
	}
	return nil
}

func (m *MockCitationStore) ListByQuestion(ctx context.Context, questionItemID string) ([]qna.AnswerCitation, error) {
	if m.OnListByQuestion != nil {
		return m.OnListByQuestion(ctx, questionItemID)
	}
	return nil, nil
}
