package review_test

import (
	"context"

	"github.com/qflow/qflow-api/internal/domain/qna"
)

// MockProjectStore implements qna.ProjectStore
type MockProjectStore struct {
	OnCreate       func(ctx context.Context, project *qna.Project) error
	OnGetByID      func(ctx context.Context, id string) (*qna.Project, error)
	OnUpdateStatus func(ctx context.Context, id string, status qna.ProjectStatus) error
	OnListByOwner  func(ctx context.Context, ownerID string, limit int) ([]qna.Project, error)
}

func (m *MockProjectStore) Create(ctx context.Context, project *qna.Project) error {
	if m.OnCreate != nil {
		return m.OnCreate(ctx, project)
	}
	return nil
}

func (m *MockProjectStore) GetByID(ctx context.Context, id string) (*qna.Project, error) {
	if m.OnGetByID != nil {
		return m.OnGetByID(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectStore) UpdateStatus(ctx context.Context, id string, status qna.ProjectStatus) error {
	if m.OnUpdateStatus != nil {
		return m.OnUpdateStatus(ctx, id, status)
	}
	return nil
}

func (m *MockProjectStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]qna.Project, error) {
	if m.OnListByOwner != nil {
		return m.OnListByOwner(ctx, ownerID, limit)
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

// MockReviewEventStore implements qna.ReviewEventStore
type MockReviewEventStore struct {
	OnAppend func(ctx context.Context, event *qna.ReviewEvent) error
}

func (m *MockReviewEventStore) Append(ctx context.Context, event *qna.ReviewEvent) error {
	if m.OnAppend != nil {
		return m.OnAppend(ctx, event)
	}
	return nil
}
