package qna

import "context"

// Store interfaces consumed by the ingestion pipeline, draft engine and
// review workflow. The gorm implementations live in internal/repository;
// tests substitute function-field mocks.

type DocumentStore interface {
	Create(ctx context.Context, doc *Document) error
	FindByOwnerAndHash(ctx context.Context, ownerID, contentHash string) (*Document, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, int64, error)
}

type ProjectStore interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	UpdateStatus(ctx context.Context, id string, status ProjectStatus) error
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]Project, error)
}

type QuestionStore interface {
	CreateBatch(ctx context.Context, items []QuestionItem) error
	GetByID(ctx context.Context, id string) (*QuestionItem, error)
	// ListByProject returns items ordered by ascending row index; status
	// filters when non-empty.
	ListByProject(ctx context.Context, projectID string, status QuestionStatus) ([]QuestionItem, error)
	CountByStatus(ctx context.Context, projectID string) (map[QuestionStatus]int, error)
	// SaveDraft persists answer, confidence and status in one write.
	SaveDraft(ctx context.Context, id string, answer string, confidence float64, status QuestionStatus) error
	UpdateStatus(ctx context.Context, id string, status QuestionStatus) error
	// SaveReview applies a review decision: status always, humanAnswer
	// only when non-nil. AIAnswer is never touched here.
	SaveReview(ctx context.Context, id string, status QuestionStatus, humanAnswer *string) error
}

type CitationStore interface {
	// ReplaceForQuestion deletes any prior citations for the question and
	// inserts the new set as one unit.
	ReplaceForQuestion(ctx context.Context, questionItemID string, citations []AnswerCitation) error
	ListByQuestion(ctx context.Context, questionItemID string) ([]AnswerCitation, error)
}

type ReviewEventStore interface {
	Append(ctx context.Context, event *ReviewEvent) error
}
