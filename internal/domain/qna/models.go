package qna

import "time"

// Document is one ingested unit of knowledge-base content. The pair
// (OwnerID, ContentHash) identifies a document: re-ingesting identical
// content for the same owner replaces its chunks instead of duplicating.
type Document struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"type:uuid;not null;index:idx_documents_owner_hash"`
	Filename    string    `json:"filename" gorm:"size:256;not null"`
	ContentHash string    `json:"content_hash" gorm:"size:64;not null;index:idx_documents_owner_hash"`
	UploadDate  time.Time `json:"upload_date" gorm:"autoCreateTime"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Chunk is a bounded span of document text paired with its embedding.
// Text and vector live in the vector store; this struct is the shape the
// ingestion pipeline hands to it.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	OwnerID    string    `json:"owner_id"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Project is a batch of questions submitted together, usually one
// questionnaire file. Status advances with question-level progress.
type Project struct {
	ID              string        `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID         string        `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name            string        `json:"name" gorm:"size:256;not null"`
	Status          ProjectStatus `json:"status" gorm:"size:16;not null"`
	ReviewThreshold float64       `json:"review_threshold" gorm:"not null"`
	AutoApprove     bool          `json:"auto_approve" gorm:"not null"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// QuestionItem is one question row within a project. RowIndex preserves
// the position in the uploaded file and is unique within the project.
type QuestionItem struct {
	ID              string         `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID       string         `json:"project_id" gorm:"type:uuid;not null;index"`
	RowIndex        int            `json:"row_index" gorm:"not null"`
	QuestionText    string         `json:"question_text" gorm:"type:text;not null"`
	AIAnswer        *string        `json:"ai_answer" gorm:"type:text"`
	HumanAnswer     *string        `json:"human_answer" gorm:"type:text"`
	ConfidenceScore *float64       `json:"confidence_score"`
	Status          QuestionStatus `json:"status" gorm:"size:16;not null;index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// AnswerCitation links a drafted answer to a supporting chunk. Citations
// are a projection of the last draft: fully replaced on every redraft,
// never appended.
type AnswerCitation struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionItemID string    `json:"question_item_id" gorm:"type:uuid;not null;index"`
	ChunkID        string    `json:"chunk_id" gorm:"type:uuid;not null"`
	Score          float64   `json:"score" gorm:"not null"`
	Snippet        string    `json:"snippet" gorm:"size:256;not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReviewEvent is the immutable audit record of a human decision.
// Append-only; never updated or deleted.
type ReviewEvent struct {
	ID             string       `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionItemID string       `json:"question_item_id" gorm:"type:uuid;not null;index"`
	ReviewerID     string       `json:"reviewer_id" gorm:"type:uuid;not null"`
	Action         ReviewAction `json:"action" gorm:"size:16;not null"`
	Notes          *string      `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ScoredChunk is a retrieval hit: a chunk with its cosine similarity to
// the query, nearest first.
type ScoredChunk struct {
	ChunkID    string
	DocumentID string
	Content    string
	Similarity float64
}
