// Package api holds the request and response contracts of the HTTP
// surface. Handlers decode into these; the adapter package maps domain
// types onto them.
package api

import "time"

// requests ---------------------------------------------------------------

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FeedRequest submits knowledge base markdown as raw text.
type FeedRequest struct {
	Text      string `json:"text"`
	ChunkSize int    `json:"chunkSize,omitempty"`
}

type QuestionInput struct {
	RowIndex     int    `json:"rowIndex"`
	QuestionText string `json:"questionText"`
}

type CreateProjectRequest struct {
	OriginalName string          `json:"originalName,omitempty"`
	Questions    []QuestionInput `json:"questions"`
}

type ReviewRequest struct {
	Action      string  `json:"action"`
	HumanAnswer *string `json:"humanAnswer,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// responses --------------------------------------------------------------

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
}

type InitJobResponse struct {
	ID        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type JobResultView struct {
	DocumentsCreated int `json:"documentsCreated,omitempty"`
	TotalChunks      int `json:"totalChunks,omitempty"`
	TotalEmbeddings  int `json:"totalEmbeddings,omitempty"`
	Processed        int `json:"processed,omitempty"`
	Drafted          int `json:"drafted,omitempty"`
	NeedsReview      int `json:"needsReview,omitempty"`
	Approved         int `json:"approved,omitempty"`
	Failed           int `json:"failed,omitempty"`
}

type JobErrorView struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"can_retry"`
}

type JobResponse struct {
	ID        string         `json:"id"`
	JobType   string         `json:"job_type,omitempty"`
	Status    string         `json:"status"`
	Progress  int            `json:"progress"`
	Result    *JobResultView `json:"result,omitempty"`
	Error     *JobErrorView  `json:"error,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time,omitempty"`
}

type DocumentView struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentHash string    `json:"contentHash"`
	UploadDate  time.Time `json:"uploadDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type DocumentsResponse struct {
	Data  []DocumentView `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type CreateProjectResponse struct {
	ProjectID        string `json:"projectId"`
	CreatedQuestions int    `json:"createdQuestions"`
}

type ProjectView struct {
	ID           string         `json:"id"`
	OriginalName string         `json:"originalName"`
	Status       string         `json:"status"`
	Counts       map[string]int `json:"counts"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type ProjectsResponse struct {
	Items []ProjectView `json:"items"`
}

type ProjectDetailsResponse struct {
	ID             string         `json:"id"`
	Status         string         `json:"status"`
	Counts         map[string]int `json:"counts"`
	TotalQuestions int            `json:"totalQuestions"`
}

type QuestionView struct {
	ID              string    `json:"id"`
	RowIndex        int       `json:"rowIndex"`
	QuestionText    string    `json:"questionText"`
	AIAnswer        *string   `json:"aiAnswer"`
	HumanAnswer     *string   `json:"humanAnswer"`
	ConfidenceScore *float64  `json:"confidenceScore"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type QuestionsResponse struct {
	Questions []QuestionView `json:"questions"`
}

type CitationView struct {
	ChunkID string  `json:"chunkId"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

type ReviewQueueItemView struct {
	ID              string         `json:"id"`
	RowIndex        int            `json:"rowIndex"`
	QuestionText    string         `json:"questionText"`
	AIAnswer        *string        `json:"aiAnswer"`
	ConfidenceScore *float64       `json:"confidenceScore"`
	Citations       []CitationView `json:"citations"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type ReviewQueueResponse struct {
	Questions []ReviewQueueItemView `json:"questions"`
}

type ReviewActionResponse struct {
	QuestionID string `json:"questionId"`
	Status     string `json:"status"`
	Action     string `json:"action"`
	Message    string `json:"message"`
}

type ExportItemView struct {
	RowIndex     int    `json:"rowIndex"`
	QuestionText string `json:"questionText"`
	FinalAnswer  string `json:"finalAnswer"`
}

type ExportResponse struct {
	ProjectID   string           `json:"projectId"`
	ProjectName string           `json:"projectName"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Items       []ExportItemView `json:"items"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
