package jobmodel

import (
	"context"
	"time"
)

type JobStatus string
type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusFailed   JobStatus = "FAILED"

	JobTypeKnowledgeFeed  JobType = "KnowledgeFeed"
	JobTypeDraftQuestions JobType = "DraftQuestions"
)

// Job is the durable record of one unit of background work. It is written
// to the job store on every state change so clients can poll progress.
type Job struct {
	ID          string     `json:"id"`
	TraceID     string     `json:"trace_id"`
	JobType     JobType    `json:"job_type"`
	Payload     Payload    `json:"payload"`
	Error       JobError   `json:"error,omitempty"`
	Progress    int        `json:"progress"`
	Attempts    int        `json:"attempts"`
	CreatedTime time.Time  `json:"created_time"`
	EndTime     time.Time  `json:"end_time,omitempty"`
	Status      JobStatus  `json:"status"`
	Result      *JobResult `json:"result,omitempty"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// Payload carries the inputs for either job type. KnowledgeFeed jobs use
// OwnerID plus Text or SourcePath; DraftQuestions jobs use OwnerID and
// ProjectID.
type Payload struct {
	OwnerID    string `json:"owner_id"`
	Text       string `json:"text,omitempty"`
	SourcePath string `json:"source_path,omitempty"`
	ChunkSize  int    `json:"chunk_size,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
}

// JobResult is the return value stored on successful completion.
type JobResult struct {
	// Knowledge feed counters.
	DocumentsCreated int `json:"documents_created,omitempty"`
	TotalChunks      int `json:"total_chunks,omitempty"`
	TotalEmbeddings  int `json:"total_embeddings,omitempty"`

	// Draft batch counters.
	Processed   int `json:"processed,omitempty"`
	Drafted     int `json:"drafted,omitempty"`
	NeedsReview int `json:"needs_review,omitempty"`
	Approved    int `json:"approved,omitempty"`
	Failed      int `json:"failed,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobID string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
