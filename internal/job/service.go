// Package job owns the queue between the request path and the worker
// pool. Handlers enqueue; workers drain.
package job

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/jobmodel"
	"github.com/qflow/qflow-api/internal/metrics"
	"github.com/qflow/qflow-api/pkg/logging"
)

type Service struct {
	JobChannel        chan jobmodel.Job
	DispatcherChannel chan bool
	JobStore          jobmodel.JobStore
	requestCount      int64
	logger            *logging.Logger
}

func NewService(store jobmodel.JobStore) *Service {
	return &Service{
		JobChannel:        make(chan jobmodel.Job, config.JobBufferLimit),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          store,
		logger:            logging.NewLogger("job_service"),
	}
}

// Enqueue records the job as QUEUED and hands it to the worker pool. The
// channel send blocks when the buffer is full, which throttles intake
// instead of dropping work. Returns the job id for status polling.
func (s *Service) Enqueue(ctx context.Context, jobType jobmodel.JobType, payload jobmodel.Payload) (string, error) {
	traceID, _ := ctx.Value(config.TraceIDKey).(string)
	newJob := jobmodel.Job{
		ID:          uuid.NewString(),
		TraceID:     traceID,
		JobType:     jobType,
		Payload:     payload,
		Status:      jobmodel.JobStatusQueued,
		CreatedTime: time.Now(),
	}

	if err := s.JobStore.SaveJob(ctx, newJob); err != nil {
		return "", err
	}

	metrics.IncrementJobsInQueue()
	s.JobChannel <- newJob
	s.logger.Info("job enqueued", "jobId", newJob.ID, "jobType", jobType)

	// Signal the dispatcher every N requests, and always for knowledge
	// feeds: ingestion batches are slow and benefit from an extra hand.
	count := atomic.AddInt64(&s.requestCount, 1)
	if count%config.RequestsPerNewWorkerCount == 0 || jobType == jobmodel.JobTypeKnowledgeFeed {
		metrics.StartDispatcherSignalCount()
		select {
		case s.DispatcherChannel <- true:
		default:
		}
	}
	return newJob.ID, nil
}

// GetJob returns the stored job state for polling.
func (s *Service) GetJob(ctx context.Context, jobID string) (jobmodel.Job, bool) {
	return s.JobStore.GetJob(ctx, jobID)
}
