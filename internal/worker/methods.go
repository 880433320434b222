package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/jobmodel"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/metrics"
	"github.com/qflow/qflow-api/internal/rag/ingest"
)

// executeJob drives one job to COMPLETE or FAILED, persisting every
// state change so pollers see progress. Retryable failures get up to
// JobMaxAttempts runs with exponential backoff.
func (p *Pool) executeJob(currentJob jobmodel.Job) {
	start := time.Now()
	ctxTrace := context.WithValue(context.Background(), config.TraceIDKey, currentJob.TraceID)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobTimeout)
	defer cancel()

	loggr := p.logger.With("traceId", currentJob.TraceID, "jobId", currentJob.ID, "jobType", currentJob.JobType)
	loggr.Debug("processing job")

	currentJob.Status = jobmodel.JobStatusRunning
	p.saveJobState(ctx, &currentJob)

	var result *jobmodel.JobResult
	var err error
	for attempt := 1; attempt <= config.JobMaxAttempts; attempt++ {
		currentJob.Attempts = attempt
		result, err = p.runJob(ctx, &currentJob)
		if err == nil || !isRetryable(err) || ctx.Err() != nil {
			break
		}
		backoff := config.JobRetryBackoffBase * (1 << (attempt - 1))
		loggr.Warn("retryable job failure, backing off", "attempt", attempt, "backoff", backoff, "error", err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
		}
	}

	currentJob.EndTime = time.Now()
	if err != nil {
		loggr.Error("job failed", "attempts", currentJob.Attempts, "error", err)
		currentJob.Status = jobmodel.JobStatusFailed
		currentJob.Error = jobmodel.JobError{
			Code:    500,
			Message: err.Error(),
			Retry:   isRetryable(err),
		}
		metrics.CaptureJobMetrics(string(currentJob.JobType), "failed", time.Since(start))
	} else {
		currentJob.Status = jobmodel.JobStatusComplete
		currentJob.Progress = 100
		currentJob.Result = result
		metrics.CaptureJobMetrics(string(currentJob.JobType), "complete", time.Since(start))
	}
	p.saveJobState(ctx, &currentJob)
}

func (p *Pool) runJob(ctx context.Context, currentJob *jobmodel.Job) (*jobmodel.JobResult, error) {
	switch currentJob.JobType {
	case jobmodel.JobTypeKnowledgeFeed:
		return p.runKnowledgeFeed(ctx, currentJob)
	case jobmodel.JobTypeDraftQuestions:
		return p.runDraftBatch(ctx, currentJob)
	default:
		return nil, fmt.Errorf("unknown job type: %s", currentJob.JobType)
	}
}

func (p *Pool) runKnowledgeFeed(ctx context.Context, currentJob *jobmodel.Job) (*jobmodel.JobResult, error) {
	progress := p.progressWriter(ctx, currentJob)

	var result *ingest.Result
	var err error
	if currentJob.Payload.SourcePath != "" {
		result, err = p.feeder.FeedFile(ctx, currentJob.Payload.OwnerID, currentJob.Payload.SourcePath, currentJob.Payload.ChunkSize, progress)
	} else {
		result, err = p.feeder.Feed(ctx, currentJob.Payload.OwnerID, currentJob.Payload.Text, currentJob.Payload.ChunkSize, progress)
	}
	if err != nil {
		return nil, err
	}
	return &jobmodel.JobResult{
		DocumentsCreated: result.DocumentsCreated,
		TotalChunks:      result.TotalChunks,
		TotalEmbeddings:  result.TotalEmbeddings,
	}, nil
}

func (p *Pool) runDraftBatch(ctx context.Context, currentJob *jobmodel.Job) (*jobmodel.JobResult, error) {
	project, err := p.projects.GetByID(ctx, currentJob.Payload.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("project %s not found", currentJob.Payload.ProjectID)
	}
	if project.OwnerID != currentJob.Payload.OwnerID {
		return nil, fmt.Errorf("project %s does not belong to requesting user", project.ID)
	}

	result, err := p.engine.RunBatch(ctx, project, p.progressWriter(ctx, currentJob))
	if err != nil {
		if uerr := p.projects.UpdateStatus(ctx, project.ID, qna.ProjectFailed); uerr != nil {
			p.logger.Error("could not mark project failed", "projectId", project.ID, "error", uerr)
		}
		return nil, err
	}

	if err := p.projects.UpdateStatus(ctx, project.ID, qna.ProjectCompleted); err != nil {
		return nil, fmt.Errorf("update project status: %w", err)
	}
	return &jobmodel.JobResult{
		Processed:   result.Processed,
		Drafted:     result.Drafted,
		NeedsReview: result.NeedsReview,
		Approved:    result.Approved,
		Failed:      result.Failed,
	}, nil
}

// progressWriter persists monotonically increasing progress; writes that
// would move progress backwards (after a retry restarts a pipeline) are
// kept as the maximum seen.
func (p *Pool) progressWriter(ctx context.Context, currentJob *jobmodel.Job) func(int) {
	return func(percent int) {
		if percent <= currentJob.Progress {
			return
		}
		currentJob.Progress = percent
		p.saveJobState(ctx, currentJob)
	}
}

func (p *Pool) saveJobState(ctx context.Context, currentJob *jobmodel.Job) {
	if err := p.jobs.JobStore.SaveJob(ctx, *currentJob); err != nil {
		p.logger.Error("failed to persist job state", "jobId", currentJob.ID, "error", err)
	}
}

// isRetryable classifies provider errors worth another attempt: quota
// exhaustion and transient transport failures.
func isRetryable(err error) bool {
	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.ResourceExhausted, codes.Unavailable, codes.DeadlineExceeded:
			return true
		}
	}
	return errors.Is(err, context.DeadlineExceeded)
}
