package draft

import (
	"context"
	"fmt"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/rag/pacing"
)

// BatchResult counts the questions of one draft run by outcome.
// Processed counts successful drafts only; Failed is tracked separately.
type BatchResult struct {
	Processed   int
	Drafted     int
	NeedsReview int
	Approved    int
	Failed      int
}

// ProgressFunc receives batch progress in percent.
type ProgressFunc func(percent int)

// RunBatch drafts every PENDING question of the project in ascending row
// order. A question that fails is marked FAILED and the batch moves on;
// only store-level errors while listing abort the run.
func (e *Engine) RunBatch(ctx context.Context, project *qna.Project, progress ProgressFunc) (*BatchResult, error) {
	if progress == nil {
		progress = func(int) {}
	}
	loggr := e.logger.With("traceId", ctx.Value(config.TraceIDKey), "projectId", project.ID)

	progress(0)
	pendingQuestions, err := e.questions.ListByProject(ctx, project.ID, qna.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending questions: %w", err)
	}
	loggr.Info("starting draft batch", "pending", len(pendingQuestions))

	result := &BatchResult{}
	if len(pendingQuestions) == 0 {
		progress(100)
		return result, nil
	}

	policy := Policy{
		OwnerID:         project.OwnerID,
		ReviewThreshold: project.ReviewThreshold,
		AutoApprove:     project.AutoApprove,
	}
	pacer := pacing.New(config.CompletionPacingInterval)

	for i, question := range pendingQuestions {
		progress(i*90/len(pendingQuestions) + 10)
		if i > 0 {
			if err := pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}

		outcome, err := e.ProcessQuestion(ctx, question, policy)
		if err != nil {
			loggr.Error("question draft failed", "questionId", question.ID, "error", err)
			if uerr := e.questions.UpdateStatus(ctx, question.ID, qna.StatusFailed); uerr != nil {
				loggr.Error("could not mark question failed", "questionId", question.ID, "error", uerr)
			}
			result.Failed++
			continue
		}

		result.Processed++
		switch outcome.Status {
		case qna.StatusDrafted:
			result.Drafted++
		case qna.StatusNeedsReview:
			result.NeedsReview++
		case qna.StatusApproved:
			result.Approved++
		}
	}

	progress(100)
	loggr.Info("draft batch complete",
		"processed", result.Processed,
		"drafted", result.Drafted,
		"needsReview", result.NeedsReview,
		"approved", result.Approved,
		"failed", result.Failed)
	return result, nil
}
