package draft_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/rag/draft"
)

func TestRunBatch_FailedQuestionDoesNotAbort(t *testing.T) {
	project := &qna.Project{ID: "p-1", OwnerID: "owner-1", ReviewThreshold: 0.6}
	pending := []qna.QuestionItem{
		{ID: "q-1", ProjectID: "p-1", RowIndex: 1, QuestionText: "first", Status: qna.StatusPending},
		{ID: "q-2", ProjectID: "p-1", RowIndex: 2, QuestionText: "second", Status: qna.StatusPending},
		{ID: "q-3", ProjectID: "p-1", RowIndex: 3, QuestionText: "third", Status: qna.StatusPending},
	}

	var failedIDs []string
	mQuestions := &MockQuestionStore{
		OnListByProject: func(ctx context.Context, projectID string, status qna.QuestionStatus) ([]qna.QuestionItem, error) {
			if status != qna.StatusPending {
				t.Errorf("listed status %q, want PENDING", status)
			}
			return pending, nil
		},
		OnUpdateStatus: func(ctx context.Context, id string, status qna.QuestionStatus) error {
			if status == qna.StatusFailed {
				failedIDs = append(failedIDs, id)
			}
			return nil
		},
	}
	mChunks := &MockChunkStore{
		OnSearchOwned: func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
			return singleHit(0.8), nil
		},
	}
	mLLM := &MockProvider{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			// The second question's text only appears in its own prompt.
			if containsQuestion(prompt, "second") {
				return "", errors.New("provider down")
			}
			return "drafted answer", nil
		},
	}

	engine := draft.NewEngine(&MockEmbedder{}, mLLM, mChunks, mQuestions, &MockCitationStore{})
	result, err := engine.RunBatch(context.Background(), project, nil)
	if err != nil {
		t.Fatalf("RunBatch returned error: %v", err)
	}

	if result.Processed != 2 {
		t.Errorf("Processed = %d, want 2", result.Processed)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if result.Drafted != 2 {
		t.Errorf("Drafted = %d, want 2", result.Drafted)
	}
	if len(failedIDs) != 1 || failedIDs[0] != "q-2" {
		t.Errorf("FAILED marks = %v, want [q-2]", failedIDs)
	}
}

func TestRunBatch_CountsByOutcome(t *testing.T) {
	// Similarities per row drive the classification: 0.9 drafts, 0.2
	// forces review.
	similarities := map[string]float64{"high": 0.9, "low": 0.2}
	project := &qna.Project{ID: "p-1", OwnerID: "owner-1", ReviewThreshold: 0.6}

	mQuestions := &MockQuestionStore{
		OnListByProject: func(ctx context.Context, projectID string, status qna.QuestionStatus) ([]qna.QuestionItem, error) {
			return []qna.QuestionItem{
				{ID: "q-1", QuestionText: "high", Status: qna.StatusPending},
				{ID: "q-2", QuestionText: "low", Status: qna.StatusPending},
			}, nil
		},
	}

	var lastQuery string
	mEmbed := &MockEmbedder{
		OnEmbed: func(ctx context.Context, text string) ([]float32, error) {
			lastQuery = text
			return []float32{0.5}, nil
		},
	}
	mChunks := &MockChunkStore{
		OnSearchOwned: func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
			return singleHit(similarities[lastQuery]), nil
		},
	}

	engine := draft.NewEngine(mEmbed, &MockProvider{}, mChunks, mQuestions, &MockCitationStore{})
	result, err := engine.RunBatch(context.Background(), project, nil)
	if err != nil {
		t.Fatalf("RunBatch returned error: %v", err)
	}

	if result.Processed != 2 || result.Drafted != 1 || result.NeedsReview != 1 {
		t.Errorf("result = %+v, want Processed 2 / Drafted 1 / NeedsReview 1", result)
	}
}

func TestRunBatch_NoPendingQuestions(t *testing.T) {
	var reported []int
	engine := draft.NewEngine(&MockEmbedder{}, &MockProvider{}, &MockChunkStore{}, &MockQuestionStore{}, &MockCitationStore{})
	result, err := engine.RunBatch(context.Background(), &qna.Project{ID: "p-1"}, func(p int) {
		reported = append(reported, p)
	})
	if err != nil {
		t.Fatalf("RunBatch returned error: %v", err)
	}

	if result.Processed != 0 || result.Failed != 0 {
		t.Errorf("non-zero result for empty project: %+v", result)
	}
	if last := reported[len(reported)-1]; last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
}

func TestRunBatch_ListFailureAborts(t *testing.T) {
	mQuestions := &MockQuestionStore{
		OnListByProject: func(ctx context.Context, projectID string, status qna.QuestionStatus) ([]qna.QuestionItem, error) {
			return nil, errors.New("db timeout")
		},
	}
	engine := draft.NewEngine(&MockEmbedder{}, &MockProvider{}, &MockChunkStore{}, mQuestions, &MockCitationStore{})
	if _, err := engine.RunBatch(context.Background(), &qna.Project{ID: "p-1"}, nil); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func containsQuestion(prompt, question string) bool {
	_, after, found := strings.Cut(prompt, "## Question:\n")
	return found && strings.Contains(after, question)
}
