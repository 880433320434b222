package draft_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/rag/draft"
)

func singleHit(similarity float64) []qna.ScoredChunk {
	return []qna.ScoredChunk{
		{ChunkID: "chunk-1", DocumentID: "doc-1", Content: "We encrypt data at rest with AES-256.", Similarity: similarity},
	}
}

func TestProcessQuestion_Scenarios(t *testing.T) {
	question := qna.QuestionItem{ID: "q-1", ProjectID: "p-1", RowIndex: 1, QuestionText: "Is data encrypted at rest?"}
	policy := draft.Policy{OwnerID: "owner-1", ReviewThreshold: 0.6, AutoApprove: false}

	tests := []struct {
		name           string
		policy         draft.Policy
		setupMocks     func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore)
		wantAnswer     string
		wantConfidence float64
		wantStatus     qna.QuestionStatus
		wantErr        string
	}{
		{
			name:   "Success_Drafted",
			policy: policy,
			setupMocks: func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore) {
				c.OnSearchOwned = func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
					return singleHit(0.85), nil
				}
				p.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					return "  Yes, all data is encrypted at rest.  ", nil
				}
			},
			wantAnswer:     "Yes, all data is encrypted at rest.",
			wantConfidence: 0.85,
			wantStatus:     qna.StatusDrafted,
		},
		{
			name:   "Success_Auto_Approved",
			policy: draft.Policy{OwnerID: "owner-1", ReviewThreshold: 0.6, AutoApprove: true},
			setupMocks: func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore) {
				c.OnSearchOwned = func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
					return singleHit(0.9), nil
				}
			},
			wantAnswer:     "mocked draft answer",
			wantConfidence: 0.9,
			wantStatus:     qna.StatusApproved,
		},
		{
			name:   "Success_Below_Threshold",
			policy: policy,
			setupMocks: func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore) {
				c.OnSearchOwned = func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
					return singleHit(0.3), nil
				}
			},
			wantAnswer:     "mocked draft answer",
			wantConfidence: 0.3,
			wantStatus:     qna.StatusNeedsReview,
		},
		{
			name:   "Empty_Retrieval_Short_Circuit",
			policy: policy,
			setupMocks: func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore) {
				c.OnSearchOwned = func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
					return nil, nil
				}
				p.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					t.Error("LLM must not be called when retrieval is empty")
					return "", nil
				}
			},
			wantAnswer:     "Not enough information",
			wantConfidence: 0,
			wantStatus:     qna.StatusNeedsReview,
		},
		{
			name:   "Failure_Embedding",
			policy: policy,
			setupMocks: func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore) {
				e.OnEmbed = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			wantErr: "embed question",
		},
		{
			name:   "Failure_Vector_Search",
			policy: policy,
			setupMocks: func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore) {
				c.OnSearchOwned = func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
					return nil, errors.New("db timeout")
				}
			},
			wantErr: "search chunks",
		},
		{
			name:   "Failure_LLM_Generation",
			policy: policy,
			setupMocks: func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore) {
				c.OnSearchOwned = func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
					return singleHit(0.8), nil
				}
				p.OnGenerate = func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			wantErr: "generate answer",
		},
		{
			name:   "Failure_Save_Draft",
			policy: policy,
			setupMocks: func(e *MockEmbedder, p *MockProvider, c *MockChunkStore, q *MockQuestionStore, cit *MockCitationStore) {
				c.OnSearchOwned = func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
					return singleHit(0.8), nil
				}
				q.OnSaveDraft = func(ctx context.Context, id string, answer string, confidence float64, status qna.QuestionStatus) error {
					return errors.New("connection refused")
				}
			},
			wantErr: "save draft",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mLLM := &MockProvider{}
			mChunks := &MockChunkStore{}
			mQuestions := &MockQuestionStore{}
			mCitations := &MockCitationStore{}
			tt.setupMocks(mEmbed, mLLM, mChunks, mQuestions, mCitations)

			engine := draft.NewEngine(mEmbed, mLLM, mChunks, mQuestions, mCitations)
			outcome, err := engine.ProcessQuestion(context.Background(), question, tt.policy)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ProcessQuestion returned error: %v", err)
			}
			if outcome.Answer != tt.wantAnswer {
				t.Errorf("Answer = %q, want %q", outcome.Answer, tt.wantAnswer)
			}
			if outcome.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", outcome.Confidence, tt.wantConfidence)
			}
			if outcome.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", outcome.Status, tt.wantStatus)
			}
		})
	}
}

func TestProcessQuestion_PromptShape(t *testing.T) {
	var prompt string
	mChunks := &MockChunkStore{
		OnSearchOwned: func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
			return []qna.ScoredChunk{
				{ChunkID: "c1", Content: "first chunk text", Similarity: 0.9},
				{ChunkID: "c2", Content: "second chunk text", Similarity: 0.8},
			}, nil
		},
	}
	mLLM := &MockProvider{
		OnGenerate: func(ctx context.Context, p string) (string, error) {
			prompt = p
			return "answer", nil
		},
	}

	engine := draft.NewEngine(&MockEmbedder{}, mLLM, mChunks, &MockQuestionStore{}, &MockCitationStore{})
	question := qna.QuestionItem{ID: "q-1", QuestionText: "Do you support SSO?"}
	if _, err := engine.ProcessQuestion(context.Background(), question, draft.Policy{OwnerID: "o"}); err != nil {
		t.Fatalf("ProcessQuestion returned error: %v", err)
	}

	for _, want := range []string{
		"[1] first chunk text",
		"[2] second chunk text",
		"## Context:",
		"## Question:\nDo you support SSO?",
		"## Answer:",
		"Not enough information",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt: %s", want, prompt)
		}
	}
}

func TestProcessQuestion_CitationsMirrorRetrieval(t *testing.T) {
	longContent := strings.Repeat("a", 350)
	var saved []qna.AnswerCitation

	mChunks := &MockChunkStore{
		OnSearchOwned: func(ctx context.Context, ownerID string, vector []float32, k int) ([]qna.ScoredChunk, error) {
			return []qna.ScoredChunk{
				{ChunkID: "c1", Content: longContent, Similarity: 0.92},
				{ChunkID: "c2", Content: "short", Similarity: 0.75},
			}, nil
		},
	}
	mCitations := &MockCitationStore{
		OnReplaceForQuestion: func(ctx context.Context, questionItemID string, citations []qna.AnswerCitation) error {
			saved = citations
			return nil
		},
	}

	engine := draft.NewEngine(&MockEmbedder{}, &MockProvider{}, mChunks, &MockQuestionStore{}, mCitations)
	question := qna.QuestionItem{ID: "q-9", QuestionText: "Backups?"}
	if _, err := engine.ProcessQuestion(context.Background(), question, draft.Policy{OwnerID: "o"}); err != nil {
		t.Fatalf("ProcessQuestion returned error: %v", err)
	}

	if len(saved) != 2 {
		t.Fatalf("saved %d citations, want 2", len(saved))
	}
	if saved[0].QuestionItemID != "q-9" || saved[1].QuestionItemID != "q-9" {
		t.Error("citations not linked to the question")
	}
	if saved[0].ChunkID != "c1" || saved[0].Score != 0.92 {
		t.Errorf("first citation = %+v", saved[0])
	}
	if got := len([]rune(saved[0].Snippet)); got != 200 {
		t.Errorf("snippet length = %d runes, want 200", got)
	}
	if saved[1].Snippet != "short" {
		t.Errorf("short content must be kept whole, got %q", saved[1].Snippet)
	}
}

func TestCalculateConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"In_Range", 0.73, 0.73},
		{"Clamped_Low", -0.2, 0},
		{"Clamped_High", 1.4, 1},
		{"Zero", 0, 0},
		{"One", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := draft.CalculateConfidence(tt.in); got != tt.want {
				t.Errorf("CalculateConfidence(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		name        string
		confidence  float64
		threshold   float64
		autoApprove bool
		want        qna.QuestionStatus
	}{
		{"Below_Threshold", 0.4, 0.6, false, qna.StatusNeedsReview},
		{"Below_Threshold_Ignores_AutoApprove", 0.4, 0.6, true, qna.StatusNeedsReview},
		{"Confident_Default", 0.8, 0.6, false, qna.StatusDrafted},
		{"Confident_AutoApprove", 0.8, 0.6, true, qna.StatusApproved},
		{"Exactly_At_Threshold", 0.6, 0.6, false, qna.StatusDrafted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := draft.DetermineStatus(tt.confidence, tt.threshold, tt.autoApprove)
			if got != tt.want {
				t.Errorf("DetermineStatus(%v, %v, %v) = %v, want %v",
					tt.confidence, tt.threshold, tt.autoApprove, got, tt.want)
			}
		})
	}
}
