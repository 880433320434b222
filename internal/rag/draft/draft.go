// Package draft answers questionnaire items from the knowledge base:
// embed the question, retrieve the nearest chunks, prompt the LLM, score
// confidence and classify the result.
package draft

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/metrics"
	"github.com/qflow/qflow-api/internal/rag/embedding"
	"github.com/qflow/qflow-api/internal/rag/llm"
	"github.com/qflow/qflow-api/internal/rag/vectordb"
	"github.com/qflow/qflow-api/pkg/logging"
)

// systemPrompt pins the model to the retrieved context. The "Not enough
// information" phrasing is load-bearing: it is also the canned answer
// when retrieval comes back empty, so reviewers see one consistent
// signal for unanswerable questions.
const systemPrompt = `You are answering security questionnaires for a B2B company.
Your task is to provide accurate, concise answers based ONLY on the provided context.
If the context does not contain enough information to answer the question, respond with "Not enough information".
Do not use any external knowledge or make assumptions beyond what is provided in the context.`

const noInformationAnswer = "Not enough information"

// Outcome is the result of drafting one question.
type Outcome struct {
	Answer     string
	Confidence float64
	Status     qna.QuestionStatus
	Chunks     []qna.ScoredChunk
}

// Policy carries the project settings that steer status classification.
type Policy struct {
	OwnerID         string
	ReviewThreshold float64
	AutoApprove     bool
}

type Engine struct {
	embedder  embedding.Embedder
	provider  llm.Provider
	chunks    vectordb.ChunkStore
	questions qna.QuestionStore
	citations qna.CitationStore
	logger    *logging.Logger
}

func NewEngine(
	embedder embedding.Embedder,
	provider llm.Provider,
	chunks vectordb.ChunkStore,
	questions qna.QuestionStore,
	citations qna.CitationStore,
) *Engine {
	return &Engine{
		embedder:  embedder,
		provider:  provider,
		chunks:    chunks,
		questions: questions,
		citations: citations,
		logger:    logging.NewLogger("draft"),
	}
}

// ProcessQuestion runs the full draft pipeline for one question and
// persists the outcome. An error anywhere leaves the question unchanged;
// the batch layer decides what failure means.
func (e *Engine) ProcessQuestion(ctx context.Context, question qna.QuestionItem, policy Policy) (*Outcome, error) {
	loggr := e.logger.With("traceId", ctx.Value(config.TraceIDKey), "questionId", question.ID)

	vec, err := e.embedder.Embed(ctx, question.QuestionText)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	metrics.EmbeddingCalls.Inc()
	vec = embedding.NormalizeDim(vec, e.logger)

	hits, err := e.chunks.SearchOwned(ctx, policy.OwnerID, vec, config.RetrievalTopK)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	// No knowledge to draw on: short-circuit with the canned answer,
	// zero confidence and a forced review. No LLM call is made.
	if len(hits) == 0 {
		loggr.Warn("no chunks found for question")
		outcome := &Outcome{
			Answer:     noInformationAnswer,
			Confidence: 0,
			Status:     qna.StatusNeedsReview,
		}
		if err := e.saveOutcome(ctx, question.ID, outcome); err != nil {
			return nil, err
		}
		return outcome, nil
	}

	answer, err := e.provider.Generate(ctx, buildPrompt(question.QuestionText, hits))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	confidence := CalculateConfidence(hits[0].Similarity)
	outcome := &Outcome{
		Answer:     strings.TrimSpace(answer),
		Confidence: confidence,
		Status:     DetermineStatus(confidence, policy.ReviewThreshold, policy.AutoApprove),
		Chunks:     hits,
	}
	if err := e.saveOutcome(ctx, question.ID, outcome); err != nil {
		return nil, err
	}

	loggr.Info("question drafted", "status", outcome.Status, "confidence", fmt.Sprintf("%.2f", confidence))
	return outcome, nil
}

// saveOutcome replaces the citations and writes the draft fields. The
// citation set always mirrors the latest draft, so prior rows go first.
func (e *Engine) saveOutcome(ctx context.Context, questionID string, outcome *Outcome) error {
	citations := make([]qna.AnswerCitation, 0, len(outcome.Chunks))
	for _, hit := range outcome.Chunks {
		citations = append(citations, qna.AnswerCitation{
			ID:             uuid.NewString(),
			QuestionItemID: questionID,
			ChunkID:        hit.ChunkID,
			Score:          hit.Similarity,
			Snippet:        snippet(hit.Content),
			CreatedAt:      time.Now(),
		})
	}
	if err := e.citations.ReplaceForQuestion(ctx, questionID, citations); err != nil {
		return fmt.Errorf("save citations: %w", err)
	}
	if err := e.questions.SaveDraft(ctx, questionID, outcome.Answer, outcome.Confidence, outcome.Status); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	metrics.QuestionsDrafted.WithLabelValues(string(outcome.Status)).Inc()
	return nil
}

// buildPrompt assembles system instructions, the numbered context block
// and the question into a single completion prompt.
func buildPrompt(question string, hits []qna.ScoredChunk) string {
	contextParts := make([]string, len(hits))
	for i, hit := range hits {
		contextParts[i] = fmt.Sprintf("[%d] %s", i+1, hit.Content)
	}
	return fmt.Sprintf("%s\n\n## Context:\n%s\n\n## Question:\n%s\n\n## Answer:",
		systemPrompt, strings.Join(contextParts, "\n\n"), question)
}

// CalculateConfidence derives confidence from the best retrieval
// similarity, clamped to [0, 1].
func CalculateConfidence(topSimilarity float64) float64 {
	if topSimilarity < 0 {
		return 0
	}
	if topSimilarity > 1 {
		return 1
	}
	return topSimilarity
}

// DetermineStatus classifies a drafted question. Below the review
// threshold always wins; auto-approve only applies to confident answers.
func DetermineStatus(confidence, reviewThreshold float64, autoApprove bool) qna.QuestionStatus {
	switch {
	case confidence < reviewThreshold:
		return qna.StatusNeedsReview
	case autoApprove:
		return qna.StatusApproved
	default:
		return qna.StatusDrafted
	}
}

// snippet returns the first CitationSnippetLen runes of content.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= config.CitationSnippetLen {
		return content
	}
	return string(runes[:config.CitationSnippetLen])
}
