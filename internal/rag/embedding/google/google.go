// Package google adapts the Gemini embedding API to the Embedder
// contract. text-embedding-004 is the model the knowledge base was built
// with, so it is the default for both ingestion and question embedding.
package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/qflow/qflow-api/internal/rag/embedding"
	"github.com/qflow/qflow-api/pkg/logging"
)

type Client struct {
	genAI  *genai.Client
	model  string
	logger *logging.Logger
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini embedding client: %w", err)
	}
	return &Client{
		genAI:  c,
		model:  model,
		logger: logging.NewLogger("embedding_google"),
	}, nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := c.doCall(ctx, text)
	if err != nil && isRateLimited(err) {
		// One courtesy retry after the provider sheds load; the job
		// runner owns real retry policy.
		c.logger.Warn("rate limit hit, retrying once", "error", err)
		time.Sleep(5 * time.Second)
		res, err = c.doCall(ctx, text)
	}
	if err != nil {
		return nil, fmt.Errorf("gemini embed content: %w", err)
	}
	if len(res.Embeddings) == 0 || len(res.Embeddings[0].Values) == 0 {
		return nil, embedding.ErrEmptyEmbedding
	}
	return res.Embeddings[0].Values, nil
}

func (c *Client) doCall(ctx context.Context, text string) (*genai.EmbedContentResponse, error) {
	return c.genAI.Models.EmbedContent(ctx, c.model, genai.Text(text),
		&genai.EmbedContentConfig{TaskType: "RETRIEVAL_DOCUMENT"})
}

func isRateLimited(err error) bool {
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}
	return false
}
