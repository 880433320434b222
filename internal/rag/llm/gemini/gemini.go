package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/qflow/qflow-api/internal/rag/llm"
	"github.com/qflow/qflow-api/pkg/logging"
)

// Client generates answer drafts through the Gemini API.
type Client struct {
	genAI  *genai.Client
	model  string
	logger *logging.Logger
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{
		genAI:  c,
		model:  model,
		logger: logging.NewLogger("llm_gemini"),
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.genAI.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil && isRateLimited(err) {
		c.logger.Warn("rate limit hit, retrying once", "error", err)
		time.Sleep(5 * time.Second)
		result, err = c.genAI.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	}
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyCompletion
	}
	return text, nil
}

func isRateLimited(err error) bool {
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}
	return false
}
