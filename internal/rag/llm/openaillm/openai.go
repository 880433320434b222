package openaillm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/qflow/qflow-api/internal/rag/llm"
)

// Client generates answer drafts through the OpenAI chat completions API.
type Client struct {
	openAI openai.Client
	model  string
}

func New(apiKey, model string) *Client {
	return &Client{
		openAI: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := c.openAI.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(res.Choices) == 0 || strings.TrimSpace(res.Choices[0].Message.Content) == "" {
		return "", llm.ErrEmptyCompletion
	}
	return res.Choices[0].Message.Content, nil
}
