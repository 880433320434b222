// Package openaiembed is the OpenAI-backed Embedder, selected when the
// deployment runs on the OpenAI provider family instead of Gemini.
package openaiembed

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/qflow/qflow-api/internal/rag/embedding"
)

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

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := c.openAI.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed content: %w", err)
	}
	if len(res.Data) == 0 || len(res.Data[0].Embedding) == 0 {
		return nil, embedding.ErrEmptyEmbedding
	}
	vec := make([]float32, len(res.Data[0].Embedding))
	for i, v := range res.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
