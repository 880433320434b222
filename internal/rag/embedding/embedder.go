// Package embedding defines the provider contract for turning text into
// vectors, and the dimensionality normalization every stored vector goes
// through. Question and chunk embeddings must come from the same provider
// so they live in the same vector space.
package embedding

import (
	"context"
	"errors"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/pkg/logging"
)

// ErrEmptyEmbedding distinguishes a provider that answered with no vector
// from a transport failure.
var ErrEmptyEmbedding = errors.New("empty embedding returned")

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// NormalizeDim coerces a vector to exactly config.EmbeddingDimension
// components: zero-padded when shorter, truncated when longer. The vector
// column has a fixed width, so a shape mismatch is corrected with a
// warning instead of failing the pipeline.
func NormalizeDim(vec []float32, log *logging.Logger) []float32 {
	if len(vec) == config.EmbeddingDimension {
		return vec
	}
	if log != nil {
		log.Warn("embedding dimension mismatch", "got", len(vec), "want", config.EmbeddingDimension)
	}
	out := make([]float32, config.EmbeddingDimension)
	copy(out, vec)
	return out
}
