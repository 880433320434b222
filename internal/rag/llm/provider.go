// Package llm defines the text-generation provider contract shared by the
// Gemini and OpenAI adapters.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the provider answers without usable
// text; the draft engine treats it like any other generation failure.
var ErrEmptyCompletion = errors.New("empty completion returned")

type Provider interface {
	// Generate produces a completion for the prompt. Implementations
	// return ErrEmptyCompletion when the provider yields blank output.
	Generate(ctx context.Context, prompt string) (string, error)
}
