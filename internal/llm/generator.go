package llm

import (
	"context"
	"errors"
)

// Generator produces natural-language coaching text. Implementations
// wrap one model endpoint; callers must treat failures as expected and
// fall back to templated text.
type Generator interface {
	// Generate returns the model's completion for the given system
	// instruction and user prompt.
	Generate(ctx context.Context, req Request) (string, error)

	// Name identifies the backing provider for logging.
	Name() string
}

// Request is one generation call.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// ErrEmptyCompletion is returned when the provider answered without
// usable text.
var ErrEmptyCompletion = errors.New("llm: empty completion")
