package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// ErrGeneration wraps every transport or provider failure crossing the
// gateway boundary. Callers see one error kind; no retries happen here.
var ErrGeneration = errors.New("llm generation failed")

// GenerationError wraps a provider failure with ErrGeneration so callers
// can match it with errors.Is.
func GenerationError(err error) error {
	return fmt.Errorf("%w: %v", ErrGeneration, err)
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the full response.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream sends a chat history and returns the response as a channel
	// of text fragments. Fragments concatenated in arrival order reconstruct
	// the full text. The fragment channel is closed when the response ends;
	// a mid-stream failure is reported on the error channel (at most one
	// value) after the fragment channel closes.
	ChatStream(ctx context.Context, history []Message, options ...Option) (<-chan string, <-chan error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
