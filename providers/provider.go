// Package providers implements generative text provider support with a
// unified interface.
//
// The conversation pipeline uses a text provider for two things: direct
// translation of a transcript (the prompt embeds the language names and the
// conversation context) and session title summarization. Providers are
// stateless; all conversational continuity is supplied in the prompt.
package providers

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the contract for generative text providers.
type Provider interface {
	// ID returns the provider identifier (for logging/debugging).
	ID() string

	// Generate produces text for a single stateless prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Close cleans up provider resources (e.g. HTTP connections).
	Close() error
}

// Common provider errors.
var (
	// ErrEmptyResponse is returned when the provider produces no usable text.
	ErrEmptyResponse = errors.New("provider returned empty response")

	// ErrUnavailable is returned when the provider cannot be reached or
	// rejects the request outright.
	ErrUnavailable = errors.New("provider unavailable")
)

// GenerationError represents an error from a text generation call.
type GenerationError struct {
	// Provider is the provider that returned the error.
	Provider string

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(provider, message string, cause error) *GenerationError {
	return &GenerationError{
		Provider: provider,
		Message:  message,
		Cause:    cause,
	}
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}
