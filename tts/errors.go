package tts

import (
	"errors"
	"fmt"
)

// Common TTS errors.
var (
	// ErrEmptyText is returned when attempting to synthesize empty text.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrUnsupportedLanguage is returned when the language is not in the
	// supported set.
	ErrUnsupportedLanguage = errors.New("unsupported synthesis language")

	// ErrNoAudioContent is returned when the provider responds without audio.
	ErrNoAudioContent = errors.New("no audio content received")
)

// Provider error codes classified from the upstream API response. These
// mirror the recognition taxonomy so transport layers can map both uniformly.
const (
	CodeInvalidArgument  = "invalid_argument"
	CodePermissionDenied = "permission_denied"
	CodeQuotaExceeded    = "quota_exceeded"
	CodeOther            = "other"
)

// SynthesisError provides detailed error information from TTS providers.
type SynthesisError struct {
	// Provider is the TTS provider that returned the error.
	Provider string

	// Code is the classified error code.
	Code string

	// Message is the error message.
	Message string

	// Cause is the underlying error (if any).
	Cause error
}

// NewSynthesisError creates a new SynthesisError.
func NewSynthesisError(provider, code, message string, cause error) *SynthesisError {
	return &SynthesisError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Cause:    cause,
	}
}

// Error implements the error interface.
func (e *SynthesisError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s synthesis error [%s]: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s synthesis error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error.
func (e *SynthesisError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *SynthesisError) Is(target error) bool {
	if e.Cause != nil && errors.Is(e.Cause, target) {
		return true
	}
	t, ok := target.(*SynthesisError)
	if !ok {
		return false
	}
	return e.Provider == t.Provider && e.Code == t.Code
}

func classifyStatusCode(status int) string {
	switch status {
	case 400:
		return CodeInvalidArgument
	case 401, 403:
		return CodePermissionDenied
	case 429:
		return CodeQuotaExceeded
	default:
		return CodeOther
	}
}
