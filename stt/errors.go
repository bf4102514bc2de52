package stt

import (
	"errors"
	"fmt"
)

// Common errors for STT services.
var (
	// ErrEmptyAudio is returned when audio data is empty.
	ErrEmptyAudio = errors.New("audio data is empty")

	// ErrUnsupportedLanguage is returned when the language hint is not in
	// the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported recognition language")
)

// Provider error codes classified from the upstream API response.
const (
	CodeInvalidArgument  = "invalid_argument"
	CodePermissionDenied = "permission_denied"
	CodeQuotaExceeded    = "quota_exceeded"
	CodeOther            = "other"
)

// RecognitionError represents an error during a recognition call.
type RecognitionError struct {
	// Provider is the STT provider name.
	Provider string

	// Code is the classified error code (CodeInvalidArgument, etc.).
	Code string

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// NewRecognitionError creates a new RecognitionError.
func NewRecognitionError(provider, code, message string, cause error) *RecognitionError {
	return &RecognitionError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Cause:    cause,
	}
}

// Error implements the error interface.
func (e *RecognitionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s recognition error [%s]: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s recognition error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error.
func (e *RecognitionError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *RecognitionError) Is(target error) bool {
	if e.Cause != nil && errors.Is(e.Cause, target) {
		return true
	}
	t, ok := target.(*RecognitionError)
	if !ok {
		return false
	}
	return e.Provider == t.Provider && e.Code == t.Code
}

// classifyStatusCode maps an HTTP status from the Google APIs to the error
// code taxonomy shared by the speech services.
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
