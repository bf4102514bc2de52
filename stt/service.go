package stt

import (
	"context"

	"github.com/US-AEON/Us-Backend/language"
)

// Result is the outcome of one recognition call. It is produced once per
// call and never mutated.
type Result struct {
	// Transcript is the recognized text. Empty when nothing was recognized.
	Transcript string

	// Confidence is the provider's confidence in the transcript, in [0,1].
	Confidence float64

	// Language is the language the recognizer was hinted with.
	Language language.Language
}

// Service transcribes audio to text.
// This interface abstracts different STT providers (Google Cloud Speech,
// etc.) so the conversation pipeline can use any provider interchangeably.
type Service interface {
	// Name returns the provider identifier (for logging/debugging).
	Name() string

	// Recognize converts audio to text using lang as the language hint.
	// The audio container format is detected from the payload itself.
	Recognize(ctx context.Context, audio []byte, lang language.Language) (Result, error)
}
