package tts

import (
	"context"

	"github.com/US-AEON/Us-Backend/language"
)

// Service converts text to speech audio.
type Service interface {
	// Name returns the provider identifier (for logging/debugging).
	Name() string

	// Synthesize converts text to MP3 audio in the given language.
	Synthesize(ctx context.Context, text string, lang language.Language) ([]byte, error)

	// Voices returns the voices this provider can synthesize with.
	Voices() []Voice
}

// Voice describes a synthesis voice.
type Voice struct {
	// ID is the provider-specific voice identifier.
	ID string

	// Language is the language this voice speaks.
	Language language.Language

	// Gender is the voice gender ("MALE", "FEMALE", "NEUTRAL").
	Gender string
}
