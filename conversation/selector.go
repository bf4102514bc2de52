package conversation

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/US-AEON/Us-Backend/language"
	"github.com/US-AEON/Us-Backend/logger"
	"github.com/US-AEON/Us-Backend/stt"
)

// ErrInvalidForeignLanguage is returned when the requested foreign language
// is the default language, Unknown, or otherwise outside the supported set.
var ErrInvalidForeignLanguage = errors.New("conversation: foreign language must be a supported non-default language")

// Detection is the chosen source-language recognition outcome of a turn.
type Detection struct {
	// Transcript is the recognized text in the detected language.
	Transcript string

	// Language is the language the speaker was determined to be using.
	Language language.Language

	// Confidence is the recognizer's confidence for the winning branch.
	Confidence float64
}

// Selector determines which language a turn's audio was spoken in by
// recognizing it twice, once hinted with the default language and once with
// the requested foreign language, and comparing confidences.
type Selector struct {
	recognizer stt.Service
}

// NewSelector creates a selector over the given recognizer.
func NewSelector(recognizer stt.Service) *Selector {
	return &Selector{recognizer: recognizer}
}

// SelectSource runs both recognition branches concurrently and picks the
// winner. Both branches must succeed: a failure on either cancels the
// sibling and fails the turn. On a confidence tie the default language wins.
func (s *Selector) SelectSource(ctx context.Context, audio []byte, foreign language.Language) (Detection, error) {
	if len(audio) == 0 {
		return Detection{}, stt.ErrEmptyAudio
	}
	if !foreign.IsForeign() {
		return Detection{}, fmt.Errorf("%w: %q", ErrInvalidForeignLanguage, foreign)
	}

	var defaultResult, foreignResult stt.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defaultResult, err = s.recognizer.Recognize(gctx, audio, language.Default)
		return err
	})
	g.Go(func() error {
		var err error
		foreignResult, err = s.recognizer.Recognize(gctx, audio, foreign)
		return err
	})
	if err := g.Wait(); err != nil {
		return Detection{}, fmt.Errorf("dual recognition: %w", err)
	}

	detection := pickDetection(defaultResult, foreignResult)
	logger.Debug("source language selected",
		"detected", detection.Language.Code(),
		"confidence", detection.Confidence,
		"default_confidence", defaultResult.Confidence,
		"foreign_confidence", foreignResult.Confidence,
	)
	return detection, nil
}

// pickDetection compares the two branch results by confidence. Ties go to
// the default-language branch.
func pickDetection(defaultResult, foreignResult stt.Result) Detection {
	winner := defaultResult
	if foreignResult.Confidence > defaultResult.Confidence {
		winner = foreignResult
	}
	return Detection{
		Transcript: winner.Transcript,
		Language:   winner.Language,
		Confidence: winner.Confidence,
	}
}
