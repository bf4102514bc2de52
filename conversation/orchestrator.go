package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/US-AEON/Us-Backend/language"
	"github.com/US-AEON/Us-Backend/logger"
	"github.com/US-AEON/Us-Backend/metrics"
	"github.com/US-AEON/Us-Backend/providers"
	"github.com/US-AEON/Us-Backend/session"
	"github.com/US-AEON/Us-Backend/tts"
	"github.com/US-AEON/Us-Backend/types"
)

// TurnResult is the outcome of one processed conversation turn.
type TurnResult struct {
	// SessionID identifies the session the pair was appended to. It is
	// freshly generated when the turn started without one.
	SessionID string

	// Pair is the persisted conversation pair.
	Pair types.ConversationPair

	// Audio is the synthesized MP3 of the translated (or original) text.
	Audio []byte
}

// Orchestrator runs complete conversation turns. A turn fans out the two
// recognition branches concurrently and then proceeds strictly
// sequentially: translate, synthesize, persist. It applies no retries and
// no timeouts of its own; a hung provider call hangs the turn.
type Orchestrator struct {
	selector *Selector
	synth    tts.Service
	textgen  providers.Provider
	sessions *session.Manager
	tracer   trace.Tracer
	now      func() time.Time
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithTracer sets the OTel tracer used for turn spans. Without it, spans
// are noop.
func WithTracer(tracer trace.Tracer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.tracer = tracer
	}
}

// WithTurnClock overrides the time source (for tests).
func WithTurnClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator creates a turn orchestrator.
func NewOrchestrator(selector *Selector, synth tts.Service, textgen providers.Provider, sessions *session.Manager, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		selector: selector,
		synth:    synth,
		textgen:  textgen,
		sessions: sessions,
		tracer:   noop.NewTracerProvider().Tracer("conversation"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessTurn runs one full turn: detect the source language, translate the
// transcript with recent-session context, synthesize the result, and append
// the finished pair to the session. sessionID may be empty to start a new
// temporary session.
func (o *Orchestrator) ProcessTurn(ctx context.Context, audio []byte, foreign language.Language, sessionID string) (TurnResult, error) {
	start := o.now()

	ctx, span := o.tracer.Start(ctx, "conversation.turn",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("language.foreign", foreign.Code()),
			attribute.Int("audio.bytes", len(audio)),
		),
	)
	defer span.End()

	result, err := o.processTurn(ctx, audio, foreign, sessionID)
	duration := o.now().Sub(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.ObserveTurn(metrics.StatusError, duration)
		return TurnResult{}, err
	}

	span.SetAttributes(attribute.String("language.detected", result.Pair.OriginalLanguage.Code()))
	span.SetStatus(codes.Ok, "")
	metrics.ObserveTurn(metrics.StatusSuccess, duration)
	logger.TurnCompleted(result.SessionID, result.Pair.OriginalLanguage.Code(), duration,
		"pair_id", result.Pair.ID,
		"translated", result.Pair.HasTranslation(),
	)
	return result, nil
}

func (o *Orchestrator) processTurn(ctx context.Context, audio []byte, foreign language.Language, sessionID string) (TurnResult, error) {
	detection, err := o.selector.SelectSource(ctx, audio, foreign)
	if err != nil {
		return TurnResult{}, err
	}
	metrics.RecordDetectedLanguage(detection.Language.Code())

	history := o.sessions.History(ctx, sessionID)
	plan := PlanTranslation(detection, foreign)

	translated, err := o.translate(ctx, plan, history)
	if err != nil {
		return TurnResult{}, fmt.Errorf("translate: %w", err)
	}

	speech, err := o.synthesize(ctx, translated, plan.Target)
	if err != nil {
		return TurnResult{}, fmt.Errorf("synthesize: %w", err)
	}

	pair := o.assemblePair(detection, plan, translated)
	id, err := o.sessions.AddPair(ctx, sessionID, pair)
	if err != nil {
		return TurnResult{}, fmt.Errorf("persist pair: %w", err)
	}

	return TurnResult{SessionID: id, Pair: pair, Audio: speech}, nil
}

// translate runs the provider translation for the plan. When both
// recognition branches resolved to the same language there is nothing to
// translate and the transcript passes through untouched.
func (o *Orchestrator) translate(ctx context.Context, plan TranslationPlan, history []types.ConversationPair) (string, error) {
	if !plan.NeedsTranslation() {
		return plan.Transcript, nil
	}

	ctx, span := o.tracer.Start(ctx, "conversation.translate",
		trace.WithAttributes(
			attribute.String("language.source", plan.Source.Code()),
			attribute.String("language.target", plan.Target.Code()),
		),
	)
	defer span.End()

	start := o.now()
	text, err := o.textgen.Generate(ctx, BuildTranslationPrompt(plan, history))
	metrics.ObserveProviderRequest(o.textgen.ID(), "translate", statusOf(err), o.now().Sub(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetStatus(codes.Ok, "")
	return strings.TrimSpace(text), nil
}

func (o *Orchestrator) synthesize(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	ctx, span := o.tracer.Start(ctx, "conversation.synthesize",
		trace.WithAttributes(attribute.String("language.target", lang.Code())),
	)
	defer span.End()

	start := o.now()
	audio, err := o.synth.Synthesize(ctx, text, lang)
	metrics.ObserveProviderRequest(o.synth.Name(), "synthesize", statusOf(err), o.now().Sub(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("audio.bytes", len(audio)))
	span.SetStatus(codes.Ok, "")
	return audio, nil
}

// assemblePair builds the pair to persist. When no real translation
// occurred the translated fields stay unset so the stored document omits
// them entirely.
func (o *Orchestrator) assemblePair(detection Detection, plan TranslationPlan, translated string) types.ConversationPair {
	pair := types.ConversationPair{
		ID:               uuid.NewString(),
		OriginalText:     detection.Transcript,
		OriginalLanguage: detection.Language,
		Timestamp:        o.now(),
		Confidence:       detection.Confidence,
	}
	if plan.NeedsTranslation() {
		pair.TranslatedText = translated
		pair.TranslatedLanguage = plan.Target
	}
	return pair
}

func statusOf(err error) string {
	if err != nil {
		return metrics.StatusError
	}
	return metrics.StatusSuccess
}
