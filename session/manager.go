// Package session owns the conversation session lifecycle.
//
// A session is created implicitly, as temporary, when the first pair is
// appended. Saving a session generates a summary title, marks it permanent,
// and stamps savedAt; that transition happens exactly once and never
// reverts. The manager is the only writer of lifecycle fields — the
// orchestrator appends pairs and reads context, nothing else.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/US-AEON/Us-Backend/logger"
	"github.com/US-AEON/Us-Backend/metrics"
	"github.com/US-AEON/Us-Backend/providers"
	"github.com/US-AEON/Us-Backend/statestore"
	"github.com/US-AEON/Us-Backend/types"
)

// Manager coordinates session state transitions over a backing store and a
// generative text provider for title summarization.
type Manager struct {
	store  statestore.Store
	titles providers.Provider
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session manager.
func NewManager(store statestore.Store, titles providers.Provider, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		titles: titles,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddPair appends a pair to the session, creating it when sessionID is
// empty or unknown. Returns the session id the pair landed in.
func (m *Manager) AddPair(ctx context.Context, sessionID string, pair types.ConversationPair) (string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if err := m.store.AppendPair(ctx, sessionID, pair); err != nil {
		return "", err
	}

	logger.Debug("pair appended", "session_id", sessionID, "pair_id", pair.ID)
	return sessionID, nil
}

// SaveResult is the outcome of a successful save.
type SaveResult struct {
	SessionID string
	Title     string
}

// Save transitions a temporary session to saved, generating its title.
//
// A session with zero pairs — including one that does not exist at all —
// cannot be saved. Title generation failure does not fail the save; a
// deterministic fallback title is substituted instead. This is the one
// place a provider failure is deliberately swallowed.
func (m *Manager) Save(ctx context.Context, sessionID string) (SaveResult, error) {
	session, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, statestore.ErrNotFound) || errors.Is(err, statestore.ErrInvalidID) {
			return SaveResult{}, ErrEmptySession
		}
		return SaveResult{}, err
	}
	if len(session.Pairs) == 0 {
		return SaveResult{}, ErrEmptySession
	}
	if session.Saved() {
		return SaveResult{}, ErrAlreadySaved
	}

	title := m.generateTitle(ctx, session.Pairs)
	savedAt := m.now()

	if err := m.store.MarkSaved(ctx, sessionID, title, savedAt); err != nil {
		return SaveResult{}, err
	}

	metrics.RecordSessionSaved()
	logger.Info("session saved", "session_id", sessionID, "title", title, "pairs", len(session.Pairs))

	return SaveResult{SessionID: sessionID, Title: title}, nil
}

// ListSaved returns summaries of saved sessions, newest first.
func (m *Manager) ListSaved(ctx context.Context) ([]types.ConversationSummary, error) {
	return m.store.ListSaved(ctx)
}

// Detail returns the full session including pairs. Temporary sessions are
// not visible through this path.
func (m *Manager) Detail(ctx context.Context, sessionID string) (*types.ConversationSession, error) {
	session, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, statestore.ErrNotFound) || errors.Is(err, statestore.ErrInvalidID) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !session.Saved() {
		return nil, ErrSessionNotSaved
	}
	return session, nil
}

// History returns the session's pairs for translation context. Any read
// failure, including "not found", yields an empty history: a fresh turn is
// allowed to proceed with no context rather than fail.
func (m *Manager) History(ctx context.Context, sessionID string) []types.ConversationPair {
	if sessionID == "" {
		return nil
	}

	session, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, statestore.ErrNotFound) {
			logger.Warn("failed to load conversation history", "session_id", sessionID, "error", err)
		}
		return nil
	}
	return session.Pairs
}
