package statestore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/US-AEON/Us-Backend/types"
)

// MemoryStore provides an in-memory implementation of the Store interface.
// It is thread-safe and suitable for development, testing, and
// single-instance deployments. For distributed systems, use RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*types.ConversationSession
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*types.ConversationSession),
	}
}

// Load retrieves a session by id. Returns a deep copy to prevent external
// mutations.
func (s *MemoryStore) Load(ctx context.Context, id string) (*types.ConversationSession, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrNotFound
	}

	return deepCopySession(session), nil
}

// AppendPair appends a pair, creating the session as temporary if absent.
func (s *MemoryStore) AppendPair(ctx context.Context, id string, pair types.ConversationPair) error {
	if id == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	session, exists := s.sessions[id]
	if !exists {
		session = &types.ConversationSession{
			ID:          id,
			IsTemporary: true,
			CreatedAt:   now,
		}
		s.sessions[id] = session
	}

	session.Pairs = append(session.Pairs, pair)
	session.UpdatedAt = now
	return nil
}

// MarkSaved transitions the session out of its temporary state.
func (s *MemoryStore) MarkSaved(ctx context.Context, id, title string, savedAt time.Time) error {
	if id == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return ErrNotFound
	}

	session.Title = title
	session.IsTemporary = false
	saved := savedAt
	session.SavedAt = &saved
	session.UpdatedAt = savedAt
	return nil
}

// ListSaved returns summaries of saved sessions, newest savedAt first.
func (s *MemoryStore) ListSaved(ctx context.Context) ([]types.ConversationSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]types.ConversationSummary, 0)
	for _, session := range s.sessions {
		if session.IsTemporary || session.SavedAt == nil {
			continue
		}
		summaries = append(summaries, types.ConversationSummary{
			ID:        session.ID,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			SavedAt:   *session.SavedAt,
			PairCount: len(session.Pairs),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SavedAt.After(summaries[j].SavedAt)
	})

	return summaries, nil
}

// deepCopySession copies a session and its pair slice.
func deepCopySession(s *types.ConversationSession) *types.ConversationSession {
	sessionCopy := *s
	if s.SavedAt != nil {
		savedAt := *s.SavedAt
		sessionCopy.SavedAt = &savedAt
	}
	sessionCopy.Pairs = make([]types.ConversationPair, len(s.Pairs))
	copy(sessionCopy.Pairs, s.Pairs)
	return &sessionCopy
}
