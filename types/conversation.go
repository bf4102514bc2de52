// Package types defines the shared data model for conversation turns and
// sessions. These types are persisted as documents by the statestore and
// exchanged between the conversation orchestrator and the session manager.
package types

import (
	"time"

	"github.com/US-AEON/Us-Backend/language"
)

// ConversationPair is the persisted record of one turn: what was said and
// how it was translated. A pair is created exactly once per turn, appended
// to a session, and never mutated or deleted afterwards.
//
// When both recognition hypotheses resolve to the same language no real
// translation occurred; the translated fields are omitted entirely rather
// than storing a duplicate of the original text.
type ConversationPair struct {
	ID                 string            `json:"id"`
	OriginalText       string            `json:"original_text"`
	OriginalLanguage   language.Language `json:"original_language"`
	TranslatedText     string            `json:"translated_text,omitempty"`
	TranslatedLanguage language.Language `json:"translated_language,omitempty"`
	Timestamp          time.Time         `json:"timestamp"`
	Confidence         float64           `json:"confidence"`
}

// HasTranslation reports whether the pair carries a real translation.
func (p ConversationPair) HasTranslation() bool {
	return p.TranslatedLanguage != language.Unknown
}

// ConversationSession is an ordered collection of pairs. Insertion order is
// chronological order.
//
// Lifecycle: a session is created implicitly (temporary) on first pair
// addition. It becomes saved exactly once, together with Title and SavedAt,
// and never reverts to temporary.
type ConversationSession struct {
	ID          string             `json:"id"`
	Title       string             `json:"title,omitempty"`
	IsTemporary bool               `json:"is_temporary"`
	Pairs       []ConversationPair `json:"pairs"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	SavedAt     *time.Time         `json:"saved_at,omitempty"`
}

// Saved reports whether the session has completed its lifecycle transition.
func (s *ConversationSession) Saved() bool {
	return !s.IsTemporary
}

// ConversationSummary is the listing projection of a saved session. It never
// carries pair bodies.
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	SavedAt   time.Time `json:"saved_at"`
	PairCount int       `json:"pair_count"`
}
