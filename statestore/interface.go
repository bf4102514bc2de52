// Package statestore provides conversation session persistence.
//
// Stores hold session documents keyed by session id. Pair appends are atomic
// and additive: concurrent appends to the same session must never lose a
// pair. Lifecycle fields (title, is_temporary, saved_at) are written only
// through MarkSaved; the session manager is the sole caller of that path.
package statestore

import (
	"context"
	"errors"
	"time"

	"github.com/US-AEON/Us-Backend/types"
)

// SchemaVersion is the current version of the persisted session document.
// Stores validate it at the boundary instead of accepting arbitrary key bags.
const SchemaVersion = 1

// Store defines the interface for persistent session storage.
type Store interface {
	// Load retrieves a full session by id.
	Load(ctx context.Context, id string) (*types.ConversationSession, error)

	// AppendPair appends a pair to the session's pair list, creating the
	// session as temporary if it does not exist. The append is additive:
	// concurrent calls on the same session never drop a pair.
	AppendPair(ctx context.Context, id string, pair types.ConversationPair) error

	// MarkSaved transitions the session out of its temporary state, setting
	// title and savedAt. Returns ErrNotFound if the session doesn't exist.
	MarkSaved(ctx context.Context, id, title string, savedAt time.Time) error

	// ListSaved returns summaries of saved sessions ordered by savedAt
	// descending, without pair bodies.
	ListSaved(ctx context.Context) ([]types.ConversationSummary, error)
}

// ErrNotFound is returned when a session doesn't exist in the store.
var ErrNotFound = errors.New("session not found")

// ErrInvalidID is returned when an invalid session ID is provided.
var ErrInvalidID = errors.New("invalid session ID")

// ErrSchemaVersion is returned when a stored document has an unknown schema
// version.
var ErrSchemaVersion = errors.New("unsupported session schema version")
