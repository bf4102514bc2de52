package session

import "errors"

// Lifecycle errors surfaced to the transport boundary.
var (
	// ErrSessionNotFound is returned when the session id is unknown.
	ErrSessionNotFound = errors.New("conversation session not found")

	// ErrSessionNotSaved is returned when detail is requested for a session
	// that is still temporary.
	ErrSessionNotSaved = errors.New("conversation session not yet saved")

	// ErrEmptySession is returned when saving a session that has no pairs
	// or does not exist.
	ErrEmptySession = errors.New("no conversation content to save")

	// ErrAlreadySaved is returned when saving a session a second time.
	// The saved state is terminal; the transition happens exactly once.
	ErrAlreadySaved = errors.New("conversation session already saved")
)
