// Package store persists per-session interview answers in a shared ledger.
package store

import (
	"context"
	"errors"
)

var (
	// ErrInvalidSession indicates an empty or unusable session identifier.
	ErrInvalidSession = errors.New("invalid session id")
	// ErrCorruptRecord indicates a stored answer that cannot be decoded.
	// Callers must surface it, never swallow it.
	ErrCorruptRecord = errors.New("corrupt session record")
)

// Answer is one recorded response. Score is nil for unscored answers;
// RemoteRef points at the original audio for audio-derived answers.
type Answer struct {
	Text      string `json:"text"`
	Score     *int   `json:"score,omitempty"`
	RemoteRef string `json:"remote_ref,omitempty"`
}

// ScoreOf adapts an int to the optional score field.
func ScoreOf(n int) *int {
	return &n
}

// Store is the session ledger contract. Field writes are atomic per field;
// nothing here provides cross-field transactions, which is why pipeline
// jobs for one session must be serialized by the caller.
type Store interface {
	// Answers returns all recorded answers keyed by question index.
	Answers(ctx context.Context, sessionID string) (map[int]Answer, error)
	// SetAnswer writes the answer under the question's field key,
	// overwriting any previous value at that index.
	SetAnswer(ctx context.Context, sessionID string, index int, answer Answer) error
	// DeleteAnswer removes the answer at index. Deleting a missing field
	// is not an error.
	DeleteAnswer(ctx context.Context, sessionID string, index int) error
	// Clear removes the whole session record.
	Clear(ctx context.Context, sessionID string) error
}
