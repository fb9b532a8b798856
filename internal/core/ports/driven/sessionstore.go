package driven

import (
	"context"

	"github.com/scenechat/scenechat/internal/core/domain"
)

// SessionStore owns all sessions and their transcripts. No other
// component may mutate a transcript. Sessions live only for the
// process lifetime; there is no persistence across restarts.
type SessionStore interface {
	// Create generates a new unique session id with an empty
	// transcript and returns the id. Ids never collide within a
	// process lifetime.
	Create(ctx context.Context) (string, error)

	// Acquire takes the session's turn lock and returns a release
	// function, serialising callers working on the same session.
	// Returns domain.ErrInvalidSession for an unknown id without
	// allocating any per-id state. The lock's lifetime is the
	// session's: eviction frees it.
	Acquire(ctx context.Context, sessionID string) (release func(), err error)

	// Append adds a turn to the end of the session's transcript.
	// Returns domain.ErrInvalidSession for an unknown id; no session
	// state is mutated in that case.
	Append(ctx context.Context, sessionID string, turn domain.Turn) error

	// Render returns the transcript formatted as "<sender>: <text>"
	// lines in conversation order. An empty transcript renders as "".
	// Returns domain.ErrInvalidSession for an unknown id.
	Render(ctx context.Context, sessionID string) (string, error)

	// Transcript returns a copy of the session's turns in order.
	// Returns domain.ErrInvalidSession for an unknown id.
	Transcript(ctx context.Context, sessionID string) ([]domain.Turn, error)
}
