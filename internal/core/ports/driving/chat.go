package driving

import (
	"context"

	"github.com/scenechat/scenechat/internal/core/domain"
)

// ChatService provides persona chat capabilities to external actors.
type ChatService interface {
	// NewSession creates an empty session and returns its id.
	NewSession(ctx context.Context) (string, error)

	// SendMessage runs one chat turn: retrieves grounding context for
	// the message, generates a reply in the persona's voice, records
	// both turns in the session transcript, and returns the reply.
	// Returns domain.ErrInvalidSession for an unknown session id.
	SendMessage(ctx context.Context, sessionID, persona, message string) (domain.ChatReply, error)
}
