package driven

import "context"

// LLMService is the reply generation service. The core treats it as an
// opaque generate(messages) -> text collaborator: message assembly is
// the prompt composer's job, response parsing is the adapter's.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini and friends)
//   - Ollama (local models)
type LLMService interface {
	// Chat produces a reply for an ordered sequence of role-tagged
	// messages. Errors surface as opaque failures; no retries.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to fail fast on misconfiguration.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system" or "user".
	Role string

	// Content is the message text.
	Content string
}

// Message roles understood by every LLMService implementation.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatOptions configures reply generation.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	// Zero means the backend default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
