package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driven"
	"github.com/scenechat/scenechat/internal/core/ports/driving"
	"github.com/scenechat/scenechat/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService orchestrates a chat turn: session bookkeeping, persona
// resolution, retrieval, prompt composition and reply generation.
//
// Turns within a single session are serialised through the session
// store's turn lock, so concurrent requests against the same session
// see a consistent transcript. Turns in different sessions never
// block each other.
type ChatService struct {
	sessions  driven.SessionStore
	personas  driven.PersonaStore
	retriever *Retriever // nil disables retrieval
	llm       driven.LLMService
	opts      driven.ChatOptions
}

// NewChatService creates a chat service. retriever may be nil, in
// which case replies are generated from persona and history alone.
func NewChatService(
	sessions driven.SessionStore,
	personas driven.PersonaStore,
	retriever *Retriever,
	llm driven.LLMService,
	opts driven.ChatOptions,
) *ChatService {
	return &ChatService{
		sessions:  sessions,
		personas:  personas,
		retriever: retriever,
		llm:       llm,
		opts:      opts,
	}
}

// NewSession creates an empty session and returns its id.
func (s *ChatService) NewSession(ctx context.Context) (string, error) {
	id, err := s.sessions.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	logger.Debug("Created session %s", id)
	return id, nil
}

// SendMessage runs one chat turn for the given session and persona.
//
// The transcript snapshot used in the prompt is taken before the user
// turn is appended, so the model never sees the message it is being
// asked to answer duplicated in the history. If reply generation
// fails after the user turn was appended, the turn stays in the
// transcript; the caller may simply retry.
func (s *ChatService) SendMessage(
	ctx context.Context, sessionID, persona, message string,
) (domain.ChatReply, error) {
	release, err := s.sessions.Acquire(ctx, sessionID)
	if err != nil {
		return domain.ChatReply{}, err
	}
	defer release()

	history, err := s.sessions.Render(ctx, sessionID)
	if err != nil {
		return domain.ChatReply{}, err
	}

	instruction := s.personas.Resolve(persona)

	var excerpt string
	if s.retriever != nil {
		excerpt, err = s.retrieveExcerpt(ctx, message)
		if err != nil {
			return domain.ChatReply{}, err
		}
	}

	userTurn := domain.Turn{Sender: domain.SenderUser, Text: message}
	if err := s.sessions.Append(ctx, sessionID, userTurn); err != nil {
		return domain.ChatReply{}, err
	}

	messages := ComposePrompt(instruction, excerpt, history, message)

	reply, err := s.llm.Chat(ctx, messages, s.opts)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("generating reply: %w", err)
	}

	replyTurn := domain.Turn{Sender: persona, Text: reply}
	if err := s.sessions.Append(ctx, sessionID, replyTurn); err != nil {
		return domain.ChatReply{}, err
	}

	logger.Debug("Session %s: %s replied (%d chars)", sessionID, persona, len(reply))
	return domain.ChatReply{
		SessionID: sessionID,
		Persona:   persona,
		Text:      reply,
		Excerpt:   excerpt,
	}, nil
}

// retrieveExcerpt fetches the nearest chunks for the message and joins
// their texts into one grounding excerpt.
func (s *ChatService) retrieveExcerpt(ctx context.Context, message string) (string, error) {
	results, err := s.retriever.Retrieve(ctx, message)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Chunk.Text)
	}
	return strings.Join(texts, "\n\n"), nil
}
