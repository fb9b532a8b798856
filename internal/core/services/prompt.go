package services

import (
	"github.com/scenechat/scenechat/internal/core/ports/driven"
)

// Prompt message framing. The history header matches the transcript
// rendering consumed by the model; changing either changes what the
// model sees as "previous conversation".
const (
	excerptHeader = "Relevant excerpt from the reference script:\n"
	historyHeader = "Previous conversation:\n"
)

// ComposePrompt assembles the message sequence for one chat turn.
// Messages appear in a fixed order: persona instruction, grounding
// excerpt (when retrieval produced one), rendered history, then the
// user's message. The history message is always present, even when
// the transcript is empty, so the model sees a consistent shape from
// the first turn onward.
func ComposePrompt(instruction, excerpt, history, message string) []driven.ChatMessage {
	messages := make([]driven.ChatMessage, 0, 4)

	messages = append(messages, driven.ChatMessage{
		Role:    driven.RoleSystem,
		Content: instruction,
	})

	if excerpt != "" {
		messages = append(messages, driven.ChatMessage{
			Role:    driven.RoleSystem,
			Content: excerptHeader + excerpt,
		})
	}

	messages = append(messages, driven.ChatMessage{
		Role:    driven.RoleSystem,
		Content: historyHeader + history,
	})

	messages = append(messages, driven.ChatMessage{
		Role:    driven.RoleUser,
		Content: message,
	})

	return messages
}
