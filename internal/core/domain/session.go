package domain

import "strings"

// SenderUser is the sender name recorded for user-authored turns.
// Assistant turns record the persona name instead.
const SenderUser = "User"

// Turn is a single message within a conversation. Turns are
// append-only: once recorded they are never mutated or removed.
type Turn struct {
	// Sender is "User" for user turns, or the persona name for replies.
	Sender string

	// Text is the message content.
	Text string
}

// Session is one user's ongoing conversation. Sessions live only for
// the process lifetime; they are never persisted across restarts.
type Session struct {
	// ID is the opaque unique session token.
	ID string

	// Transcript holds the turns in conversation order.
	Transcript []Turn
}

// RenderTranscript formats turns as "<sender>: <text>" lines joined by
// newlines. An empty transcript renders as the empty string. This is
// the exact shape fed to the generation service as conversation history.
func RenderTranscript(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = t.Sender + ": " + t.Text
	}
	return strings.Join(lines, "\n")
}
