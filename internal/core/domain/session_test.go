package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTranscript(t *testing.T) {
	t.Run("empty transcript", func(t *testing.T) {
		assert.Equal(t, "", RenderTranscript(nil))
		assert.Equal(t, "", RenderTranscript([]Turn{}))
	})

	t.Run("single turn", func(t *testing.T) {
		turns := []Turn{{Sender: SenderUser, Text: "Hello"}}
		assert.Equal(t, "User: Hello", RenderTranscript(turns))
	})

	t.Run("preserves order", func(t *testing.T) {
		turns := []Turn{
			{Sender: SenderUser, Text: "Hello"},
			{Sender: "Yoda", Text: "Greet you, I do."},
			{Sender: SenderUser, Text: "Teach me"},
		}
		want := "User: Hello\nYoda: Greet you, I do.\nUser: Teach me"
		assert.Equal(t, want, RenderTranscript(turns))
	})
}

func TestGenericInstruction(t *testing.T) {
	got := GenericInstruction("Gandalf")
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "Gandalf")
}
