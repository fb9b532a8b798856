package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenechat/scenechat/internal/core/domain"
)

func TestCreate_UniqueIDs(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := store.Create(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 100, store.Len())
}

func TestAppendRender_Ordering(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	id, err := store.Create(ctx)
	require.NoError(t, err)

	rendered, err := store.Render(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "", rendered, "fresh session renders empty")

	require.NoError(t, store.Append(ctx, id, domain.Turn{Sender: domain.SenderUser, Text: "A"}))
	require.NoError(t, store.Append(ctx, id, domain.Turn{Sender: "Yoda", Text: "B"}))

	rendered, err = store.Render(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "User: A\nYoda: B", rendered)

	turns, err := store.Transcript(ctx, id)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.Turn{Sender: domain.SenderUser, Text: "A"}, turns[0])
	assert.Equal(t, domain.Turn{Sender: "Yoda", Text: "B"}, turns[1])
}

func TestUnknownSession(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	existing, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, existing, domain.Turn{Sender: domain.SenderUser, Text: "kept"}))

	err = store.Append(ctx, "no-such-id", domain.Turn{Sender: domain.SenderUser, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = store.Render(ctx, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	_, err = store.Transcript(ctx, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)

	// The failed calls must not have touched the existing session.
	turns, err := store.Transcript(ctx, existing)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "kept", turns[0].Text)
}

func TestTranscript_ReturnsCopy(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	id, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, id, domain.Turn{Sender: domain.SenderUser, Text: "original"}))

	turns, err := store.Transcript(ctx, id)
	require.NoError(t, err)
	turns[0].Text = "tampered"

	again, err := store.Transcript(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Text)
}

func TestLRUEviction(t *testing.T) {
	store := NewSessionStore(2)
	ctx := context.Background()

	first, err := store.Create(ctx)
	require.NoError(t, err)
	second, err := store.Create(ctx)
	require.NoError(t, err)

	// Touch the first session so the second becomes least recently used.
	require.NoError(t, store.Append(ctx, first, domain.Turn{Sender: domain.SenderUser, Text: "hi"}))

	third, err := store.Create(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
	_, err = store.Render(ctx, second)
	assert.ErrorIs(t, err, domain.ErrInvalidSession, "LRU session should be evicted")

	_, err = store.Render(ctx, first)
	assert.NoError(t, err)
	_, err = store.Render(ctx, third)
	assert.NoError(t, err)
}

func TestEvictionDisabled(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := store.Create(ctx)
		require.NoError(t, err, fmt.Sprintf("create %d", i))
	}
	assert.Equal(t, 50, store.Len())
}

func TestAcquire_UnknownAllocatesNothing(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	id, err := store.Create(ctx)
	require.NoError(t, err)

	// Probing with made-up ids must not grow the store.
	for i := 0; i < 100; i++ {
		_, err := store.Acquire(ctx, fmt.Sprintf("made-up-%d", i))
		assert.ErrorIs(t, err, domain.ErrInvalidSession)
	}
	assert.Equal(t, 1, store.Len())

	release, err := store.Acquire(ctx, id)
	require.NoError(t, err)
	release()
}

func TestAcquire_SerialisesSameSession(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	id, err := store.Create(ctx)
	require.NoError(t, err)

	release, err := store.Acquire(ctx, id)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r, err := store.Acquire(ctx, id)
		assert.NoError(t, err)
		r()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire should block until release")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire should proceed after release")
	}
}

func TestAcquire_EvictedSessionFreesLock(t *testing.T) {
	store := NewSessionStore(1)
	ctx := context.Background()

	first, err := store.Create(ctx)
	require.NoError(t, err)

	// Creating a second session evicts the first along with its lock.
	_, err = store.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	_, err = store.Acquire(ctx, first)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}
