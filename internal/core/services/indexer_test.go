package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenechat/scenechat/internal/chunker"
	"github.com/scenechat/scenechat/internal/core/domain"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndexer_Build(t *testing.T) {
	path := writeScript(t, "alpha beta gamma delta epsilon zeta")
	embedder := &mockEmbeddingService{}
	store := &mockIndexStore{}
	ix := NewIndexer(chunker.New(chunker.WithChunkSize(2)), embedder, store, 0)

	stats, err := ix.Build(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Chunks)
	assert.Equal(t, 2, stats.Dimensions)
	assert.Equal(t, "mock-embed", stats.ModelName)

	require.NotNil(t, store.saved)
	require.Len(t, store.saved.Chunks, 3)
	require.Len(t, store.saved.Vectors, 3)
	assert.Equal(t, "alpha beta", store.saved.Chunks[0].Text)
	assert.Equal(t, "epsilon zeta", store.saved.Chunks[2].Text)
}

func TestIndexer_EmptyScript(t *testing.T) {
	for _, content := range []string{"", "   \n\t  "} {
		path := writeScript(t, content)
		ix := NewIndexer(chunker.New(), &mockEmbeddingService{}, &mockIndexStore{}, 0)

		_, err := ix.Build(context.Background(), path)
		assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
	}
}

func TestIndexer_MissingFile(t *testing.T) {
	ix := NewIndexer(chunker.New(), &mockEmbeddingService{}, &mockIndexStore{}, 0)

	_, err := ix.Build(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading script")
}

func TestIndexer_BatchesLargeCorpus(t *testing.T) {
	// 50 single-word chunks force two embedding batches.
	words := make([]string, 50)
	for i := range words {
		words[i] = "word"
	}
	path := writeScript(t, strings.Join(words, " "))

	embedder := &mockEmbeddingService{}
	store := &mockIndexStore{}
	ix := NewIndexer(chunker.New(chunker.WithChunkSize(1)), embedder, store, 0)

	stats, err := ix.Build(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Chunks)
	assert.Equal(t, []int{32, 18}, embedder.batchSize)
	assert.Len(t, store.saved.Vectors, 50)
}

func TestIndexer_EmbeddingFailure(t *testing.T) {
	path := writeScript(t, "one two three")
	embedder := &mockEmbeddingService{batchErr: errors.New("quota exceeded")}
	store := &mockIndexStore{}
	ix := NewIndexer(chunker.New(), embedder, store, 0)

	_, err := ix.Build(context.Background(), path)
	require.Error(t, err)
	assert.Nil(t, store.saved)
}

func TestIndexer_SaveFailure(t *testing.T) {
	path := writeScript(t, "one two three")
	store := &mockIndexStore{saveErr: errors.New("disk full")}
	ix := NewIndexer(chunker.New(), &mockEmbeddingService{}, store, 0)

	_, err := ix.Build(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving index")
}
