package flat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenechat/scenechat/internal/core/domain"
)

func chunksOf(texts ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	for i, txt := range texts {
		chunks[i] = domain.Chunk{ID: i, Text: txt}
	}
	return chunks
}

func TestNew_Validation(t *testing.T) {
	t.Run("empty pair", func(t *testing.T) {
		_, err := New(nil, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := New(chunksOf("a", "b"), [][]float32{{1, 0}})
		assert.ErrorIs(t, err, domain.ErrIndexCorrupt)
	})

	t.Run("out of order ids", func(t *testing.T) {
		chunks := []domain.Chunk{{ID: 1, Text: "a"}, {ID: 0, Text: "b"}}
		_, err := New(chunks, [][]float32{{1, 0}, {0, 1}})
		assert.ErrorIs(t, err, domain.ErrIndexCorrupt)
	})

	t.Run("uneven dimensions", func(t *testing.T) {
		_, err := New(chunksOf("a", "b"), [][]float32{{1, 0}, {0, 1, 2}})
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})
}

func TestSearch_NearestFirst(t *testing.T) {
	ix, err := New(chunksOf("origin", "far", "near"), [][]float32{
		{0, 0},
		{10, 10},
		{1, 0},
	})
	require.NoError(t, err)

	got, err := ix.Search(context.Background(), []float32{0.9, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "near", got[0].Chunk.Text)
	assert.Equal(t, "origin", got[1].Chunk.Text)
	assert.Less(t, got[0].Distance, got[1].Distance)
}

func TestSearch_SelfQueryIsExactMatch(t *testing.T) {
	vectors := [][]float32{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}
	ix, err := New(chunksOf("first", "second"), vectors)
	require.NoError(t, err)

	for i, v := range vectors {
		got, err := ix.Search(context.Background(), v, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, i, got[0].Chunk.ID)
		assert.Zero(t, got[0].Distance)
	}
}

func TestSearch_SingleChunkAlwaysWins(t *testing.T) {
	ix, err := New(chunksOf("only"), [][]float32{{5, 5}})
	require.NoError(t, err)

	got, err := ix.Search(context.Background(), []float32{-100, 37}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].Chunk.Text)
}

func TestSearch_TieBreaksOnChunkID(t *testing.T) {
	// Two chunks equidistant from the query: lower id wins.
	ix, err := New(chunksOf("left", "right"), [][]float32{
		{-1, 0},
		{1, 0},
	})
	require.NoError(t, err)

	got, err := ix.Search(context.Background(), []float32{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Chunk.ID)
	assert.Equal(t, 1, got[1].Chunk.ID)
}

func TestSearch_KClampedToLen(t *testing.T) {
	ix, err := New(chunksOf("a", "b"), [][]float32{{0, 0}, {1, 1}})
	require.NoError(t, err)

	got, err := ix.Search(context.Background(), []float32{0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Non-positive k behaves as top-1.
	got, err = ix.Search(context.Background(), []float32{0, 0}, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearch_DimensionMismatch(t *testing.T) {
	ix, err := New(chunksOf("a"), [][]float32{{0, 0, 0}})
	require.NoError(t, err)

	_, err = ix.Search(context.Background(), []float32{1, 2}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}
