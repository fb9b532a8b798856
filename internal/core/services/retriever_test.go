package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenechat/scenechat/internal/core/domain"
)

func TestRetriever_Retrieve(t *testing.T) {
	embedder := &mockEmbeddingService{vector: []float32{3, 4}}
	index := &mockVectorIndex{hits: []domain.RetrievedChunk{
		{Chunk: domain.Chunk{ID: 2, Text: "closest"}, Distance: 0.1},
		{Chunk: domain.Chunk{ID: 0, Text: "further"}, Distance: 0.9},
	}}
	r := NewRetriever(embedder, index, 2)

	results, err := r.Retrieve(context.Background(), "a question")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "closest", results[0].Chunk.Text)
	assert.Equal(t, []float32{3, 4}, index.lastQuery)
	assert.Equal(t, 2, index.lastK)
}

func TestRetriever_EmptyQuery(t *testing.T) {
	r := NewRetriever(&mockEmbeddingService{}, &mockVectorIndex{}, 1)

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := r.Retrieve(context.Background(), query)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	}
}

func TestRetriever_DefaultTopK(t *testing.T) {
	index := &mockVectorIndex{hits: []domain.RetrievedChunk{
		{Chunk: domain.Chunk{ID: 0, Text: "a"}, Distance: 0.1},
		{Chunk: domain.Chunk{ID: 1, Text: "b"}, Distance: 0.2},
	}}
	r := NewRetriever(&mockEmbeddingService{vector: []float32{1, 0}}, index, 0)

	results, err := r.Retrieve(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, DefaultTopK, index.lastK)
}

func TestRetriever_EmbeddingFailure(t *testing.T) {
	embedder := &mockEmbeddingService{embedErr: errors.New("api down")}
	r := NewRetriever(embedder, &mockVectorIndex{}, 1)

	_, err := r.Retrieve(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding query")
}
