package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driven"
	"github.com/scenechat/scenechat/internal/logger"
)

// DefaultTopK is the number of chunks retrieved per query when no
// explicit count is configured.
const DefaultTopK = 1

// Retriever answers text queries with the nearest indexed chunks. It
// embeds the query with the same model that embedded the corpus and
// delegates the distance work to the vector index.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	topK     int
}

// NewRetriever creates a retriever over the given embedder and index.
// A topK of zero or less falls back to DefaultTopK.
func NewRetriever(embedder driven.EmbeddingService, index driven.VectorIndex, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// Retrieve returns the chunks nearest to the query text, nearest
// first. The query must contain at least one non-whitespace character.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.index.Search(ctx, vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	logger.Debug("Retrieved %d chunk(s) for query (top distance %.4f)",
		len(results), topDistance(results))
	return results, nil
}

func topDistance(results []domain.RetrievedChunk) float32 {
	if len(results) == 0 {
		return 0
	}
	return results[0].Distance
}
