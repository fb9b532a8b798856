package driven

import (
	"context"

	"github.com/scenechat/scenechat/internal/core/domain"
)

// VectorIndex provides exact nearest-neighbour search over the chunk
// vectors. The index is built once offline and is read-only at serve
// time, so any number of concurrent searches may proceed without
// coordination.
type VectorIndex interface {
	// Search finds the k nearest chunks to the query vector by
	// Euclidean distance, ascending. Ties on equal distance are broken
	// by ascending chunk id. Returns at most min(k, Len()) results.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error)

	// Len returns the number of indexed chunks.
	Len() int

	// Dimensions returns the vector dimensionality of the index.
	Dimensions() int
}
