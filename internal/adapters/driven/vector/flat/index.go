// Package flat provides an exact nearest-neighbour vector index.
// Every query scans all stored vectors; with a few hundred script
// chunks this is faster and simpler than any approximate structure.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an immutable flat vector index over the script chunks.
// Position i holds the vector for chunk id i. Safe for concurrent use.
type Index struct {
	chunks     []domain.Chunk
	vectors    [][]float32
	dimensions int
}

// New builds an index from a matched chunk/vector pair. It rejects
// empty input, length mismatches, out-of-order chunk ids, and vectors
// of uneven dimensionality: a broken pair must never become a
// servable index.
func New(chunks []domain.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks but %d vectors",
			domain.ErrIndexCorrupt, len(chunks), len(vectors))
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-length vector at position 0", domain.ErrIndexCorrupt)
	}
	for i := range chunks {
		if chunks[i].ID != i {
			return nil, fmt.Errorf("%w: chunk at position %d has id %d",
				domain.ErrIndexCorrupt, i, chunks[i].ID)
		}
		if len(vectors[i]) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d",
				domain.ErrDimensionMismatch, i, len(vectors[i]), dim)
		}
	}

	return &Index{chunks: chunks, vectors: vectors, dimensions: dim}, nil
}

// FromStored builds an index from a loaded index pair.
func FromStored(stored *driven.StoredIndex) (*Index, error) {
	return New(stored.Chunks, stored.Vectors)
}

// Search returns the k chunks nearest to the query vector by Euclidean
// distance, ascending. Equal distances are broken by ascending chunk
// id, so results are stable across runs.
func (ix *Index) Search(_ context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if len(query) != ix.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), ix.dimensions)
	}
	if k <= 0 {
		k = 1
	}
	if k > len(ix.chunks) {
		k = len(ix.chunks)
	}

	results := make([]domain.RetrievedChunk, len(ix.chunks))
	for i := range ix.vectors {
		results[i] = domain.RetrievedChunk{
			Chunk:    ix.chunks[i],
			Distance: euclidean(query, ix.vectors[i]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})

	return results[:k], nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// Dimensions returns the vector dimensionality of the index.
func (ix *Index) Dimensions() int {
	return ix.dimensions
}

// euclidean computes the L2 distance between two equal-length vectors.
func euclidean(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}
