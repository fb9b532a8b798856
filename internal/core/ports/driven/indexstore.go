package driven

import (
	"context"

	"github.com/scenechat/scenechat/internal/core/domain"
)

// StoredIndex is the persisted index pair: the ordered chunk sequence
// and its vectors, with the metadata needed to detect mismatches at
// load time. Chunks[i] and Vectors[i] always describe the same text;
// the two sequences are written and read as a unit.
type StoredIndex struct {
	// Chunks is the ordered chunk sequence. Chunks[i].ID == i.
	Chunks []domain.Chunk

	// Vectors holds one embedding per chunk, in chunk order.
	Vectors [][]float32

	// ModelName is the embedding model that produced the vectors.
	ModelName string

	// Dimensions is the length of every vector.
	Dimensions int
}

// IndexStore persists and loads the index pair. Implementations must
// guarantee the pair property: a load either yields matching chunk and
// vector sequences or an error, never a partial result.
type IndexStore interface {
	// Save atomically replaces any previously stored index.
	Save(ctx context.Context, idx *StoredIndex) error

	// Load reads the stored index. Returns domain.ErrIndexMissing when
	// no index has been built, domain.ErrIndexCorrupt when the chunk
	// and vector sequences do not match.
	Load(ctx context.Context) (*StoredIndex, error)

	// Close releases resources.
	Close() error
}
