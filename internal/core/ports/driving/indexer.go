package driving

import (
	"context"

	"github.com/scenechat/scenechat/internal/core/domain"
)

// IndexerService builds the retrieval index from a reference script.
// This is the offline half of the pipeline; serving loads its output
// read-only.
type IndexerService interface {
	// Build chunks the script at path, embeds every chunk, and
	// persists the chunk/vector pair. Returns domain.ErrEmptyCorpus
	// when the script contains no words.
	Build(ctx context.Context, path string) (domain.IndexStats, error)
}
