package services

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"github.com/scenechat/scenechat/internal/chunker"
	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driven"
	"github.com/scenechat/scenechat/internal/core/ports/driving"
	"github.com/scenechat/scenechat/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.IndexerService = (*Indexer)(nil)

// embedBatchSize is the number of chunks embedded per API call.
const embedBatchSize = 32

// Indexer builds the retrieval index: it chunks a reference script,
// embeds every chunk, and persists the chunk/vector pair through the
// index store.
type Indexer struct {
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	store    driven.IndexStore
	limiter  *rate.Limiter
}

// NewIndexer creates an indexer. requestsPerSecond caps embedding API
// calls during a build; zero or less means unlimited.
func NewIndexer(
	ch *chunker.Chunker,
	embedder driven.EmbeddingService,
	store driven.IndexStore,
	requestsPerSecond float64,
) *Indexer {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Indexer{
		chunker:  ch,
		embedder: embedder,
		store:    store,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Build reads the script at path, splits it into chunks, embeds each
// chunk, and atomically replaces any previously stored index.
func (ix *Indexer) Build(ctx context.Context, path string) (domain.IndexStats, error) {
	logger.Section("Index Build")

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("reading script: %w", err)
	}

	chunks := ix.chunker.Split(string(data))
	if len(chunks) == 0 {
		return domain.IndexStats{}, fmt.Errorf("script %s: %w", path, domain.ErrEmptyCorpus)
	}
	logger.Info("Split %s into %d chunk(s)", path, len(chunks))

	vectors, err := ix.embedAll(ctx, chunks)
	if err != nil {
		return domain.IndexStats{}, err
	}

	stored := &driven.StoredIndex{
		Chunks:     chunks,
		Vectors:    vectors,
		ModelName:  ix.embedder.ModelName(),
		Dimensions: ix.embedder.Dimensions(),
	}
	if err := ix.store.Save(ctx, stored); err != nil {
		return domain.IndexStats{}, fmt.Errorf("saving index: %w", err)
	}

	stats := domain.IndexStats{
		Chunks:     len(chunks),
		Dimensions: stored.Dimensions,
		ModelName:  stored.ModelName,
	}
	logger.Info("Indexed %d chunk(s), %d dimensions (%s)",
		stats.Chunks, stats.Dimensions, stats.ModelName)
	return stats, nil
}

// embedAll embeds the chunks in batches, preserving chunk order.
func (ix *Indexer) embedAll(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		if err := ix.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Text)
		}

		batch, err := ix.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunks %d-%d: %w", start, end-1, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedding chunks %d-%d: got %d vectors for %d texts",
				start, end-1, len(batch), len(texts))
		}
		vectors = append(vectors, batch...)

		logger.Debug("Embedded chunks %d-%d of %d", start, end-1, len(chunks))
	}

	return vectors, nil
}
