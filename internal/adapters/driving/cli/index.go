package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenechat/scenechat/internal/chunker"
	"github.com/scenechat/scenechat/internal/core/services"
)

var indexChunkSize int

var indexCmd = &cobra.Command{
	Use:   "index [script]",
	Short: "Build the retrieval index from a reference script",
	Long: `Splits the script into fixed-size word chunks, embeds every chunk,
and stores the chunk/vector pair in the index database. Any previous
index is replaced atomically.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().IntVar(&indexChunkSize, "chunk-size", 0, "words per chunk (default from config)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	embedder, err := buildEmbedding(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = embedder.Close() }()

	if err := embedder.Ping(ctx); err != nil {
		return fmt.Errorf("embedding backend unreachable: %w", err)
	}

	store, err := openIndexStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	chunkSize := cfg.Index.ChunkSize
	if indexChunkSize > 0 {
		chunkSize = indexChunkSize
	}

	indexer := services.NewIndexer(
		chunker.New(chunker.WithChunkSize(chunkSize)),
		embedder,
		store,
		cfg.Embedding.RequestsPerSecond,
	)

	stats, err := indexer.Build(ctx, args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Indexed %d chunk(s), %d dimensions (%s)\n",
		stats.Chunks, stats.Dimensions, stats.ModelName)
	return nil
}
