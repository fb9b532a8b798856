package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	ollamaembed "github.com/scenechat/scenechat/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/scenechat/scenechat/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/scenechat/scenechat/internal/adapters/driven/llm/ollama"
	openaillm "github.com/scenechat/scenechat/internal/adapters/driven/llm/openai"
	personafile "github.com/scenechat/scenechat/internal/adapters/driven/personas/file"
	"github.com/scenechat/scenechat/internal/adapters/driven/storage/memory"
	"github.com/scenechat/scenechat/internal/adapters/driven/storage/sqlite"
	"github.com/scenechat/scenechat/internal/adapters/driven/vector/flat"
	"github.com/scenechat/scenechat/internal/config"
	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driven"
	"github.com/scenechat/scenechat/internal/core/services"
	"github.com/scenechat/scenechat/internal/logger"
)

// buildEmbedding constructs the configured embedding backend.
func buildEmbedding(cfg *config.Config) (driven.EmbeddingService, error) {
	timeout := time.Duration(cfg.Embedding.TimeoutSecs) * time.Second

	switch cfg.Embedding.Backend {
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: timeout,
		})
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Embedding.Backend)
	}
}

// buildLLM constructs the configured generation backend.
func buildLLM(cfg *config.Config) (driven.LLMService, error) {
	timeout := time.Duration(cfg.LLM.TimeoutSecs) * time.Second

	switch cfg.LLM.Backend {
	case "openai":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: timeout,
		})
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.LLM.Backend)
	}
}

// openIndexStore opens the index database under the data directory.
func openIndexStore(cfg *config.Config) (*sqlite.Store, error) {
	dataDir, err := cfg.DefaultDataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return sqlite.NewStore(dataDir)
}

// loadVectorIndex loads the stored index pair and verifies it matches
// the configured embedding model.
func loadVectorIndex(
	ctx context.Context, store driven.IndexStore, embedder driven.EmbeddingService,
) (driven.VectorIndex, error) {
	stored, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if stored.Dimensions != embedder.Dimensions() {
		return nil, fmt.Errorf("index built with %d dimensions, embedding model %q uses %d: %w",
			stored.Dimensions, embedder.ModelName(), embedder.Dimensions(),
			domain.ErrDimensionMismatch)
	}
	if stored.ModelName != embedder.ModelName() {
		logger.Warn("Index built with model %q, configured model is %q",
			stored.ModelName, embedder.ModelName())
	}

	index, err := flat.FromStored(stored)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded index: %d chunk(s), %d dimensions (%s)",
		index.Len(), index.Dimensions(), stored.ModelName)
	return index, nil
}

// buildPersonaStore loads the persona table and starts watching the
// backing file when configured.
func buildPersonaStore(cfg *config.Config) (*personafile.Store, error) {
	store, err := personafile.NewStore(cfg.Persona.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Persona.Watch && cfg.Persona.Path != "" {
		if err := store.Watch(); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}

// buildChatService wires the full chat stack from config. The returned
// cleanup function closes every opened resource.
func buildChatService(ctx context.Context, cfg *config.Config) (*services.ChatService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	personas, err := buildPersonaStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() { _ = personas.Close() })

	llm, err := buildLLM(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() { _ = llm.Close() })

	var retriever *services.Retriever
	if cfg.Retrieval.Enabled {
		embedder, err := buildEmbedding(cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = embedder.Close() })

		store, err := openIndexStore(cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = store.Close() })

		index, err := loadVectorIndex(ctx, store, embedder)
		if err != nil {
			cleanup()
			return nil, nil, err
		}

		retriever = services.NewRetriever(embedder, index, cfg.Retrieval.TopK)
	}

	sessions := memory.NewSessionStore(cfg.Session.MaxSessions)
	opts := driven.ChatOptions{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}

	return services.NewChatService(sessions, personas, retriever, llm, opts), cleanup, nil
}
