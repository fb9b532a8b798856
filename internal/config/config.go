// Package config loads and validates the Scenechat configuration file.
// Configuration is stored as TOML, by default at ~/.scenechat/config.toml.
// Secrets (API keys) are never stored in the file; they come from the
// environment, optionally via a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	// Backend is "openai" or "ollama".
	Backend string `toml:"backend"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL overrides the backend API base URL.
	BaseURL string `toml:"base_url,omitempty"`

	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`

	// RequestsPerSecond caps embedding calls during index builds.
	// Zero means no limit.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// LLMConfig selects and configures the generation backend.
type LLMConfig struct {
	// Backend is "openai" or "ollama".
	Backend string `toml:"backend"`

	// Model is the chat model name.
	Model string `toml:"model"`

	// BaseURL overrides the backend API base URL.
	BaseURL string `toml:"base_url,omitempty"`

	// MaxTokens caps reply length. Zero means backend default.
	MaxTokens int `toml:"max_tokens"`

	// Temperature controls reply randomness.
	Temperature float64 `toml:"temperature"`

	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// RetrievalConfig configures query-time retrieval.
type RetrievalConfig struct {
	// Enabled toggles script grounding for chat replies. When true the
	// index pair must exist and be non-empty at startup.
	Enabled bool `toml:"enabled"`

	// TopK is the number of chunks retrieved per message.
	TopK int `toml:"top_k"`
}

// IndexConfig configures the offline index build.
type IndexConfig struct {
	// ChunkSize is the number of words per chunk.
	ChunkSize int `toml:"chunk_size"`
}

// SessionConfig configures in-memory session handling.
type SessionConfig struct {
	// MaxSessions caps live sessions; the least recently used session
	// is evicted when the cap is exceeded. Zero disables eviction.
	MaxSessions int `toml:"max_sessions"`
}

// PersonaConfig configures the persona table.
type PersonaConfig struct {
	// Path is an optional TOML file layered over the built-in
	// personas. Entries in the file win on name collisions.
	Path string `toml:"path,omitempty"`

	// Watch reloads the persona file when it changes on disk.
	Watch bool `toml:"watch"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	// Addr is the listen address for `scenechat serve`.
	Addr string `toml:"addr"`
}

// Config is the root configuration structure.
type Config struct {
	// DataDir holds the index database. Defaults to ~/.scenechat/data.
	DataDir string `toml:"data_dir,omitempty"`

	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Index     IndexConfig     `toml:"index"`
	Session   SessionConfig   `toml:"session"`
	Persona   PersonaConfig   `toml:"persona"`
	Server    ServerConfig    `toml:"server"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Backend:     "openai",
			Model:       "text-embedding-3-small",
			TimeoutSecs: 60,
		},
		LLM: LLMConfig{
			Backend:     "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			TimeoutSecs: 120,
		},
		Retrieval: RetrievalConfig{
			Enabled: true,
			TopK:    1,
		},
		Index: IndexConfig{
			ChunkSize: 300,
		},
		Session: SessionConfig{
			MaxSessions: 1024,
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
	}
}

// Load reads a config from the given path. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./scenechat.toml first, then ~/.scenechat/config.toml.
// Returns the loaded config and the path it came from ("" for defaults).
func LoadDefault() (*Config, string, error) {
	const cwdPath = "scenechat.toml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}

	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}

	return Default(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// DefaultDataDir resolves the data directory, falling back to
// ~/.scenechat/data when unset.
func (c *Config) DefaultDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scenechat", "data"), nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scenechat", "config.toml"), nil
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Embedding.Backend == "" {
		cfg.Embedding.Backend = def.Embedding.Backend
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = def.Embedding.Model
	}
	if cfg.Embedding.TimeoutSecs == 0 {
		cfg.Embedding.TimeoutSecs = def.Embedding.TimeoutSecs
	}
	if cfg.LLM.Backend == "" {
		cfg.LLM.Backend = def.LLM.Backend
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = def.LLM.Model
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = def.LLM.TimeoutSecs
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Index.ChunkSize == 0 {
		cfg.Index.ChunkSize = def.Index.ChunkSize
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
}
