package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedding.Backend)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.True(t, cfg.Retrieval.Enabled)
	assert.Equal(t, 1, cfg.Retrieval.TopK)
	assert.Equal(t, 300, cfg.Index.ChunkSize)
	assert.Equal(t, 1024, cfg.Session.MaxSessions)
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[llm]
model = "gpt-4o"

[index]
chunk_size = 120

[retrieval]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 120, cfg.Index.ChunkSize)
	assert.False(t, cfg.Retrieval.Enabled)
	// Untouched sections keep their defaults.
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 60, cfg.Embedding.TimeoutSecs)
	assert.Equal(t, 1, cfg.Retrieval.TopK)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := Default()
	cfg.LLM.Model = "gpt-4o"
	cfg.Index.ChunkSize = 42
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", loaded.LLM.Model)
	assert.Equal(t, 42, loaded.Index.ChunkSize)
}

func TestDefaultDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/tmp/scenechat-data"
	dir, err := cfg.DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/scenechat-data", dir)

	cfg.DataDir = ""
	dir, err = cfg.DefaultDataDir()
	require.NoError(t, err)
	assert.Contains(t, dir, ".scenechat")
}
