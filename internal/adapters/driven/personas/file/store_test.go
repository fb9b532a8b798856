package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_BuiltIn(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	got := store.Resolve("Yoda")
	assert.Contains(t, got, "Jedi Master")

	got = store.Resolve("Iron Man")
	assert.Contains(t, got, "Tony Stark")
}

func TestResolve_UnknownSynthesises(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	got := store.Resolve("Paddington Bear")
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "Paddington Bear")
}

func TestNewStore_MissingFileUsesDefaults(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "personas.toml"))
	require.NoError(t, err)

	assert.Contains(t, store.Resolve("Joker"), "chaotic")
}

func TestNewStore_FileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.toml")
	content := `
[[personas]]
name = "Sherlock Holmes"
instruction = "You are Sherlock Holmes, the consulting detective."

[[personas]]
name = "Yoda"
instruction = "Overridden, this instruction is."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	assert.Equal(t, "You are Sherlock Holmes, the consulting detective.",
		store.Resolve("Sherlock Holmes"))
	// File entries win over built-ins.
	assert.Equal(t, "Overridden, this instruction is.", store.Resolve("Yoda"))
	// Untouched built-ins survive.
	assert.Contains(t, store.Resolve("Harry Potter"), "Hogwarts")
}

func TestNewStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[personas]\nbroken"), 0o600))

	_, err := NewStore(path)
	assert.Error(t, err)
}

func TestPersonas_SortedByName(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	personas := store.Personas()
	require.NotEmpty(t, personas)
	for i := 1; i < len(personas); i++ {
		assert.Less(t, personas[i-1].Name, personas[i].Name)
	}
}

func TestReload_PicksUpFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.toml")
	store, err := NewStore(path)
	require.NoError(t, err)

	content := `
[[personas]]
name = "Gandalf"
instruction = "You are Gandalf the Grey."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, store.Reload())

	assert.Equal(t, "You are Gandalf the Grey.", store.Resolve("Gandalf"))
}
