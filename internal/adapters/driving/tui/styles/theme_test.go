package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
}

func TestDefaultTheme_ColorsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	//nolint:misspell // using colors for technical accuracy
	colors := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Error,
		theme.Muted,
	}

	seen := make(map[string]bool)
	for _, c := range colors { //nolint:misspell // using colors for technical accuracy
		s := string(c)
		assert.False(t, seen[s], "colour %s used twice", s)
		seen[s] = true
	}
}

func TestNewStyles(t *testing.T) {
	s := NewStyles(DefaultTheme())

	require.NotNil(t, s)
	assert.True(t, s.Title.GetBold())
	assert.True(t, s.UserLabel.GetBold())
	assert.True(t, s.PersonaLabel.GetBold())
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}
