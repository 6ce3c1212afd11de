package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/wsi2fiona/internal/config"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorAlways)
	assert.True(t, Enabled())
	assert.NotEmpty(t, Red)

	Configure(config.ColorNever)
	assert.False(t, Enabled())
	assert.Empty(t, Red)
	assert.Empty(t, NC)
}

func TestIsTerminal_RegularFile(t *testing.T) {
	assert.False(t, IsTerminal(nil), "nil file is not a terminal")

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f), "regular file reported as terminal")
	assert.Equal(t, 80, Width(f, 80))
}
