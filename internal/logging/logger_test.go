package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/wsi2fiona/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "wsi2fiona.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[INFO] to file")
}

func TestDebug_RespectsVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer
	New(&quiet, false).Debug("hidden %d", 1)
	New(&loud, true).Debug("shown %d", 2)

	assert.Zero(t, quiet.Len(), "non-verbose logger wrote debug output: %q", quiet.String())
	assert.Contains(t, loud.String(), "[DEBUG] shown 2")
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Success("ok")
	l.Warn("careful")
	l.Error("broken")
	out := buf.String()
	for _, want := range []string{"[SUCCESS] ok", "[WARN] careful", "[ERROR] broken"} {
		assert.Contains(t, out, want)
	}
}
