package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ddbj/jvar/pkg/config"
	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	logDir := t.TempDir()
	defer slog.SetDefault(slog.Default())

	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	closer, err := Init(logDir, cfg, false)
	require.NoError(t, err)

	slog.Info("ledger loaded", "entries", 3)
	slog.Debug("hidden")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(filepath.Join(logDir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"ledger loaded"`)
	assert.Contains(t, string(content), `"entries":3`)
	assert.NotContains(t, string(content), "hidden")

	t.Run("append keeps previous records", func(t *testing.T) {
		closer, err := Init(logDir, cfg, true)
		require.NoError(t, err)
		slog.Warn("second run")
		require.NoError(t, closer.Close())

		content, err := os.ReadFile(filepath.Join(logDir, LogFile))
		require.NoError(t, err)
		assert.Contains(t, string(content), "ledger loaded")
		assert.Contains(t, string(content), "second run")
	})

	t.Run("fresh file drops previous records", func(t *testing.T) {
		closer, err := Init(logDir, cfg, false)
		require.NoError(t, err)
		require.NoError(t, closer.Close())

		content, err := os.ReadFile(filepath.Join(logDir, LogFile))
		require.NoError(t, err)
		assert.Empty(t, content)
	})
}

func TestInitBadDir(t *testing.T) {
	cfg := config.LogConfig{Format: "text", Level: "debug", Destination: "file"}
	_, err := Init(filepath.Join(t.TempDir(), "missing", "dir"), cfg, false)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.out, parseLevel(v.in), v.in)
	}
}
