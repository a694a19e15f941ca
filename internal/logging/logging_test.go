package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFormats(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := NewLogger(Config{Level: "debug", Format: format, Output: "stderr"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

func TestNewLoggerUnknownLevelFallsBack(t *testing.T) {
	logger, err := NewLogger(Config{Level: "chatty", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1)) // debug stays off at the info fallback
}

func TestNewLoggerFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combo-pricing.log")
	logger, err := NewLogger(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("catalog opened")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog opened")
}
