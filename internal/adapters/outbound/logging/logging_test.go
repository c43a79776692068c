package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.Config{Level: "info", Format: "json", Service: "tappscheck"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("scan complete", "score", 98.0)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "scan complete", rec["msg"])
	assert.Equal(t, "tappscheck", rec["service"])
	assert.Equal(t, 98.0, rec["score"])
}

func TestNew_TextDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.Config{})
	require.NoError(t, err)

	logger.Info("quiet")
	assert.Empty(t, buf.String())
	logger.Warn("loud")
	assert.Contains(t, buf.String(), "msg=loud")
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, logging.Config{Format: "xml"})
	assert.Error(t, err)
}
