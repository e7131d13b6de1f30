// internal/util/logger_test.go
package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestMaskSensitive(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: maskSensitive}))
	logger.Info("Login attempt", "username", "js", "pin", 1111, "Close-PIN", 1111)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "js", line["username"])
	assert.Equal(t, "******", line["pin"])
	assert.Equal(t, "******", line["Close-PIN"])
}

func TestIsError(t *testing.T) {
	wrapped := fmt.Errorf("transfer: failed to get sender: %w", ErrNotFound)
	assert.True(t, IsError(wrapped, ErrNotFound))
	assert.False(t, IsError(wrapped, ErrAuthFailure))
}
