package applog

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(New(&buf, slog.LevelDebug))
	Logger().Debug("refresh", "layer", "features")
	assert.Contains(t, buf.String(), "layer=features")

	SetLogger(nil)
	buf.Reset()
	Logger().Error("dropped")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
	l, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
