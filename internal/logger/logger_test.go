package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/jwebster45206/encounter-engine/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	log := Setup(&config.Config{Environment: "production", LogLevel: slog.LevelWarn})
	assert.Same(t, log, slog.Default())
	assert.False(t, log.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, log.Enabled(t.Context(), slog.LevelWarn))

	log = Setup(&config.Config{Environment: "development", LogLevel: slog.LevelDebug})
	assert.True(t, log.Enabled(t.Context(), slog.LevelDebug))
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	WithError(WithRequestID(base, "r-1"), errors.New("boom")).Info("failed")
	assert.Contains(t, buf.String(), "request_id=r-1")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNew_Format(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, &config.Config{Environment: "production", LogLevel: slog.LevelInfo}).Info("hello", "n", 1)
	assert.JSONEq(t, `{"level":"INFO","msg":"hello","n":1}`, stripTime(t, buf.Bytes()))

	buf.Reset()
	New(&buf, &config.Config{Environment: "development", LogLevel: slog.LevelInfo}).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func stripTime(t *testing.T, line []byte) string {
	t.Helper()
	var m map[string]any
	assert.NoError(t, json.Unmarshal(line, &m))
	delete(m, "time")
	out, _ := json.Marshal(m)
	return string(out)
}
