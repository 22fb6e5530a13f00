package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, &Config{Level: "warn", Format: "json"})

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "v", entry["k"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, &Config{Level: "debug", Format: "text"})

	l.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, &Config{Format: "json"}))
	defer slog.SetDefault(prev)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithEnvelopeID(ctx, "env-1")
	Info(ctx, "submitted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "env-1", entry["envelope_id"])
}
