package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"pdb-explorer/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "", want: slog.LevelInfo},
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "warn", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: " error ", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, NewJSONLogger(&buf, slog.LevelDebug).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, NewJSONLogger(&buf, slog.LevelInfo).Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, NewConsoleLogger(&buf, slog.LevelDebug).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, NewConsoleLogger(&buf, slog.LevelError).Enabled(context.Background(), slog.LevelWarn))
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("lookup completed", slog.String("pdb_id", "4HHB"))

	assert.NotContains(t, buf.String(), "hidden")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lookup completed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "4HHB", entry["pdb_id"])
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, slog.LevelWarn)

	logger.Info("quiet")
	logger.Warn("fasta fallback", slog.String("pdb_id", "1ABC"))

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "fasta fallback")
	assert.Contains(t, out, "pdb_id=1ABC")
	assert.Contains(t, out, "WARN")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, slog.LevelInfo)

	ctx := requestid.WithRequestID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	WithRequestID(ctx, base).Info("test message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", entry["request_id"])
}

func TestWithRequestID_Empty(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, slog.LevelInfo)

	logger := WithRequestID(context.Background(), base)
	assert.Same(t, base, logger)

	logger.Info("test message")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestFromContext(t *testing.T) {
	custom := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{name: "logger in context", ctx: WithLogger(context.Background(), custom), want: custom},
		{name: "no logger", ctx: context.Background(), want: slog.Default()},
		{name: "wrong type", ctx: context.WithValue(context.Background(), loggerContextKey, "nope"), want: slog.Default()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, FromContext(tt.ctx))
		})
	}
}
