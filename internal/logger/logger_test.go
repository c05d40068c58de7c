package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny-import/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, "info", "json")
	l.Debug("hidden")
	l.Info("import finished", "accepted", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "import finished", entry["msg"])
	assert.EqualValues(t, 3, entry["accepted"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	logger.New(&buf, "debug", "text").Debug("row skipped", "line", 4)
	assert.Contains(t, buf.String(), "line=4")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, "info", "text")
	ctx := logger.WithContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
	assert.NotNil(t, logger.FromContext(context.Background()))
}
