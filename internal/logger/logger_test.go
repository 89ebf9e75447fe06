package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNew_WritesJSONAtLevel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.json")

	l, err := New(Config{Level: "warn", OutputPaths: []string{out}})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept", zap.String("object_type", "country"))
	_ = l.Sync()

	body, err := os.ReadFile(out)
	require.NoError(t, err)

	text := string(body)
	assert.NotContains(t, text, "dropped")
	assert.Contains(t, text, `"msg":"kept"`)
	assert.Contains(t, text, `"object_type":"country"`)
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(text), "\n")+1)
}

func TestNew_Console(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.txt")

	l, err := New(Config{Level: "debug", Format: "console", Development: true, OutputPaths: []string{out}})
	require.NoError(t, err)

	l.Debug("hello")
	_ = l.Sync()

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), "DEBUG")
	assert.NotContains(t, string(body), `"msg"`)
}

func TestContextRoundTrip(t *testing.T) {
	fallback := zap.NewExample()
	scoped := zap.NewExample().With(zap.String("request_id", "abc"))

	assert.Same(t, fallback, FromContext(context.Background(), fallback))
	assert.Same(t, scoped, FromContext(WithContext(context.Background(), scoped), fallback))
	assert.NotNil(t, FromContext(context.Background(), nil))
}
