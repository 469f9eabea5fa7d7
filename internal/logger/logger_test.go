package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	InitLogger(level, format)
	fn()
	return buf.String()
}

func TestLogger_TextFormat(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("catalog fetched") },
			contains: []string{"catalog fetched", "level=INFO"},
		},
		{
			name:     "debug suppressed at info",
			level:    "info",
			logFn:    func() { Debug("probing url") },
			excludes: []string{"probing url"},
		},
		{
			name:     "debug shown at debug",
			level:    "debug",
			logFn:    func() { DebugfWithFields(Fields{"tier": 3}, "probing %s", "legacy") },
			contains: []string{"probing legacy", "tier=3"},
		},
		{
			name:     "warn with fields",
			level:    "warn",
			logFn:    func() { Warn("retrying", Fields{"attempt": 2, "url": "http://x"}) },
			contains: []string{"retrying", "attempt=2", "url=http://x"},
		},
		{
			name:     "info hidden at error",
			level:    "error",
			logFn:    func() { Info("hidden") },
			excludes: []string{"hidden"},
		},
		{
			name:     "success",
			level:    "info",
			logFn:    func() { Success("download finished") },
			contains: []string{"download finished", "status=success"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	out := captureOutput(t, "info", FormatJSON, func() {
		Info("resolved", Fields{"version": "116.0.5845.96", "tier": 1, "cached": false})
	})

	assert.Contains(t, out, `"msg":"resolved"`)
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"version":"116.0.5845.96"`)
	assert.Contains(t, out, `"tier":1`)
	assert.Contains(t, out, `"cached":false`)
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	loggerMu.Lock()
	logger = nil
	loggerMu.Unlock()

	assert.NotPanics(t, func() {
		require.NotNil(t, GetLogger())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestMergeFields(t *testing.T) {
	attrs := mergeFields(Fields{"b": 1, "a": "x"}, Fields{"b": 2})
	assert.Equal(t, []interface{}{"a", "x", "b", 2}, attrs)
	assert.Empty(t, mergeFields())
}
