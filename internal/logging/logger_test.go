package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", &buf)
	require.NoError(t, err)

	l.Info("hidden", "k", "v")
	l.Warn("stale entry not removed", "entry", "azure-mcp-1.2.2")
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "stale entry not removed")
	assert.Contains(t, out, "azure-mcp-1.2.2")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", nil)
	assert.Error(t, err)
}

func TestZapLogger_KeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZap(zap.New(core))

	l.Debug("fast path", "path", "/tmp/azmcp")
	l.Error("fetch failed", "url", "https://example.invalid")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "fast path", entries[0].Message)
	assert.Equal(t, "/tmp/azmcp", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := Nop()
	assert.Equal(t, l, OrNop(l))
	l.Info("discarded")
}
