package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{MinLevel: LevelWarn, Output: &buf}

	l.Debug("Loader", "hidden")
	l.Info("Loader", "hidden too")
	l.Warn("Loader", "section missing: section=%s", "Auxiliar entradas")
	l.Error("", "no component")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[WARN] [Loader] section missing: section=Auxiliar entradas")
	assert.Contains(t, lines[1], "[ERROR] no component")
}

func TestDiscardAndNilLoggerAreSilent(t *testing.T) {
	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.Info("X", "ignored") })

	var buf bytes.Buffer
	l := Discard()
	l.Output = &buf
	l.Error("X", "dropped")
	assert.Empty(t, buf.String())
}
