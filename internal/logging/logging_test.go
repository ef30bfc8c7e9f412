package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 6e6, time.UTC)
}

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "test"})
	l.now = fixedClock
	return l
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		ok    bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{"info", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"verbose", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		assert.Equal(t, tt.want, got, "ParseLevel(%q)", tt.input)
		assert.Equal(t, tt.ok, ok, "ParseLevel(%q) ok", tt.input)
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	l.WithField("slot", 1).WithComponent("session").Info("found %d", 3)

	want := "2026-01-02T03:04:05.006 [INFO] test: found 3 {component=session, slot=1}\n"
	assert.Equal(t, want, buf.String())
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")

	assert.Equal(t, 2, strings.Count(buf.String(), "\n"), buf.String())
	assert.False(t, l.Enabled(LevelInfo))
}

func TestDerivedLoggersShareLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelError)
	child := l.WithComponent("registry")

	l.SetLevel(LevelDebug)
	child.Debug("now visible")

	assert.Contains(t, buf.String(), "now visible")
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelInfo)
	_ = l.WithField("a", 1)

	l.Info("plain")
	assert.NotContains(t, buf.String(), "a=1")
}

func TestNullLogger(t *testing.T) {
	l := Null()
	l.WithField("k", "v").Error("dropped")
	assert.False(t, l.Enabled(LevelError))
}
