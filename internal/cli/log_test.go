package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("painted") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("split") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("split") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("small canvas") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Errorf("log output = %q", out)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("generation complete", "leaves", 42)

	out := buf.String()
	for _, want := range []string{"generation complete", "duration=", "leaves=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("done() output %q should contain %q", out, want)
		}
	}
	if strings.Index(out, "duration=") > strings.Index(out, "leaves=") {
		t.Errorf("duration should come before extra fields: %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield the default logger")
	}

	l := newLogger(io.Discard, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("attached logger not returned")
	}
}
