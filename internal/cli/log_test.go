package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestCheckLogsProgress(t *testing.T) {
	input, cfg := writeWorkspace(t, shop)

	var buf bytes.Buffer
	root := New(&buf, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", cfg, "check", input})
	if err := root.Execute(); err != nil {
		t.Fatalf("check error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Checked " + input, "pages=3", "edges=3", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Rendered shop.uxl", "format", "svg", "pages", 5)

	out := buf.String()
	for _, want := range []string{"INFO", "Rendered shop.uxl", "format=svg", "pages=5", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", LogInfo, func(l *log.Logger) { l.Info("parsed", "pages", 5) }, true},
		{"debug at info", LogInfo, func(l *log.Logger) { l.Debug("loaded config") }, false},
		{"debug at debug", LogDebug, func(l *log.Logger) { l.Debug("loaded config") }, true},
		{"warn at info", LogInfo, func(l *log.Logger) { l.Warn("image not found", "src", "logo.png") }, true},
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

func TestLoggerFromContext(t *testing.T) {
	custom := newLogger(&bytes.Buffer{}, LogInfo)
	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"attached", withLogger(context.Background(), custom), custom},
		{"missing", context.Background(), log.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("loggerFromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}
