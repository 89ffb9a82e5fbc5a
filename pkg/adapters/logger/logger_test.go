package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/roiplayer/pkg/ports"
)

func TestConsoleLogger_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewWriter(ports.LevelDebug, &out, &errOut)

	log.Debug("Seeked to frame %d", 4)
	log.Info("Playing from frame %d", 4)
	log.Warn("Failed to read frame: %s", "boom")
	log.Error("Failed to open %s: %s", "a.mp4", "missing")

	if got := out.String(); !strings.Contains(got, "4") || strings.Count(got, "\n") != 2 {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); !strings.Contains(got, "boom") || !strings.Contains(got, "a.mp4") {
		t.Errorf("stderr = %q", got)
	}
}

func TestConsoleLogger_Level(t *testing.T) {
	tests := []struct {
		level   ports.LogLevel
		wantOut int
		wantErr int
	}{
		{ports.LevelDebug, 2, 2},
		{ports.LevelInfo, 1, 2},
		{ports.LevelWarn, 0, 2},
		{ports.LevelError, 0, 1},
		{ports.LevelQuiet, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var out, errOut bytes.Buffer
			log := NewWriter(tt.level, &out, &errOut)

			log.Debug("Reset")
			log.Info("Reset")
			log.Warn("Reset")
			log.Error("Reset")

			if n := strings.Count(out.String(), "\n"); n != tt.wantOut {
				t.Errorf("stdout lines = %d, want %d", n, tt.wantOut)
			}
			if n := strings.Count(errOut.String(), "\n"); n != tt.wantErr {
				t.Errorf("stderr lines = %d, want %d", n, tt.wantErr)
			}
		})
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out bytes.Buffer
	root := NewWriter(ports.LevelInfo, &out, &out)

	root.WithComponent("player").Info("Reset")
	root.Info("Tracking cleared")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "[player] ") {
		t.Errorf("component line = %q", lines[0])
	}
	if strings.HasPrefix(lines[1], "[") {
		t.Errorf("root logger should not carry a component: %q", lines[1])
	}
}

func TestNoopLogger(t *testing.T) {
	var log ports.Logger = NewNoop()
	if log.WithComponent("x") != log {
		t.Error("WithComponent should return the same logger")
	}
	log.Info("Reset")
}
