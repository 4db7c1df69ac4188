package ember

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerSilentByDefault(t *testing.T) {
	lg := newLogger("", "")
	if lg == nil {
		t.Fatal("nil logger")
	}
	// A no-op logger accepts everything and emits nothing.
	lg.Debugw("should vanish", "k", 1)
	if lg.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("silent logger should not enable any level")
	}
}

func TestNewLoggerLevelGating(t *testing.T) {
	cases := []struct {
		level       string
		debug, warn bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"gibberish", false, true}, // unknown levels fall back to info
	}
	for _, c := range cases {
		core := newLogger(c.level, "").Desugar().Core()
		if got := core.Enabled(zapcore.DebugLevel); got != c.debug {
			t.Errorf("level %q: debug enabled = %v, want %v", c.level, got, c.debug)
		}
		if got := core.Enabled(zapcore.WarnLevel); got != c.warn {
			t.Errorf("level %q: warn enabled = %v, want %v", c.level, got, c.warn)
		}
	}
}

func TestNewLoggerFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.log")
	lg := newLogger("debug", path)
	lg.Infow("session started", "particles", 1400)
	if err := lg.Desugar().Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "session started") {
		t.Errorf("log file missing the message: %q", data)
	}
	if !strings.Contains(string(data), "particles") {
		t.Errorf("log file missing the field key: %q", data)
	}
}
