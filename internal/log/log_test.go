package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		if !ValidLevel(lvl) {
			t.Errorf("ValidLevel(%q) = false", lvl)
		}
		if got := parseLevel(lvl).String(); got != lvl {
			t.Errorf("parseLevel(%q) = %q", lvl, got)
		}
	}
	if ValidLevel("verbose") {
		t.Error("ValidLevel(verbose) = true")
	}
	if got := parseLevel("verbose").String(); got != DefaultLevel {
		t.Errorf("parseLevel(unknown) = %q, want %q", got, DefaultLevel)
	}
}

func TestJSONLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, "warn")
	l.Info().Msg("hidden")
	l.Warn().Str("component", "wallet").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"component":"wallet"`) {
		t.Errorf("warn line missing fields: %s", out)
	}
}

func TestInit_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.log")
	closer, err := Init("debug", true, path)
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(Disable)

	Wallet.Debug().Msg("derived")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"wallet"`) || !strings.Contains(string(data), `"message":"derived"`) {
		t.Errorf("log file = %s", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("log file mode = %o, want 600", perm)
	}
}

func TestInit_NoFile(t *testing.T) {
	closer, err := Init("info", false, "")
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(Disable)
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if got := Logger.GetLevel().String(); got != "info" {
		t.Errorf("level = %q, want info", got)
	}
}

func TestInit_BadFile(t *testing.T) {
	if _, err := Init("warn", false, filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Fatal("Init() should fail when the log directory does not exist")
	}
}

func TestDisable(t *testing.T) {
	Disable()
	if Logger.GetLevel() != zerolog.Disabled {
		t.Errorf("level after Disable = %v", Logger.GetLevel())
	}
}
