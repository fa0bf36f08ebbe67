package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return flags
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if cfg.Parser.ExtraCoords {
		t.Error("expected extra coords to be off by default")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if !cfg.View.Normalize {
		t.Error("expected normalize to be on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "debug"
  log_file: "goobj.log"

parser:
  extra_coords: true

watch:
  debounce: 2s

view:
  normalize: false
`)

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "goobj.log" {
		t.Errorf("expected log file 'goobj.log', got %s", cfg.Logging.LogFile)
	}
	if !cfg.Parser.ExtraCoords {
		t.Error("expected extra coords to be true")
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.View.Normalize {
		t.Error("expected normalize to be false")
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	path := writeConfig(t, `
watch:
  debounce: 100ms
`)

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Watch.Debounce != 100*time.Millisecond {
		t.Errorf("expected debounce 100ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level to survive, got %s", cfg.Logging.Level)
	}
	if !cfg.View.Normalize {
		t.Error("expected default normalize to survive")
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/goobj.yaml"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := writeConfig(t, "logging: [unterminated")

	cfg := Default()
	if err := loadFromFile(cfg, path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadLayering(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "warn"
watch:
  debounce: 1s
`)

	cfg, err := Load(newFlags(t, "--config", path, "--debounce", "250ms", "--no-normalize"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected file level 'warn', got %s", cfg.Logging.Level)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected flag debounce 250ms to win, got %v", cfg.Watch.Debounce)
	}
	if cfg.View.Normalize {
		t.Error("expected --no-normalize to disable normalize")
	}
}

func TestUnsetFlagsKeepFileValues(t *testing.T) {
	path := writeConfig(t, `
parser:
  extra_coords: true
`)

	cfg, err := Load(newFlags(t, "--config", path))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Parser.ExtraCoords {
		t.Error("expected unset --extra-coords not to override the file")
	}
}

func TestDebugFlag(t *testing.T) {
	cfg := Default()
	applyFlags(cfg, newFlags(t, "--debug"))

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(newFlags(t, "--config", "/nonexistent/goobj.yaml")); err == nil {
		t.Error("expected error for a missing explicit config")
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	cfg.Watch.Debounce = -time.Second

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "logging.level") || !strings.Contains(msg, "watch.debounce") {
		t.Errorf("expected both problems in %q", msg)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Logging.Level = "error"
	cfg.Watch.Debounce = 3 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("expected non-empty config dir")
	}
	if !strings.Contains(strings.ToLower(dir), "goobj") {
		t.Errorf("expected config dir to contain 'goobj', got %s", dir)
	}
}
