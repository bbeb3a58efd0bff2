package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
bindings:
  - gesture: gg
    command: notify-send "two up"
  - gesture: bdh
    command: echo three
devices:
  - /dev/input/event3
grab: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(cfg.Bindings))
	}
	if cfg.Bindings[0].Gesture != "gg" || cfg.Bindings[0].Command != `notify-send "two up"` {
		t.Fatalf("first binding = %+v", cfg.Bindings[0])
	}
	if len(cfg.Devices) != 1 || cfg.Devices[0] != "/dev/input/event3" {
		t.Fatalf("devices = %v", cfg.Devices)
	}
	if !cfg.Grab {
		t.Fatal("grab not set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of missing file should fail")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("bindings: {not a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load of malformed file should fail")
	}
}

func TestLoadDefaultMissingFileIsEmpty(t *testing.T) {
	t.Setenv("QUADTAP_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if len(cfg.Bindings) != 0 || len(cfg.Devices) != 0 || cfg.Seat != "" || cfg.Grab {
		t.Fatalf("missing file should load empty, got %+v", cfg)
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv("QUADTAP_CONFIG", "/tmp/custom.yaml")
	if got := DefaultPath(); got != "/tmp/custom.yaml" {
		t.Fatalf("DefaultPath = %q", got)
	}

	t.Setenv("QUADTAP_CONFIG", "")
	if got := DefaultPath(); filepath.Base(got) != "config.yaml" {
		t.Fatalf("DefaultPath = %q", got)
	}
}
