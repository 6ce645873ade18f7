package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	if err == nil {
		t.Error("expected an error for a missing file")
	}
	if cfg != Default() {
		t.Errorf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestLoadOverlaysValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	data := "[simulation]\nGridSize = 64\nViscosity = 0.002\n\n[server]\nAddr = :8080\nPushIntervalMs = 100\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GridSize != 64 || cfg.Viscosity != 0.002 || cfg.Addr != ":8080" {
		t.Errorf("values not overlaid: %+v", cfg)
	}
	if cfg.PushInterval != 100*time.Millisecond {
		t.Errorf("PushInterval = %v, want 100ms", cfg.PushInterval)
	}
	// Keys absent from the file keep their defaults.
	if cfg.TimeStep != Default().TimeStep || cfg.SolverIterations != Default().SolverIterations {
		t.Errorf("missing keys lost their defaults: %+v", cfg)
	}
}
