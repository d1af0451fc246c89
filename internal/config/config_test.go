package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Bodies <= 0 {
		t.Error("bodies should be positive")
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Backend != "openmp" {
		t.Errorf("expected backend openmp, got %s", cfg.Backend)
	}
	if cfg.Theta != DefaultTheta {
		t.Errorf("expected theta %f, got %f", DefaultTheta, cfg.Theta)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cluster")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Distribution != "sphere" {
		t.Errorf("expected sphere distribution, got %s", cfg.Distribution)
	}

	// Presets are returned as copies.
	cfg.Bodies = 1
	if Presets["cluster"].Bodies == 1 {
		t.Error("mutating a returned preset changed the table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Bodies = 123
	cfg.Backend = "single"
	cfg.Collisions = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Bodies != 123 || loaded.Backend != "single" || !loaded.Collisions {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
