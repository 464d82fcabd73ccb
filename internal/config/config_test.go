package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	var fromYAML PlatformerConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, fromYAML) {
		t.Errorf("embedded yaml drifted from DefaultPlatformerConfig:\n%+v\n%+v", fromYAML, cfg)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 0.9\nplayer:\n  max_jumps: 4\nrender:\n  cell_width: 0\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.9 || cfg.Player.MaxJumps != 4 {
		t.Errorf("custom values not applied: %+v", cfg)
	}
	// Unset fields keep defaults, invalid ones are normalized
	if cfg.Player.Speed != 3 {
		t.Errorf("Speed = %v, expected default 3", cfg.Player.Speed)
	}
	if cfg.Render.CellWidth != 10 {
		t.Errorf("CellWidth = %v, expected normalized 10", cfg.Render.CellWidth)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Error("malformed config should fail")
	}
	if !reflect.DeepEqual(cfg, DefaultPlatformerConfig()) {
		t.Error("failed load should return defaults")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   Preset
		maxJumps int
	}{
		{PresetEasy, 3},
		{PresetNormal, 2},
		{PresetHard, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Player.MaxJumps != tc.maxJumps {
				t.Errorf("MaxJumps = %d, expected %d", cfg.Player.MaxJumps, tc.maxJumps)
			}
		})
	}

	if ParsePreset("hard") != PresetHard || ParsePreset("fixed") != "" {
		t.Error("ParsePreset mismatch")
	}
}

func TestEnginePhysicsConversion(t *testing.T) {
	phys := DefaultPlatformerConfig().EnginePhysics(800)
	if phys.Gravity != 0.5 || phys.JumpPower != 12 || phys.MaxJumps != 2 {
		t.Errorf("unexpected physics %+v", phys)
	}
	if phys.SpawnX != 100 || phys.SpawnY != 300 || phys.FallThreshold != 600 {
		t.Errorf("unexpected spawn/threshold %+v", phys)
	}
	if phys.ViewportWidth != 800 || phys.LevelWidth != 3300 {
		t.Errorf("unexpected widths %+v", phys)
	}
}
