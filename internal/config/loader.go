package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml ->
// ./configs/platformer.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("platformer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.normalized(), nil
			}
			cfg = DefaultPlatformerConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "platformer.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.normalized(), nil
		}
		cfg = DefaultPlatformerConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.normalized(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// normalized replaces values that would break rendering or input with defaults.
func (c PlatformerConfig) normalized() PlatformerConfig {
	def := DefaultPlatformerConfig()
	if c.Render.CellWidth <= 0 {
		c.Render.CellWidth = def.Render.CellWidth
	}
	if c.Render.CellHeight <= 0 {
		c.Render.CellHeight = def.Render.CellHeight
	}
	if c.Input.HoldMS <= 0 {
		c.Input.HoldMS = def.Input.HoldMS
	}
	if c.Input.JumpHoldMS <= 0 {
		c.Input.JumpHoldMS = def.Input.JumpHoldMS
	}
	return c
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the configured values.
func ApplyPreset(cfg *PlatformerConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Player.MaxJumps = 3
		cfg.Player.JumpPower *= 1.1
	case PresetHard:
		cfg.Player.MaxJumps = 1
		cfg.Player.Speed *= 1.2
	}
}
