package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hard-coded default configuration.
// It matches defaults/platformer.yaml.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:       0.5,
			Friction:      0.8,
			FallThreshold: 600,
		},
		Player: PlayerConfig{
			Width:     50,
			Height:    50,
			Speed:     3,
			JumpPower: 12,
			MaxJumps:  2,
			SpawnX:    100,
			SpawnY:    300,
		},
		Goal: GoalConfig{
			Width:  50,
			Height: 50,
		},
		World: WorldConfig{
			LevelWidth: 3300,
		},
		Render: RenderConfig{
			CellWidth:  10,
			CellHeight: 25,
		},
		Input: InputConfig{
			HoldMS:     550,
			JumpHoldMS: 150,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
