// Package config provides YAML-based configuration loading for the
// platformer: physics constants, player and goal sizes, terminal rendering
// scale and key hold windows.
package config

import (
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// PlatformerConfig contains all tunable platformer settings.
type PlatformerConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Goal    GoalConfig    `yaml:"goal"`
	World   WorldConfig   `yaml:"world"`
	Render  RenderConfig  `yaml:"render"`
	Input   InputConfig   `yaml:"input"`
}

// PhysicsConfig defines per-tick physics constants.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Friction      float64 `yaml:"friction"`
	FallThreshold float64 `yaml:"fall_threshold"`
}

// PlayerConfig defines the player body and movement.
type PlayerConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`
	JumpPower float64 `yaml:"jump_power"`
	MaxJumps  int     `yaml:"max_jumps"`
	SpawnX    float64 `yaml:"spawn_x"`
	SpawnY    float64 `yaml:"spawn_y"`
}

// GoalConfig defines the default goal size.
type GoalConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// WorldConfig defines level defaults.
type WorldConfig struct {
	LevelWidth float64 `yaml:"level_width"`
}

// RenderConfig maps world units to terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // World units per column
	CellHeight float64 `yaml:"cell_height"` // World units per row
}

// InputConfig sets how long a key counts as held after its last key event.
// Terminals report presses and auto-repeat but no releases, so movement
// needs a window longer than the OS repeat delay. Jump uses a short window
// so that a second tap registers as a new press.
type InputConfig struct {
	HoldMS     int `yaml:"hold_ms"`
	JumpHoldMS int `yaml:"jump_hold_ms"`
}

// Preset represents a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset converts a CLI value to a preset. Unknown values return "".
func ParsePreset(s string) Preset {
	switch Preset(s) {
	case PresetEasy, PresetNormal, PresetHard:
		return Preset(s)
	default:
		return ""
	}
}

// EnginePhysics converts the config to engine constants. viewportWidth is the
// visible world width, derived from the terminal size by the caller.
func (c PlatformerConfig) EnginePhysics(viewportWidth float64) engine.Physics {
	return engine.Physics{
		Gravity:       c.Physics.Gravity,
		Friction:      c.Physics.Friction,
		Speed:         c.Player.Speed,
		JumpPower:     c.Player.JumpPower,
		MaxJumps:      c.Player.MaxJumps,
		FallThreshold: c.Physics.FallThreshold,
		PlayerW:       c.Player.Width,
		PlayerH:       c.Player.Height,
		SpawnX:        c.Player.SpawnX,
		SpawnY:        c.Player.SpawnY,
		GoalW:         c.Goal.Width,
		GoalH:         c.Goal.Height,
		LevelWidth:    c.World.LevelWidth,
		ViewportWidth: viewportWidth,
	}
}
