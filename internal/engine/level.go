package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// RectData is a rectangle in the level exchange format.
type RectData struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// GiftData is a collectible seed. Collected is accepted for compatibility
// with exported files but ignored on load.
type GiftData struct {
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	Collected bool    `json:"collected" yaml:"collected"`
}

// PointData is a position in the level exchange format.
type PointData struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// LevelData is the level exchange value produced by editors and exports.
// Only platforms and gifts are required; the rest falls back to Physics.
type LevelData struct {
	ID         string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Platforms  []RectData `json:"platforms" yaml:"platforms"`
	Gifts      []GiftData `json:"gifts" yaml:"gifts"`
	Spawn      *PointData `json:"spawn,omitempty" yaml:"spawn,omitempty"`
	Goal       *RectData  `json:"goal,omitempty" yaml:"goal,omitempty"`
	LevelWidth float64    `json:"level_width,omitempty" yaml:"level_width,omitempty"`
}

// defaultGoalX places the goal when a level does not say where it is.
const defaultGoalX, defaultGoalY = 3100, 350

// LoadLevel builds a fresh World from level data. Missing numbers are zero
// and are not rejected: a level without platforms just makes the player fall
// and respawn forever.
func LoadLevel(data LevelData, phys Physics) *World {
	w := &World{
		LevelID:    data.ID,
		LevelName:  data.Name,
		Physics:    phys,
		SpawnX:     phys.SpawnX,
		SpawnY:     phys.SpawnY,
		LevelWidth: phys.LevelWidth,
	}

	if data.Spawn != nil {
		w.SpawnX, w.SpawnY = data.Spawn.X, data.Spawn.Y
	}
	if data.LevelWidth > 0 {
		w.LevelWidth = data.LevelWidth
	}

	w.Goal.AABB = core.Box(defaultGoalX, defaultGoalY, phys.GoalW, phys.GoalH)
	if data.Goal != nil {
		w.Goal.AABB = data.Goal.box()
	}

	w.Platforms = make([]Platform, len(data.Platforms))
	for i, p := range data.Platforms {
		w.Platforms[i] = Platform{AABB: p.box()}
	}

	w.Collectibles = make([]Collectible, len(data.Gifts))
	for i, g := range data.Gifts {
		w.Collectibles[i] = Collectible{AABB: core.Box(g.X, g.Y, g.Width, g.Height)}
	}

	Reset(w)
	return w
}

// ExportLevel converts a world back to level data. Gifts are always exported
// uncollected: an export is level design, not a save game.
func ExportLevel(w *World) LevelData {
	data := LevelData{
		ID:         w.LevelID,
		Name:       w.LevelName,
		Platforms:  make([]RectData, len(w.Platforms)),
		Gifts:      make([]GiftData, len(w.Collectibles)),
		Spawn:      &PointData{X: w.SpawnX, Y: w.SpawnY},
		LevelWidth: w.LevelWidth,
	}
	goal := rectData(w.Goal.AABB)
	data.Goal = &goal

	for i, p := range w.Platforms {
		data.Platforms[i] = rectData(p.AABB)
	}
	for i, c := range w.Collectibles {
		data.Gifts[i] = GiftData{X: c.X, Y: c.Y, Width: c.W, Height: c.H}
	}
	return data
}

// Warning is a non-fatal problem found in level data.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Lint reports suspicious level data. The level still loads with defaults;
// these warnings only help authors spot mistakes.
func Lint(data LevelData, phys Physics) []Warning {
	var warns []Warning

	if len(data.Platforms) == 0 {
		warns = append(warns, Warning{"platforms", "level has no platforms, the player will fall forever"})
	}
	for i, p := range data.Platforms {
		field := fmt.Sprintf("platforms[%d]", i)
		if p.Width <= 0 || p.Height <= 0 {
			warns = append(warns, Warning{field, "has no area"})
		}
		if p.Y > phys.FallThreshold {
			warns = append(warns, Warning{field, "below the fall threshold, unreachable"})
		}
	}
	for i, g := range data.Gifts {
		field := fmt.Sprintf("gifts[%d]", i)
		if g.Width <= 0 || g.Height <= 0 {
			warns = append(warns, Warning{field, "has no area"})
		}
		if g.Y > phys.FallThreshold {
			warns = append(warns, Warning{field, "below the fall threshold, unreachable"})
		}
	}
	if data.Goal != nil && (data.Goal.Width <= 0 || data.Goal.Height <= 0) {
		warns = append(warns, Warning{"goal", "has no area"})
	}
	return warns
}

func (r RectData) box() core.AABB {
	return core.Box(r.X, r.Y, r.Width, r.Height)
}

func rectData(b core.AABB) RectData {
	return RectData{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
}
