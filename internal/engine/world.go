// Package engine implements the fixed-step platformer simulation: player
// physics, collision against static platforms, collectible pickup, the goal
// latch and camera tracking. It has no I/O and no clock; the caller invokes
// Tick once per frame.
package engine

import "github.com/vovakirdan/tui-platformer/internal/core"

// Physics holds per-tick simulation constants. Velocities are in world units
// per tick and gravity in world units per tick squared, so the host must call
// Tick at a fixed rate.
type Physics struct {
	Gravity       float64 // Added to vy every tick
	Friction      float64 // vx multiplier when no direction is held
	Speed         float64 // Horizontal speed while a direction is held
	JumpPower     float64 // Upward impulse applied on jump
	MaxJumps      int     // Jumps available between landings (2 = double jump)
	FallThreshold float64 // y beyond which the player respawns
	PlayerW       float64
	PlayerH       float64
	SpawnX        float64
	SpawnY        float64
	GoalW         float64
	GoalH         float64
	LevelWidth    float64 // Default level width when the level omits it
	ViewportWidth float64 // Visible world width used by the camera
}

// DefaultPhysics returns the constants the built-in levels are tuned for.
func DefaultPhysics() Physics {
	return Physics{
		Gravity:       0.5,
		Friction:      0.8,
		Speed:         3,
		JumpPower:     12,
		MaxJumps:      2,
		FallThreshold: 600,
		PlayerW:       50,
		PlayerH:       50,
		SpawnX:        100,
		SpawnY:        300,
		GoalW:         50,
		GoalH:         50,
		LevelWidth:    3300,
		ViewportWidth: 800,
	}
}

// Player is the controllable character.
type Player struct {
	X, Y           float64
	W, H           float64
	VX, VY         float64
	Grounded       bool
	Speed          float64
	JumpPower      float64
	JumpsRemaining int
	MaxJumps       int
	FacingLeft     bool
}

// Box returns the player's bounding box.
func (p Player) Box() core.AABB {
	return core.AABB{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Platform is a static solid rectangle.
type Platform struct {
	core.AABB
}

// Collectible is a gift the player picks up by touching it.
type Collectible struct {
	core.AABB
	Collected bool
}

// Goal is the win target. It only counts once visible.
type Goal struct {
	core.AABB
	Visible bool
}

// Camera is the top-left of the visible part of the world.
type Camera struct {
	X, Y float64
}

// World owns every entity of a running level.
type World struct {
	LevelID      string
	LevelName    string
	Platforms    []Platform
	Collectibles []Collectible
	Goal         Goal
	Player       Player
	Camera       Camera
	Physics      Physics
	SpawnX       float64
	SpawnY       float64
	LevelWidth   float64
	Score        int
	GameWon      bool
	Ticks        uint64
}

// newPlayer creates a player standing still at the spawn point with a full jump budget.
func newPlayer(phys Physics, x, y float64) Player {
	maxJumps := phys.MaxJumps
	if maxJumps < 1 {
		maxJumps = 1
	}
	return Player{
		X:              x,
		Y:              y,
		W:              phys.PlayerW,
		H:              phys.PlayerH,
		Speed:          phys.Speed,
		JumpPower:      phys.JumpPower,
		JumpsRemaining: maxJumps,
		MaxJumps:       maxJumps,
	}
}

// TotalCollectibles returns the number of collectibles in the level.
func (w *World) TotalCollectibles() int {
	return len(w.Collectibles)
}

// allCollected reports whether no collectible remains. True for a level without any.
func (w *World) allCollected() bool {
	for _, c := range w.Collectibles {
		if !c.Collected {
			return false
		}
	}
	return true
}
