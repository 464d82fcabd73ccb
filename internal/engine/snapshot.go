package engine

import "github.com/vovakirdan/tui-platformer/internal/core"

// SpriteSlot names the image a renderer should use for an entity.
type SpriteSlot string

const (
	SpritePlayer SpriteSlot = "player"
	SpriteGift   SpriteSlot = "gift"
	SpriteGoal   SpriteSlot = "goal"
)

// PlayerView is the render-facing view of the player.
type PlayerView struct {
	Box        core.AABB
	Sprite     SpriteSlot
	FacingLeft bool
	Grounded   bool
}

// Snapshot is a read-only copy of everything a renderer needs.
// It shares no memory with the World it was taken from.
type Snapshot struct {
	Tick         uint64
	Player       PlayerView
	Platforms    []core.AABB
	Collectibles []core.AABB // Uncollected only
	Goal         core.AABB
	GoalVisible  bool
	Camera       Camera
	Score        int
	Total        int
	GameWon      bool
	LevelWidth   float64
}

// Snapshot copies the current world state out for rendering.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick: w.Ticks,
		Player: PlayerView{
			Box:        w.Player.Box(),
			Sprite:     SpritePlayer,
			FacingLeft: w.Player.FacingLeft,
			Grounded:   w.Player.Grounded,
		},
		Platforms:    make([]core.AABB, len(w.Platforms)),
		Collectibles: make([]core.AABB, 0, len(w.Collectibles)),
		Goal:         w.Goal.AABB,
		GoalVisible:  w.Goal.Visible,
		Camera:       w.Camera,
		Score:        w.Score,
		Total:        len(w.Collectibles),
		GameWon:      w.GameWon,
		LevelWidth:   w.LevelWidth,
	}

	for i, p := range w.Platforms {
		s.Platforms[i] = p.AABB
	}
	for _, c := range w.Collectibles {
		if !c.Collected {
			s.Collectibles = append(s.Collectibles, c.AABB)
		}
	}
	return s
}
