package engine

// TickResult is what one tick reports to the loop driver.
type TickResult struct {
	Score       int
	Total       int
	GameWon     bool
	GoalVisible bool
	Picked      int // Collectibles picked up during this tick
	Events      StepEvents
}

// Tick runs one full simulation step on w: physics, collectible pickup, the
// goal latch, the win check and the camera update.
func Tick(w *World, in *InputState) TickResult {
	w.Ticks++

	ev := StepPlayer(&w.Player, in, w.Platforms, w.Physics, w.SpawnX, w.SpawnY)
	box := w.Player.Box()

	picked := 0
	for i := range w.Collectibles {
		c := &w.Collectibles[i]
		if !c.Collected && box.Overlaps(c.AABB) {
			c.Collected = true
			w.Score++
			picked++
		}
	}

	// One-way latches
	if !w.Goal.Visible && w.allCollected() {
		w.Goal.Visible = true
	}
	if w.Goal.Visible && box.Overlaps(w.Goal.AABB) {
		w.GameWon = true
	}

	w.Camera = UpdateCamera(w.Camera, w.Player, w.Physics.ViewportWidth, w.LevelWidth)

	return TickResult{
		Score:       w.Score,
		Total:       len(w.Collectibles),
		GameWon:     w.GameWon,
		GoalVisible: w.Goal.Visible,
		Picked:      picked,
		Events:      ev,
	}
}

// Reset returns the world to its freshly loaded state. Level geometry is kept.
func Reset(w *World) {
	w.Player = newPlayer(w.Physics, w.SpawnX, w.SpawnY)
	for i := range w.Collectibles {
		w.Collectibles[i].Collected = false
	}
	w.Goal.Visible = false
	w.Camera = Camera{}
	w.Score = 0
	w.GameWon = false
	w.Ticks = 0
}
