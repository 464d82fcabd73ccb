package engine

import (
	"reflect"
	"testing"
)

// testLevel is a small level: a floor, a gift where the player spawns, one
// gift to the right and the goal at the far end of the floor.
func testLevel() LevelData {
	return LevelData{
		ID: "test",
		Platforms: []RectData{
			{X: 0, Y: 400, Width: 1000, Height: 20},
		},
		Gifts: []GiftData{
			{X: 110, Y: 360, Width: 20, Height: 20},
			{X: 300, Y: 360, Width: 20, Height: 20},
		},
		Spawn:      &PointData{X: 100, Y: 350},
		Goal:       &RectData{X: 500, Y: 350, Width: 50, Height: 50},
		LevelWidth: 1000,
	}
}

func cloneWorld(w *World) World {
	c := *w
	c.Platforms = append([]Platform(nil), w.Platforms...)
	c.Collectibles = append([]Collectible(nil), w.Collectibles...)
	return c
}

func collectedCount(w *World) int {
	n := 0
	for _, c := range w.Collectibles {
		if c.Collected {
			n++
		}
	}
	return n
}

func TestTickCollectsGifts(t *testing.T) {
	w := LoadLevel(testLevel(), DefaultPhysics())
	in := &InputState{}

	res := Tick(w, in)
	if res.Picked != 1 || res.Score != 1 {
		t.Fatalf("first tick should pick the gift under the spawn: picked=%d score=%d", res.Picked, res.Score)
	}
	if res.GoalVisible {
		t.Error("goal should stay hidden with a gift left")
	}

	// Walk right past the second gift; score never decreases and tracks collected flags
	in.MoveRight = true
	last := res.Score
	for i := 0; i < 80; i++ {
		res = Tick(w, in)
		if res.Score < last {
			t.Fatalf("score decreased from %d to %d", last, res.Score)
		}
		if res.Score != collectedCount(w) {
			t.Fatalf("score %d != collected count %d", res.Score, collectedCount(w))
		}
		last = res.Score
	}
	if w.Score != 2 {
		t.Errorf("Score = %d, expected 2", w.Score)
	}
}

func TestGoalLatch(t *testing.T) {
	w := LoadLevel(testLevel(), DefaultPhysics())
	in := &InputState{MoveRight: true}

	transitions := 0
	visible := false
	for i := 0; i < 200; i++ {
		res := Tick(w, in)
		if res.GoalVisible && !visible {
			transitions++
			if collectedCount(w) != len(w.Collectibles) {
				t.Error("goal appeared before every gift was collected")
			}
		}
		if visible && !res.GoalVisible {
			t.Fatal("goal visibility reverted")
		}
		visible = res.GoalVisible
	}
	if transitions != 1 {
		t.Errorf("goal became visible %d times, expected exactly 1", transitions)
	}
}

func TestWinLatch(t *testing.T) {
	w := LoadLevel(testLevel(), DefaultPhysics())
	in := &InputState{MoveRight: true}

	won := false
	for i := 0; i < 200 && !won; i++ {
		won = Tick(w, in).GameWon
	}
	if !won {
		t.Fatal("walking right across the level should reach the visible goal")
	}

	// Walk away; the latch holds
	in.MoveRight = false
	in.MoveLeft = true
	for i := 0; i < 100; i++ {
		if !Tick(w, in).GameWon {
			t.Fatal("GameWon reverted without reset")
		}
	}
}

func TestHiddenGoalDoesNotWin(t *testing.T) {
	level := testLevel()
	level.Gifts = []GiftData{{X: 900, Y: 100, Width: 20, Height: 20}} // out of reach
	level.Goal = &RectData{X: 100, Y: 350, Width: 50, Height: 50}     // on the player

	w := LoadLevel(level, DefaultPhysics())
	for i := 0; i < 10; i++ {
		if Tick(w, &InputState{}).GameWon {
			t.Fatal("an invisible goal must not trigger a win")
		}
	}
}

func TestNoGiftsShowsGoalImmediately(t *testing.T) {
	level := testLevel()
	level.Gifts = nil

	w := LoadLevel(level, DefaultPhysics())
	if res := Tick(w, &InputState{}); !res.GoalVisible {
		t.Error("a level without gifts should reveal the goal on the first tick")
	}
}

func TestZeroPlatformsRespawns(t *testing.T) {
	level := testLevel()
	level.Platforms = nil

	w := LoadLevel(level, DefaultPhysics())
	respawns := 0
	for i := 0; i < 300; i++ {
		if Tick(w, &InputState{}).Events.Respawned {
			respawns++
		}
	}
	if respawns == 0 {
		t.Error("player should fall and respawn without platforms")
	}
}

func TestResetIdempotent(t *testing.T) {
	w := LoadLevel(testLevel(), DefaultPhysics())
	in := &InputState{MoveRight: true}
	for i := 0; i < 150; i++ {
		Tick(w, in)
	}

	Reset(w)
	once := cloneWorld(w)
	Reset(w)
	twice := cloneWorld(w)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Reset is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}

	if w.Score != 0 || w.GameWon || w.Goal.Visible || collectedCount(w) != 0 {
		t.Error("Reset left game progress behind")
	}
	if w.Player.X != 100 || w.Player.Y != 350 || w.Player.JumpsRemaining != w.Player.MaxJumps {
		t.Errorf("player not back at spawn: %+v", w.Player)
	}
	if w.Camera != (Camera{}) {
		t.Errorf("camera = %+v, expected origin", w.Camera)
	}
}

func TestTickUpdatesCamera(t *testing.T) {
	level := testLevel()
	level.LevelWidth = 3000
	phys := DefaultPhysics()
	w := LoadLevel(level, phys)
	w.Player.X = 1500
	w.Player.Y = 350

	Tick(w, &InputState{})

	want := UpdateCamera(Camera{}, w.Player, phys.ViewportWidth, 3000)
	if w.Camera != want {
		t.Errorf("camera = %+v, expected %+v", w.Camera, want)
	}
}
