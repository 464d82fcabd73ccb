package platformer

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var quietLogger = log.New(io.Discard)

func floorLevel(goal engine.RectData, gifts ...engine.GiftData) levels.Level {
	return levels.Level{
		ID:   "test",
		Name: "Test Level",
		Data: engine.LevelData{
			ID:         "test",
			Name:       "Test Level",
			Platforms:  []engine.RectData{{X: 0, Y: 400, Width: 1000, Height: 20}},
			Gifts:      gifts,
			Spawn:      &engine.PointData{X: 100, Y: 350},
			Goal:       &goal,
			LevelWidth: 1000,
		},
	}
}

func newTestGame(t *testing.T, lvl levels.Level) *Game {
	t.Helper()
	g := New(lvl)
	g.logger = quietLogger
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g
}

func TestRegisteredLevels(t *testing.T) {
	for _, id := range []string{"birthday", "garden", "tower"} {
		if !registry.Exists(id) {
			t.Errorf("level %q not registered", id)
		}
	}

	g, err := registry.Create("birthday")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Birthday Run" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, floorLevel(engine.RectData{X: 900, Y: 350, Width: 50, Height: 50}))

	g.Step(core.NewInputFrame())
	if g.State().Ticks != 1 {
		t.Fatalf("Ticks = %d, expected 1", g.State().Ticks)
	}

	state := g.Step(core.NewInputFrame(core.ActionPause)).State
	if !state.Paused {
		t.Fatal("pause action should pause")
	}
	for range 5 {
		g.Step(core.NewInputFrame(core.ActionMoveRight))
	}
	if g.State().Ticks != 1 {
		t.Errorf("paused game advanced to %d ticks", g.State().Ticks)
	}

	g.Step(core.NewInputFrame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause action should resume")
	}
}

func TestWinLocksSimulation(t *testing.T) {
	// The goal sits on the spawn point and there are no gifts, so the
	// first tick both reveals and reaches it.
	g := newTestGame(t, floorLevel(engine.RectData{X: 100, Y: 350, Width: 50, Height: 50}))

	state := g.Step(core.NewInputFrame()).State
	if !state.Won || !state.GameOver {
		t.Fatalf("expected win on first tick, got %+v", state)
	}

	for range 10 {
		g.Step(core.NewInputFrame(core.ActionMoveRight, core.ActionJump))
	}
	if got := g.State().Ticks; got != 1 {
		t.Errorf("won game advanced to %d ticks", got)
	}
	if x := g.World().Player.X; x != 100 {
		t.Errorf("player moved after win, x = %v", x)
	}
}

func TestRestartMidRun(t *testing.T) {
	gift := engine.GiftData{X: 110, Y: 360, Width: 20, Height: 20}
	g := newTestGame(t, floorLevel(engine.RectData{X: 900, Y: 350, Width: 50, Height: 50}, gift))

	for range 20 {
		g.Step(core.NewInputFrame(core.ActionMoveRight))
	}
	if g.State().Score != 1 {
		t.Fatalf("expected the gift to be collected, state %+v", g.State())
	}

	g.Step(core.NewInputFrame(core.ActionRestart))
	state := g.State()
	if state.Score != 0 || state.Ticks != 0 {
		t.Errorf("restart should reset progress, got %+v", state)
	}
	if p := g.World().Player; p.X != 100 || p.Y != 350 {
		t.Errorf("restart should respawn, player at (%v, %v)", p.X, p.Y)
	}
}

func TestRestartWhilePaused(t *testing.T) {
	g := newTestGame(t, floorLevel(engine.RectData{X: 900, Y: 350, Width: 50, Height: 50}))

	for range 30 {
		g.Step(core.NewInputFrame(core.ActionMoveRight))
	}
	g.Step(core.NewInputFrame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected the game to be paused")
	}

	state := g.Step(core.NewInputFrame(core.ActionRestart)).State
	if state.Paused {
		t.Error("restart should resume the game")
	}
	if state.Ticks != 0 {
		t.Errorf("restart while paused should reset ticks, got %d", state.Ticks)
	}
	if p := g.World().Player; p.X != 100 || p.Y != 350 {
		t.Errorf("restart while paused should respawn, player at (%v, %v)", p.X, p.Y)
	}

	g.Step(core.NewInputFrame())
	if got := g.State().Ticks; got != 1 {
		t.Errorf("game should run again after restart, Ticks = %d", got)
	}
}

func TestApplyLevel(t *testing.T) {
	g := newTestGame(t, floorLevel(engine.RectData{X: 900, Y: 350, Width: 50, Height: 50}))
	for range 5 {
		g.Step(core.NewInputFrame(core.ActionMoveRight))
	}
	viewport := g.World().Physics.ViewportWidth

	next := floorLevel(engine.RectData{X: 900, Y: 350, Width: 50, Height: 50},
		engine.GiftData{X: 500, Y: 360, Width: 20, Height: 20})
	next.Data.Platforms = append(next.Data.Platforms, engine.RectData{X: 300, Y: 300, Width: 100, Height: 20})
	g.ApplyLevel(next)

	w := g.World()
	if len(w.Platforms) != 2 || w.TotalCollectibles() != 1 {
		t.Errorf("level not applied: %d platforms, %d gifts", len(w.Platforms), w.TotalCollectibles())
	}
	if w.Ticks != 0 || w.Player.X != 100 {
		t.Error("applied level should start fresh")
	}
	if w.Physics.ViewportWidth != viewport {
		t.Error("applied level should keep the physics in use")
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	g := newTestGame(t, floorLevel(engine.RectData{X: 900, Y: 350, Width: 50, Height: 50}))
	for range 5 {
		g.Step(core.NewInputFrame())
	}

	g.Resize(40, 24)
	if g.State().Ticks != 5 {
		t.Error("resize should not reset the run")
	}
	if vw := g.World().Physics.ViewportWidth; vw != 400 {
		t.Errorf("ViewportWidth = %v, expected 400", vw)
	}
}

func TestRenderHUDAndBanner(t *testing.T) {
	gift := engine.GiftData{X: 600, Y: 360, Width: 20, Height: 20}
	g := newTestGame(t, floorLevel(engine.RectData{X: 100, Y: 350, Width: 50, Height: 50}, gift))

	screen := core.NewScreen(80, 24)
	g.Step(core.NewInputFrame())
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Gifts: 0/1") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if strings.Contains(screen.String(), "(^_^)") {
		t.Error("goal should be hidden until every gift is collected")
	}
	// Floor at y=400 lands on row 16 + HUD
	if screen.Get(0, 17) != PlatformChar {
		t.Errorf("expected platform at row 17, got %q", screen.Get(0, 17))
	}

	// Collect the gift by moving the world into a won state directly
	w := g.World()
	w.Player.X, w.Player.Y = 600, 340
	g.Step(core.NewInputFrame())
	w.Player.X, w.Player.Y = 100, 350
	g.Step(core.NewInputFrame())
	if !g.State().Won {
		t.Fatalf("expected win, state %+v", g.State())
	}

	g.Render(screen)
	if !strings.Contains(screen.String(), WinMessage) {
		t.Error("win banner missing")
	}
	if !strings.Contains(screen.Row(0), "Gifts: 1/1") {
		t.Errorf("HUD row after win = %q", screen.Row(0))
	}
}

func TestCellRect(t *testing.T) {
	v := viewport{camX: 100, cellW: 10, cellH: 25}

	r := v.cellRect(core.Box(100, 300, 50, 50))
	if r != core.NewRect(0, 13, 5, 2) {
		t.Errorf("player rect = %+v", r)
	}

	// Thin platforms still get one cell
	r = v.cellRect(core.Box(105, 400, 2, 2))
	if r.W != 1 || r.H != 1 {
		t.Errorf("tiny rect = %+v", r)
	}
}

func TestLoadSprites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprites.yaml")
	content := "player:\n  color: yellow\n  lines: [\"@@@@@\", \"/   \\\\\"]\ngift:\n  color: nope\n  lines: [\"**\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	set := LoadSprites(path, quietLogger)

	if sp := set.Get("player"); sp.Lines[0] != "@@@@@" || sp.Color != core.ColorYellow {
		t.Errorf("player sprite = %+v", sp)
	}
	if sp := set.Get("gift"); sp.Lines[0] != "**" || sp.Color != core.ColorDefault {
		t.Errorf("gift sprite = %+v", sp)
	}
	// Missing slots keep the built-in sprite
	if sp := set.Get("goal"); sp.Lines[0] != "(^_^)" {
		t.Errorf("goal sprite = %+v", sp)
	}
	if sp := set.Get("unknown"); sp.Lines[0] != placeholder.Lines[0] {
		t.Errorf("unknown slot should be a placeholder, got %+v", sp)
	}

	if set := LoadSprites(filepath.Join(dir, "missing.yaml"), quietLogger); set.Get("player").Lines[0] != "(o.o)" {
		t.Error("missing sheet should fall back to built-in sprites")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if set := LoadSprites(bad, quietLogger); set.Get("goal").Lines[0] != "(^_^)" {
		t.Error("malformed sheet should fall back to built-in sprites")
	}
}

func TestRegisterLevels(t *testing.T) {
	user := []levels.Level{
		{ID: "birthday", Name: "Shadowed"},
		{ID: "user-hop", Name: "User Hop"},
	}

	skipped := RegisterLevels(user)
	if len(skipped) != 1 || skipped[0] != "birthday" {
		t.Errorf("skipped = %v, expected [birthday]", skipped)
	}

	g, err := registry.Create("user-hop")
	if err != nil {
		t.Fatalf("user level not registered: %v", err)
	}
	if g.Title() != "User Hop" {
		t.Errorf("Title() = %q", g.Title())
	}
}
