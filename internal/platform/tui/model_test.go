package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// fakeGame wins after winAt ticks of held movement.
type fakeGame struct {
	state   core.GameState
	winAt   uint64
	resets  int
	frames  []core.InputFrame
	resized [2]int
	applied []string
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Total: 3}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if g.state.Won {
		return core.StepResult{State: g.state}
	}
	g.state.Ticks++
	if in.Has(core.ActionMoveRight) {
		g.state.Score = 3
	}
	if g.state.Ticks >= g.winAt {
		g.state.Won, g.state.GameOver = true, true
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) Resize(w, h int)         { g.resized = [2]int{w, h} }
func (g *fakeGame) ApplyLevel(l levels.Level) {
	g.applied = append(g.applied, l.ID)
	g.state = core.GameState{}
}

func newTestModel(t *testing.T, game *fakeGame, withStore bool) (Model, *storage.Store) {
	t.Helper()
	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "scores.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { store.Close() })
	}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, Options{
		Logger:    log.New(io.Discard),
		AllowBack: true,
	})
	m.Init()
	return m, store
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelSavesWinOnce(t *testing.T) {
	game := &fakeGame{winAt: 3}
	m, store := newTestModel(t, game, true)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for range 6 {
		m = step(t, m, TickMsg(time.Now()))
	}
	if !m.State().Won {
		t.Fatal("expected win")
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(scores))
	}
	if s := scores[0]; !s.Won || s.Score != 3 || s.Total != 3 || s.Ticks != 3 {
		t.Errorf("unexpected run %+v", s)
	}
}

func TestModelHeldMovementReachesGame(t *testing.T) {
	game := &fakeGame{winAt: 100}
	m, _ := newTestModel(t, game, false)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = step(t, m, TickMsg(time.Now()))
	m = step(t, m, TickMsg(time.Now()))

	if len(game.frames) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(game.frames))
	}
	for i, f := range game.frames {
		if !f.Has(core.ActionMoveRight) {
			t.Errorf("frame %d missing held movement", i)
		}
	}

	// Pause is delivered once
	m = step(t, m, runeKey('p'))
	step(t, step(t, m, TickMsg(time.Now())), TickMsg(time.Now()))
	if !game.frames[2].Has(core.ActionPause) || game.frames[3].Has(core.ActionPause) {
		t.Error("pause should reach exactly one step")
	}
}

func TestModelRestartAfterWin(t *testing.T) {
	game := &fakeGame{winAt: 1}
	m, _ := newTestModel(t, game, false)

	m = step(t, m, TickMsg(time.Now()))
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	resets := game.resets
	m = step(t, m, runeKey('r'))
	m = step(t, m, TickMsg(time.Now()))
	if game.resets != resets+1 {
		t.Error("restart after a win should reset the game")
	}
	if m.State().GameOver {
		t.Error("state should be fresh after restart")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game := &fakeGame{winAt: 100}
	m, _ := newTestModel(t, game, false)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored while playing")
	}

	game.state.Paused = true
	m = step(t, m, TickMsg(time.Now()))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	// Closing twice is harmless
	next.(Model).Close()
}

func TestModelResizeAndReload(t *testing.T) {
	game := &fakeGame{winAt: 100}
	m, _ := newTestModel(t, game, false)

	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resized != [2]int{100, 30} {
		t.Errorf("resize not forwarded, got %v", game.resized)
	}
	if game.resets != 1 {
		t.Error("resizable games should not be reset on resize")
	}

	m = step(t, m, levelChangedMsg{level: levels.Level{ID: "new"}})
	if len(game.applied) != 1 || game.applied[0] != "new" {
		t.Errorf("level not applied: %v", game.applied)
	}

	m = step(t, m, levelErrorMsg{path: "broken.json", err: io.ErrUnexpectedEOF})
	if len(game.applied) != 1 {
		t.Error("failed reload should keep the current level")
	}
	if m.View() == "" {
		t.Error("view should render")
	}
}
