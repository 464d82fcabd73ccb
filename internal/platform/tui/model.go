package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Resizer is implemented by games that can follow a terminal resize
// without restarting.
type Resizer interface {
	Resize(width, height int)
}

// LevelApplier is implemented by games that accept a reloaded level.
type LevelApplier interface {
	ApplyLevel(level levels.Level)
}

// Options tune the game loop.
type Options struct {
	Hold      time.Duration   // Hold window for movement keys
	JumpHold  time.Duration   // Hold window for the jump key
	Watcher   *levels.Watcher // Optional; closed when the model shuts down
	Logger    *log.Logger
	AllowBack bool // B/Esc returns to the menu when paused or won
}

// levelChangedMsg carries a reloaded level from the watcher.
type levelChangedMsg struct {
	level levels.Level
}

// levelErrorMsg reports a watched file that failed to load.
type levelErrorMsg struct {
	path string
	err  error
}

// Model is the Bubble Tea model for running one level.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	holds      *HoldTracker
	gameState  core.GameState
	restart    bool // Restart requested after a win
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been stored
	closeOnce  *sync.Once
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Hold <= 0 {
		opts.Hold = 550 * time.Millisecond
	}
	if opts.JumpHold <= 0 {
		opts.JumpHold = 150 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		holds:     NewHoldTracker(opts.Hold, opts.JumpHold),
		closeOnce: &sync.Once{},
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForLevel(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case levelChangedMsg:
		if applier, ok := m.game.(LevelApplier); ok {
			applier.ApplyLevel(msg.level)
			m.gameState = m.game.State()
			m.runSaved = false
			m.holds.ReleaseAll()
		}
		return m, waitForLevel(m.opts.Watcher)

	case levelErrorMsg:
		m.opts.Logger.Warn("level reload failed, keeping current level", "path", msg.path, "error", msg.err)
		return m, waitForLevel(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveRun()
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		if m.opts.AllowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.saveRun()
			m.backToMenu = true
			m.Close()
		}
		return m, nil
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.restart = true
			return m, nil
		}
	}

	m.holds.Press(action, time.Now())
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick samples input and advances the simulation one step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.restart {
		m.restart = false
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.holds.ReleaseAll()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.holds.Frame(now))
	m.gameState = result.State

	if m.gameState.Won {
		m.saveRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current run once. Runs that never started are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil || m.gameState.Ticks == 0 {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Total:  m.gameState.Total,
		Ticks:  m.gameState.Ticks,
		Won:    m.gameState.Won,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "level", m.game.ID(), "error", err)
	}
	m.runSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Close releases the level watcher. Safe to call more than once.
func (m Model) Close() {
	m.closeOnce.Do(func() {
		if m.opts.Watcher != nil {
			if err := m.opts.Watcher.Close(); err != nil {
				m.opts.Logger.Warn("closing level watcher", "error", err)
			}
		}
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// waitForLevel blocks on the watcher and loads the changed file.
// Returns nil when there is nothing to watch.
func waitForLevel(w *levels.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-w.Events
		if !ok {
			return nil
		}
		lvl, err := levels.LoadFile(path)
		if err != nil {
			return levelErrorMsg{path: path, err: err}
		}
		return levelChangedMsg{level: lvl}
	}
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
