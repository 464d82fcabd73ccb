// Package platformer adapts the side-scrolling simulation in engine to the
// registry.Game interface. One game is registered per built-in level.
package platformer

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Game runs one level.
type Game struct {
	level   levels.Level
	cfg     config.PlatformerConfig
	runtime core.RuntimeConfig
	world   *engine.World
	input   engine.InputState
	sprites *SpriteSet
	paused  bool
	logger  *log.Logger
}

// Settings set via CLI before games are created.
var (
	configPath   string
	preset       config.Preset
	spritesPath  string
	globalLogger = log.Default()
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// configured values.
func SetDifficultyPreset(name string) {
	preset = config.ParsePreset(name)
}

// SetSpritesPath sets the YAML sprite sheet to use instead of the built-in glyphs.
func SetSpritesPath(path string) {
	spritesPath = path
}

// SetLogger sets the logger used by newly created games.
func SetLogger(l *log.Logger) {
	if l != nil {
		globalLogger = l
	}
}

// New creates a game for the given level. The world is built on Reset.
func New(level levels.Level) *Game {
	return &Game{level: level, logger: globalLogger}
}

// ID returns the level ID.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Reset loads configuration and sprites and builds a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(configPath)
	if err != nil {
		g.logger.Warn("using default config", "error", err)
		cfg = config.DefaultPlatformerConfig()
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	g.cfg = cfg

	if g.sprites == nil {
		g.sprites = LoadSprites(spritesPath, g.logger)
	}

	g.world = engine.LoadLevel(g.level.Data, cfg.EnginePhysics(g.viewportWidth()))
	g.input.Reset()
	g.paused = false
}

// Resize updates the visible world width without resetting progress.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.world != nil {
		g.world.Physics.ViewportWidth = g.viewportWidth()
		g.world.Camera = engine.UpdateCamera(g.world.Camera, g.world.Player, g.world.Physics.ViewportWidth, g.world.LevelWidth)
	}
}

// ApplyLevel replaces the running world with a freshly loaded one.
// Called between ticks when a watched level file changes.
func (g *Game) ApplyLevel(level levels.Level) {
	g.level = level
	if g.world == nil {
		return
	}
	g.world = engine.LoadLevel(level.Data, g.world.Physics)
	g.input.Reset()
	g.logger.Info("level reloaded", "level", level.ID, "source", level.Source)
}

// Step advances the simulation by one tick. A won run no longer advances.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil || g.world.GameWon {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	// Restart works while paused and resumes play.
	if in.Has(core.ActionRestart) {
		engine.Reset(g.world)
		g.input.Reset()
		g.paused = false
		return core.StepResult{State: g.State()}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.input.Update(in)
	res := engine.Tick(g.world, &g.input)

	if res.Picked > 0 {
		g.logger.Debug("gift collected", "level", g.level.ID, "score", res.Score, "total", res.Total)
	}
	if res.Events.Respawned {
		g.logger.Debug("player fell", "level", g.level.ID, "tick", g.world.Ticks)
	}
	if res.GameWon {
		g.logger.Info("level complete", "level", g.level.ID, "ticks", g.world.Ticks)
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:    g.world.Score,
		Total:    g.world.TotalCollectibles(),
		Ticks:    g.world.Ticks,
		Won:      g.world.GameWon,
		GameOver: g.world.GameWon,
		Paused:   g.paused,
	}
}

// Snapshot returns a render copy of the world.
func (g *Game) Snapshot() engine.Snapshot {
	if g.world == nil {
		return engine.Snapshot{}
	}
	return g.world.Snapshot()
}

// World exposes the running world for exports.
func (g *Game) World() *engine.World {
	return g.world
}

// viewportWidth is the world width visible in the terminal.
func (g *Game) viewportWidth() float64 {
	cw := g.cfg.Render.CellWidth
	if cw <= 0 {
		cw = config.DefaultPlatformerConfig().Render.CellWidth
	}
	return float64(g.runtime.ScreenW) * cw
}

// Register the built-in levels with the registry
func init() {
	builtin, err := levels.Builtin()
	if err != nil {
		panic(err)
	}
	for _, lvl := range builtin {
		registry.Register(lvl.ID, func() registry.Game {
			return New(lvl)
		})
	}
}

// RegisterLevels registers user levels. Levels whose ID is already taken
// are skipped and returned.
func RegisterLevels(lvls []levels.Level) (skipped []string) {
	for _, lvl := range lvls {
		if registry.Exists(lvl.ID) {
			skipped = append(skipped, lvl.ID)
			continue
		}
		registry.Register(lvl.ID, func() registry.Game {
			return New(lvl)
		})
	}
	return skipped
}
