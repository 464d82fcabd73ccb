package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSprites    string
	flagLevelFile  string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level, or a level file.

Controls:
  Left/A, Right/D  - Move
  Space/Up/W       - Jump (press again in the air to double jump)
  P                - Pause
  R                - Restart
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Three jumps, stronger jumps
  normal - Double jump (configured values)
  hard   - Single jump, faster movement

Examples:
  platformer play birthday
  platformer play tower --difficulty hard
  platformer play --level-file ./my-level.json --watch
  platformer play garden --config ./my-platformer.yaml --sprites ./sprites.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
		c.Flags().StringVar(&flagSprites, "sprites", "", "Path to a YAML sprite sheet")
	}
	playCmd.Flags().StringVar(&flagLevelFile, "level-file", "", "Play a level from a JSON or YAML file")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level file when it changes")
}

// applyGameFlags passes CLI settings to games created afterwards.
func applyGameFlags() error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
	}
	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
	platformer.SetSpritesPath(flagSprites)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// loopOptions reads the hold windows from config.
func loopOptions() tui.Options {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("using default input settings", "error", err)
	}
	return tui.Options{
		Hold:     time.Duration(cfg.Input.HoldMS) * time.Millisecond,
		JumpHold: time.Duration(cfg.Input.JumpHoldMS) * time.Millisecond,
		Logger:   tuiLogger,
	}
}

// openStore opens score storage. Failure is not fatal: the game still works.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	opts := loopOptions()
	var game registry.Game

	switch {
	case flagLevelFile != "":
		lvl, err := levels.LoadFile(flagLevelFile)
		if err != nil {
			return err
		}
		for _, w := range engine.Lint(lvl.Data, config.DefaultPlatformerConfig().EnginePhysics(0)) {
			logger.Warn("level problem", "file", flagLevelFile, "issue", w.String())
		}
		game = platformer.New(lvl)

		if flagWatch {
			watcher, err := levels.WatchFile(flagLevelFile)
			if err != nil {
				return fmt.Errorf("cannot watch %s: %w", flagLevelFile, err)
			}
			opts.Watcher = watcher
		}

	case len(args) == 1:
		if flagWatch {
			return fmt.Errorf("--watch needs --level-file")
		}
		var err error
		game, err = registry.Create(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'platformer list' to see available levels)", err)
		}

	default:
		return fmt.Errorf("give a level id or --level-file")
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
