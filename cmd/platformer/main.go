// platformer is a side-scrolling platformer that runs in the terminal.
//
// Usage:
//
//	platformer list                 - List available levels
//	platformer play <level>         - Play a level
//	platformer menu                 - Pick levels interactively
//	platformer serve                - Start SSH server for remote play
//	platformer scores <level>       - Show best runs for a level
//	platformer export <level>       - Write a level in the exchange format
//	platformer validate <file>...   - Check level files for problems
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--db <path>        - Set database path (default: ~/.platformer/scores.db)
//	--log-file <path>  - Write logs to a file (the TUI hides stderr)
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

var (
	logger    = log.NewWithOptions(os.Stderr, log.Options{Prefix: "platformer"})
	tuiLogger = log.New(io.Discard) // Used while the alt screen owns the terminal
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Platformer - collect every gift and reach the goal",
	Long: `Platformer is a side-scrolling platform game for the terminal.

Collect every gift in a level to reveal the goal, then reach it to win.
Built-in levels are always available; JSON or YAML levels placed in
~/.platformer/levels are added to the list.

Available commands:
  list      - Show all available levels
  play      - Play a specific level directly
  menu      - Interactive level picker
  serve     - Start SSH server for remote play
  scores    - View best runs
  export    - Write a level as JSON or YAML
  validate  - Check level files

Examples:
  platformer list
  platformer play birthday
  platformer play --level-file ./my-level.json --watch
  platformer menu
  platformer serve --ssh :2222
  platformer scores birthday`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
}

// setup configures logging and registers user levels.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		tuiLogger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "platformer",
			Level:           level,
		})
	}
	platformer.SetLogger(tuiLogger)

	dir := levels.UserDir()
	if dir == "" {
		return nil
	}
	user, err := levels.LoadDir(dir)
	if err != nil {
		logger.Warn("skipping user levels", "dir", dir, "error", err)
		return nil
	}
	for _, id := range platformer.RegisterLevels(user) {
		logger.Debug("user level shadows a built-in level, skipped", "level", id)
	}
	return nil
}
