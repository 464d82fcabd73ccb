package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <level>",
	Short: "Write a level in the exchange format",
	Long: `Load a level and write its platforms, gifts, spawn and goal.

The format follows the output file extension: .yaml/.yml writes YAML,
anything else writes indented JSON. Without -o, JSON goes to stdout.

Examples:
  platformer export birthday -o birthday.json
  platformer export tower -o tower.yaml
  platformer export garden`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (default: stdout)")
}

func runExport(_ *cobra.Command, args []string) error {
	all, err := levels.All(levels.UserDir())
	if err != nil {
		return err
	}
	lvl, err := levels.Find(all, args[0])
	if err != nil {
		return err
	}

	cfg := config.DefaultPlatformerConfig()
	world := engine.LoadLevel(lvl.Data, cfg.EnginePhysics(0))

	if flagExportOut != "" {
		if err := levels.Export(flagExportOut, world); err != nil {
			return err
		}
		logger.Info("exported level", "level", lvl.ID, "file", flagExportOut)
		return nil
	}

	raw, err := levels.Encode("stdout.json", engine.ExportLevel(world))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(raw)
	return err
}
