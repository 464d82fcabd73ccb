package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files for problems",
	Long: `Parse each level file and report layout problems such as
platforms, gifts or a goal with no area, or objects placed below
the fall threshold.

Exits with an error if any file fails to parse.

Examples:
  platformer validate ~/.platformer/levels/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	phys := config.DefaultPlatformerConfig().EnginePhysics(0)
	failed := 0

	for _, path := range args {
		warnings, err := levels.Validate(path, phys)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed++
			continue
		}
		if len(warnings) == 0 {
			fmt.Printf("%s: ok\n", path)
			continue
		}
		for _, w := range warnings {
			fmt.Printf("%s: %s\n", path, w)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(args))
	}
	return nil
}
