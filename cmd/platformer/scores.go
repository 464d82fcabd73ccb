package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show best runs for a level",
	Long: `Display the top 10 runs for the specified level.

Wins rank first, then by gifts collected, then by fewest ticks.

Examples:
  platformer scores birthday
  platformer scores tower --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded runs for the level")
}

func runScores(cmd *cobra.Command, args []string) error {
	levelID := args[0]

	game, err := registry.Create(levelID)
	if err != nil {
		return fmt.Errorf("%w (run 'platformer list' to see available levels)", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(levelID); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Printf("Cleared runs for %s.\n", title)
		return nil
	}

	scores, err := store.TopScores(levelID, 10)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' to set the first record!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-3s  %s\n", "Rank", "Gifts", "Ticks", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-3s  %s\n", "----", "-----", "-----", "---", "----")

	for i, entry := range scores {
		won := "no"
		if entry.Won {
			won = "yes"
		}
		gifts := fmt.Sprintf("%d/%d", entry.Score, entry.Total)
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-8d  %-3s  %s\n", i+1, gifts, entry.Ticks, won, dateStr)
	}

	fmt.Println()
	if ticks, ok, err := store.BestTime(levelID); err == nil && ok {
		fmt.Printf("Best time: %d ticks (%.2fs at %d fps)\n", ticks, float64(ticks)/float64(flagFPS), flagFPS)
	} else if high, err := store.HighScore(levelID); err == nil {
		fmt.Printf("Most gifts: %d\n", high)
	}
	return nil
}
