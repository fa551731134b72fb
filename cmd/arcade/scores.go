package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagClearScores bool
	flagAllScores   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a board",
	Long: `Display the top 10 high scores for the specified board.

Examples:
  arcade scores snake
  arcade scores snake_mini --all
  arcade scores snake --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the board")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "List every recorded run instead of the top 10")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'arcade list' to see available boards)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n", game.Title())
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Length", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "------", "------", "----")

	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-6d  %-6d  %-12s  %s\n",
			i+1, entry.Score, entry.Length, entry.Player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
