package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/replay"
)

var flagFrames bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Inspect a recorded game",
	Long: `Read a parquet replay written by 'arcade play --record' and print a
summary of the game. With --frames, every recorded turn is drawn as text.

Examples:
  arcade replay ./last.parquet
  arcade replay ./last.parquet --frames`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagFrames, "frames", false, "Print every recorded turn")
}

func runReplay(_ *cobra.Command, args []string) error {
	rows, err := replay.Read(args[0])
	if err != nil {
		return err
	}

	if flagFrames {
		for _, row := range rows {
			snap := row.Snapshot()
			fmt.Printf("Turn %d  Score %d  Direction %s\n", snap.Turn, snap.Score, snap.Dir)
			fmt.Print(replay.RenderText(snap))
		}
	}

	sum := replay.Summarize(rows)
	result := "in progress"
	if sum.Over {
		result = "game over"
	}
	fmt.Printf("Board:  %s (%dx%d)\n", sum.GameID, sum.Width, sum.Height)
	fmt.Printf("Turns:  %d\n", sum.Turns)
	fmt.Printf("Score:  %d\n", sum.Score)
	fmt.Printf("Length: %d\n", sum.Length)
	fmt.Printf("Result: %s\n", result)
	return nil
}
