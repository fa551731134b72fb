package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a board",
	Long: `Start playing the specified Snake board.

Controls:
  Arrows/WASD/HJKL  - Steer
  P/Space           - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slow moves
  normal - Default speed
  hard   - Fast moves

Examples:
  arcade play snake
  arcade play snake_mini --difficulty hard
  arcade play snake --config ./my-snake.yaml
  arcade play snake --record ./last.parquet`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a parquet replay of each finished game to this path")
}

// applyGameFlags checks --config and --difficulty and hands them to the
// snake package before any game is created.
func applyGameFlags() error {
	if flagDifficulty != "" && !config.IsKnownPreset(config.DifficultyPreset(flagDifficulty)) {
		return fmt.Errorf("unknown difficulty %q (expected easy, normal or hard)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.LoadSnake(flagConfig); err != nil {
			return err
		}
	}
	snake.SetConfigPath(flagConfig)
	snake.SetDifficultyPreset(flagDifficulty)
	return nil
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, or returns nil when it cannot be
// opened so play continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available boards)", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), tui.Options{RecordPath: flagRecord}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
