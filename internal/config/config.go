// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake/core"
)

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	Boards     SnakeBoards      `yaml:"boards"`
	Timing     SnakeTiming      `yaml:"timing"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
}

// SnakeBoards lists the board sizes of the registered variants.
type SnakeBoards struct {
	Classic BoardConfig `yaml:"classic"`
	Mini    BoardConfig `yaml:"mini"`
	Wide    BoardConfig `yaml:"wide"`
}

// BoardConfig is a grid size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeTiming controls how often the snake moves.
type SnakeTiming struct {
	MoveEveryTicks int `yaml:"move_every_ticks"`
}

// Board returns the board for a registered game ID. Unknown IDs get the
// classic board.
func (c SnakeConfig) Board(gameID string) BoardConfig {
	switch gameID {
	case "snake_mini":
		return c.Boards.Mini
	case "snake_wide":
		return c.Boards.Wide
	default:
		return c.Boards.Classic
	}
}

// MoveInterval converts the frame-based move interval to wall time.
func (c SnakeConfig) MoveInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Duration(c.Timing.MoveEveryTicks) * time.Second / time.Duration(tickRate)
}

// Validate checks that every board can host a game and timing is positive.
func (c SnakeConfig) Validate() error {
	boards := []struct {
		name string
		b    BoardConfig
	}{
		{"classic", c.Boards.Classic},
		{"mini", c.Boards.Mini},
		{"wide", c.Boards.Wide},
	}
	for _, entry := range boards {
		if err := core.CheckSize(entry.b.Width, entry.b.Height); err != nil {
			return fmt.Errorf("config: board %s: %w", entry.name, err)
		}
	}
	if c.Timing.MoveEveryTicks <= 0 {
		return fmt.Errorf("config: timing.move_every_ticks must be positive, got %d", c.Timing.MoveEveryTicks)
	}
	if c.Difficulty != "" && !IsKnownPreset(c.Difficulty) {
		return fmt.Errorf("config: unknown difficulty %q", c.Difficulty)
	}
	return nil
}
