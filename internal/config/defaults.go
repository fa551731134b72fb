package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the hardcoded Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Boards: SnakeBoards{
			Classic: BoardConfig{Width: 20, Height: 20},
			Mini:    BoardConfig{Width: 10, Height: 10},
			Wide:    BoardConfig{Width: 40, Height: 20},
		},
		Timing: SnakeTiming{
			MoveEveryTicks: 9,
		},
		Difficulty: DifficultyNormal,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake", "snake_mini", "snake_wide":
		return defaultSnakeYAML
	default:
		return nil
	}
}
