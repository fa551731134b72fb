package config

// DifficultyPreset represents a named difficulty level. Presets pick a fixed
// move interval; the speed never changes during a game.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// IsKnownPreset reports whether p names a preset.
func IsKnownPreset(p DifficultyPreset) bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// MoveEveryTicksForPreset returns the frames-per-move for a preset at 60 fps.
// Unknown presets return 0, meaning keep the configured value.
func MoveEveryTicksForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 12
	case DifficultyNormal:
		return 9 // 150ms per move
	case DifficultyHard:
		return 5
	default:
		return 0
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if ticks := MoveEveryTicksForPreset(preset); ticks > 0 {
		cfg.Difficulty = preset
		cfg.Timing.MoveEveryTicks = ticks
	}
}
