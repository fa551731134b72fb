package core

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the observable simulation state for determinism tests,
// replays and network frames.
type Snapshot struct {
	Turn   int           `json:"turn"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Score  int           `json:"score"`
	Dir    string        `json:"dir"`
	Body   []Point       `json:"body"`
	Food   Point         `json:"food"`
	Over   bool          `json:"over"`
	State  GameStateType `json:"state"`
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	state := StatePlaying
	if s.over {
		state = StateGameOver
	}
	return Snapshot{
		Turn:   s.turn,
		Width:  s.width,
		Height: s.height,
		Score:  s.score,
		Dir:    s.heading.String(),
		Body:   s.Cells(),
		Food:   s.food,
		Over:   s.over,
		State:  state,
	}
}
