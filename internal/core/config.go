package core

// DefaultTickRate is the frame rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what a host tells a game on Reset: the screen it draws
// into, how often Step is called and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // Step calls per second
	Seed     int64 // 0 lets the host pick a time-based seed
}

// FrameRate returns TickRate, or DefaultTickRate when it is not positive.
func (c RuntimeConfig) FrameRate() int {
	if c.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.TickRate
}

// GameState is the host-facing summary of a game.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State GameState
	Moved bool // The simulation advanced one cell this frame
}
