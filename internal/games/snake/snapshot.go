package snake

import "github.com/vovakirdan/tui-snake/internal/games/snake/core"

// Snapshot returns the simulation state as seen by the host, including pause
// and window-size states.
func (g *Game) Snapshot() core.Snapshot {
	if g.state == nil {
		return core.Snapshot{State: core.StatePausedSmall}
	}
	snap := g.state.Snapshot()
	switch {
	case g.tooSmall:
		snap.State = core.StatePausedSmall
	case g.paused && !snap.Over:
		snap.State = core.StatePaused
	}
	return snap
}
