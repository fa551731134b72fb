// Package tui runs Snake in the terminal with Bubble Tea, either locally or
// behind the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// TickMsg is sent to trigger a game frame.
type TickMsg time.Time

// frameInterval is the wall time of one frame at tickRate.
func frameInterval(tickRate int) time.Duration {
	rate := core.RuntimeConfig{TickRate: tickRate}.FrameRate()
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
