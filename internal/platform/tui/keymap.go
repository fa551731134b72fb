package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// binding pairs a key binding with the game action it triggers.
type binding struct {
	key    key.Binding
	action core.Action
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
// Arrows, WASD and hjkl all steer.
type KeyMapper struct {
	quit key.Binding
	game []binding
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		quit: key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		game: []binding{
			{key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w/k", "up")), core.ActionUp},
			{key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s/j", "down")), core.ActionDown},
			{key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a/h", "left")), core.ActionLeft},
			{key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d/l", "right")), core.ActionRight},
			{key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p/space", "pause")), core.ActionPause},
			{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")), core.ActionRestart},
			{key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b/esc", "back")), core.ActionBack},
			{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")), core.ActionConfirm},
		},
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.game {
		if key.Matches(msg, b.key) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame appends the key's action to an input frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action. Space selects in
// menus instead of pausing.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	if msg.String() == "tab" {
		return MenuActionScoreboard
	}
	switch action, isQuit := km.MapKey(msg); {
	case isQuit:
		return MenuActionQuit
	case action == core.ActionUp:
		return MenuActionUp
	case action == core.ActionDown:
		return MenuActionDown
	case action == core.ActionConfirm, msg.String() == " ":
		return MenuActionSelect
	case action == core.ActionBack:
		return MenuActionBack
	}
	return MenuActionNone
}
