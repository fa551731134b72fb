// Package registry maps board IDs to game factories. Games register in
// init(), and hosts (CLI, SSH menu, scoreboard) discover them here.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game is what a host drives: Reset once, then Step and Render every frame.
// Simulation code stays free of terminal concerns.
type Game interface {
	// ID is the stable key used on the command line and in score storage
	// (e.g. "snake", "snake_mini").
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new game for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one frame with the actions collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State reports score, game over and pause.
	State() core.GameState
}

// Resizer is implemented by games that can re-layout for a new screen size
// without losing progress. Hosts Reset other games on resize.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a factory under id. It panics on an empty or duplicate id
// and on a nil factory, since registration happens in init().
func Register(id string, f Factory) {
	if strings.TrimSpace(id) == "" || f == nil {
		panic(fmt.Sprintf("registry: invalid registration for %q", id))
	}

	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
