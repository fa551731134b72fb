// Package snake plugs the Snake simulation into the arcade platform: it maps
// input actions to direction requests, paces moves against the frame rate and
// draws the board.
package snake

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	platformcore "github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Registered variants. The classic board matches the 20x20 web original.
const (
	IDClassic = "snake"
	IDMini    = "snake_mini"
	IDWide    = "snake_wide"
)

const hudHeight = 2 // HUD line + separator

// Game implements registry.Game around a core.State.
type Game struct {
	id    string
	rng   *rand.Rand
	state *core.State
	cfg   platformcore.RuntimeConfig

	board          config.BoardConfig
	moveEveryTicks int
	moveTicker     int // Frames since the last move
	frame          uint64

	// Layout
	cellW  int // Terminal columns per board cell
	boardX int // Top-left of the board border
	boardY int

	paused   bool
	tooSmall bool
	won      bool // Snake covers the whole board
}

// Package-level settings applied on the next Reset (like the other games'
// CLI hooks).
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom YAML config path. Empty means the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// New creates a classic Snake game.
func New() *Game {
	return NewVariant(IDClassic)
}

// NewVariant creates a Snake game for one of the registered IDs.
func NewVariant(id string) *Game {
	return &Game{id: id}
}

func init() {
	for _, id := range []string{IDClassic, IDMini, IDWide} {
		registry.Register(id, func() registry.Game {
			return NewVariant(id)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.id {
	case IDMini:
		return "Snake (Mini)"
	case IDWide:
		return "Snake (Wide)"
	default:
		return "Snake"
	}
}

// LoadConfig resolves the Snake config from the package-level path and preset.
func LoadConfig() config.SnakeConfig {
	sc, err := config.LoadSnake(configPath)
	if err != nil {
		sc = config.DefaultSnakeConfig()
	}
	if difficultyPreset != "" {
		config.ApplySnakePreset(&sc, config.DifficultyPreset(difficultyPreset))
	}
	return sc
}

// FramesPerMove converts the configured move interval to frames at tickRate.
func FramesPerMove(sc config.SnakeConfig, tickRate int) int {
	tickRate = platformcore.RuntimeConfig{TickRate: tickRate}.FrameRate()
	frames := int(sc.MoveInterval(platformcore.DefaultTickRate) * time.Duration(tickRate) / time.Second)
	return max(1, frames)
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	sc := LoadConfig()
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.board = sc.Board(g.id)
	g.moveEveryTicks = FramesPerMove(sc, cfg.TickRate)
	g.frame = 0
	g.layout()
	g.newRound()
}

// newRound starts a fresh simulation, keeping the layout.
func (g *Game) newRound() {
	g.moveTicker = 0
	g.paused = false
	g.won = false
	g.state = core.New(g.board.Width, g.board.Height, rand.New(rand.NewSource(g.rng.Int63())))
}

// layout fits the board into the screen, doubling cell width when there is room.
func (g *Game) layout() {
	needH := hudHeight + g.board.Height + 2
	g.cellW = 2
	if g.board.Width*2+2 > g.cfg.ScreenW {
		g.cellW = 1
	}
	needW := g.board.Width*g.cellW + 2

	g.tooSmall = g.cfg.ScreenW < needW || g.cfg.ScreenH < needH
	g.boardX = platformcore.Clamp((g.cfg.ScreenW-needW)/2, 0, g.cfg.ScreenW)
	g.boardY = hudHeight
}

// Resize re-fits the board to a new screen size, keeping the running game.
func (g *Game) Resize(width, height int) {
	g.cfg.ScreenW = width
	g.cfg.ScreenH = height
	g.layout()
}

// Step advances the game by one frame.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.frame++

	restart := input.Has(platformcore.ActionRestart) || input.Has(platformcore.ActionConfirm)
	if restart && g.isOver() {
		g.newRound()
		return platformcore.StepResult{State: g.State()}
	}

	if input.Has(platformcore.ActionPause) && !g.isOver() {
		g.paused = !g.paused
	}

	if g.isOver() || g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	for _, a := range input.Actions() {
		if dir, ok := actionDirection(a); ok {
			g.state.RequestDirection(dir)
		}
	}

	g.moveTicker++
	if g.moveTicker < g.moveEveryTicks {
		return platformcore.StepResult{State: g.State()}
	}
	g.moveTicker = 0
	g.state.Tick()
	if g.state.Full() {
		g.won = true
	}
	return platformcore.StepResult{State: g.State(), Moved: true}
}

// actionDirection maps platform actions to snake directions.
func actionDirection(a platformcore.Action) (core.Direction, bool) {
	switch a {
	case platformcore.ActionUp:
		return core.DirUp, true
	case platformcore.ActionDown:
		return core.DirDown, true
	case platformcore.ActionLeft:
		return core.DirLeft, true
	case platformcore.ActionRight:
		return core.DirRight, true
	}
	return core.DirRight, false
}

func (g *Game) isOver() bool {
	return g.state != nil && (g.state.IsOver() || g.won)
}

// MoveEveryTicks returns the number of frames between moves.
func (g *Game) MoveEveryTicks() int {
	return g.moveEveryTicks
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall || g.state == nil {
		need := fmt.Sprintf("Need %dx%d", g.board.Width+2, hudHeight+g.board.Height+2)
		g.renderOverlay(dst, "Window too small", need)
		return
	}

	g.renderBoard(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", g.state.Score()))
	case g.state.IsOver():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R/Enter: restart", g.state.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	score, length := 0, 0
	if g.state != nil {
		score, length = g.state.Score(), g.state.Len()
	}
	hud := fmt.Sprintf(" %s | Score: %d  Length: %d  Board: %dx%d",
		g.Title(), score, length, g.board.Width, g.board.Height)
	dst.DrawTextColored(0, 0, hud, platformcore.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws the border, food and snake.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	frame := platformcore.NewRect(g.boardX, g.boardY, g.board.Width*g.cellW+2, g.board.Height+2)
	dst.DrawBox(frame, platformcore.ColorBorder)
	inner := frame.Inset(1)

	draw := func(p core.Point, r rune, c platformcore.Color) {
		x := inner.X + p.X*g.cellW
		for i := range g.cellW {
			dst.SetColored(x+i, inner.Y+p.Y, r, c)
		}
	}

	if !g.state.Full() {
		draw(g.state.Food(), '*', platformcore.ColorFood)
	}
	cells := g.state.Cells()
	for i := len(cells) - 1; i >= 0; i-- {
		if i == 0 {
			draw(cells[i], 'O', platformcore.ColorHead)
		} else {
			draw(cells[i], 'o', platformcore.ColorBody)
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	width := platformcore.Clamp(max(len([]rune(line1)), len([]rune(line2)))+4, 0, dst.Width())
	box := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).Centered(width, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorOverlay)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorAlert)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorDefault)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.state == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:    g.state.Score(),
		GameOver: g.isOver(),
		Paused:   g.paused,
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	if g.state == nil {
		return "no game\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Frame: %d, Turn: %d, Score: %d\n", g.frame, g.state.Turn(), g.state.Score())
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", g.state.Len(), g.state.Heading())
	head, food := g.state.Head(), g.state.Food()
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", head.X, head.Y, food.X, food.Y)
	fmt.Fprintf(&b, "GameOver: %v, Won: %v, Paused: %v\n", g.state.IsOver(), g.won, g.paused)
	return b.String()
}
