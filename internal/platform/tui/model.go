package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	snakecore "github.com/vovakirdan/tui-snake/internal/games/snake/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// snapshotter is implemented by games that expose their simulation state.
type snapshotter interface {
	Snapshot() snakecore.Snapshot
}

// debugger is implemented by games that can describe their internal state.
type debugger interface {
	DebugState() string
}

// Options tune a game session.
type Options struct {
	// Player is stored with scores ("local" when empty).
	Player string

	// RecordPath, when set, receives a replay of the last finished game.
	RecordPath string

	// AllowBack lets B/Esc leave a paused or finished game (menu sessions).
	AllowBack bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	recorder   *replay.Recorder
	err        *error // Last recording error; shared across model copies

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the score has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = "local"
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		err:        new(error),
	}
	if opts.RecordPath != "" {
		m.recorder = replay.NewRecorder(game.ID())
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.record()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions are queued in arrival order
// and applied on the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.opts.AllowBack && m.inputFrame.Has(core.ActionBack) &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleResize keeps the running game when it can re-layout, and otherwise
// restarts it at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick runs one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if wasOver && !m.gameState.GameOver {
		// Restarted
		m.scoreSaved = false
		if m.recorder != nil {
			m.recorder.Reset()
		}
		m.record()
	} else if result.Moved || (m.gameState.GameOver && !wasOver) {
		m.record()
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.finishGame()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// record appends the current snapshot to the replay, if recording.
func (m Model) record() {
	if m.recorder == nil {
		return
	}
	if s, ok := m.game.(snapshotter); ok {
		m.recorder.Record(s.Snapshot())
	}
}

// finishGame saves the score and writes the replay. Both are best-effort:
// the game continues regardless.
func (m Model) finishGame() {
	run := storage.Run{
		GameID: m.game.ID(),
		Player: m.opts.Player,
		Score:  m.gameState.Score,
	}
	if s, ok := m.game.(snapshotter); ok {
		snap := s.Snapshot()
		run.Length = len(snap.Body)
		run.Turns = snap.Turn
	}

	if m.store != nil && run.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveRun(run)
	}

	if m.recorder != nil && m.recorder.Len() > 0 {
		*m.err = m.recorder.Write(m.opts.RecordPath)
	}
}

// saveScreenshot saves the current screen to ~/.arcade/screenshots, followed
// by the game's debug state when it has one.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)
	shot := m.screen.String()
	if d, ok := m.game.(debugger); ok {
		shot += "\n" + d.DebugState()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(shot), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the last replay write error, if any.
func (m Model) Err() error {
	return *m.err
}

// standalone ends the program when the game asks to go back, for hosts that
// run a menu as a separate program.
type standalone struct {
	Model
}

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := s.Model.Update(msg)
	if m, ok := newModel.(Model); ok {
		s.Model = m
	}
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(standalone{model}, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	if err := model.Err(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
