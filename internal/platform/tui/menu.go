package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// MenuItem is one board in the picker.
type MenuItem struct {
	GameID string
	Title  string
	Width  int // Board size in cells
	Height int
	Best   int // Best stored score, 0 without storage
}

// MenuModel is the Bubble Tea model for the board picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	framesPerMove  int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// NewMenuModel lists every registered board with its size from the snake
// config and, when store is set, its best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	sc := snake.LoadConfig()
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		board := sc.Board(g.ID)
		item := MenuItem{GameID: g.ID, Title: g.Title, Width: board.Width, Height: board.Height}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:         items,
		width:         cfg.ScreenW,
		height:        cfg.ScreenH,
		framesPerMove: snake.FramesPerMove(sc, cfg.FrameRate()),
		config:        cfg,
		keyMapper:     NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// handleKey moves the cursor (wrapping at both ends) or leaves the menu.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}

	case MenuActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}

	case MenuActionSelect:
		if n > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleW := 0
	for _, item := range m.items {
		titleW = max(titleW, len([]rune(item.Title)))
	}

	lines := []string{
		"",
		menuTitleStyle.Render("S N A K E"),
		"",
		"Select a board",
		"",
	}
	for i, item := range m.items {
		best := "-"
		if item.Best > 0 {
			best = fmt.Sprintf("best %d", item.Best)
		}
		line := fmt.Sprintf("%-*s  %5s  %s", titleW, item.Title,
			fmt.Sprintf("%dx%d", item.Width, item.Height), best)
		if i == m.cursor {
			lines = append(lines, menuSelectedStyle.Render("> "+line+"  "))
		} else {
			lines = append(lines, "  "+line+"  ")
		}
	}
	lines = append(lines,
		"",
		menuDimStyle.Render(fmt.Sprintf("One move every %d frames at %d fps", m.framesPerMove, m.config.FrameRate())),
		"",
		menuDimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"),
	)

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}

	return result, nil
}
