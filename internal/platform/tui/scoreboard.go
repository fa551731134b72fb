package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	sidebarMinWidth = 84 // Narrower windows get tabs instead of the sidebar
	sidebarWidth    = 24
	scoreLimit      = 100
)

var (
	sbAccent = lipgloss.Color("229")
	sbMuted  = lipgloss.Color("241")
	sbBorder = lipgloss.Color("240")
	sbActive = lipgloss.Color("22")

	sbTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(sbAccent)
	sbMutedStyle = lipgloss.NewStyle().Foreground(sbMuted)
	sbPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(sbBorder).
			Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextBoard: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		PrevBoard: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev board")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of one board at a time.
type ScoreboardModel struct {
	store  *storage.Store
	boards []registry.GameInfo
	stats  map[string]*storage.GameStats // Per board; nil without storage
	board  int                           // Index into boards
	scores []storage.ScoreEntry

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard showing the first board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		boards: registry.List(),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if store != nil {
		if stats, err := store.GetAllGamesStats(); err == nil {
			m.stats = stats
		}
	}
	m.table = m.newTable()
	m.selectBoard(0)
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= sidebarMinWidth
}

// newTable builds a score table sized to the window.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "Length", Width: 7},
		{Title: "Turns", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 12},
	}

	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	if spare := avail - used; spare > 0 {
		columns[4].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(sbBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(sbAccent).
		Background(sbActive).
		Bold(false)
	t.SetStyles(styles)
	return t
}

// selectBoard loads the runs of boards[i] into the table.
func (m *ScoreboardModel) selectBoard(i int) {
	m.scores = nil
	if len(m.boards) == 0 {
		m.table.SetRows(nil)
		return
	}
	m.board = (i + len(m.boards)) % len(m.boards)
	if m.store != nil {
		if scores, err := m.store.TopScores(m.boards[m.board].ID, scoreLimit); err == nil {
			m.scores = scores
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Length),
			strconv.Itoa(s.Turns),
			s.Player,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextBoard):
			m.selectBoard(m.board + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevBoard):
			m.selectBoard(m.board - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.fillTable()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.boards) > 0 {
		title += " - " + m.boards[m.board].Title
	}

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			sbPanelStyle.Width(sidebarWidth).Render(m.sidebar()), "  ",
			sbPanelStyle.Render(m.tableView()))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center, m.tabs(), "", sbPanelStyle.Render(m.tableView()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.center(sbTitleStyle.Render(title)),
		m.center(sbMutedStyle.Render(m.summary())),
		"",
		m.center(body),
		"",
		sbMutedStyle.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) center(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m ScoreboardModel) boardStats(id string) *storage.GameStats {
	if st, ok := m.stats[id]; ok {
		return st
	}
	return nil
}

// summary describes the selected board's history.
func (m ScoreboardModel) summary() string {
	if len(m.boards) == 0 {
		return "no boards"
	}
	st := m.boardStats(m.boards[m.board].ID)
	if st == nil || st.GamesCount == 0 {
		return "no games yet"
	}
	return fmt.Sprintf("%d games  |  avg %.1f  |  longest snake %d",
		st.GamesCount, st.AvgScore, st.MaxLength)
}

// sidebar lists every board with its best score.
func (m ScoreboardModel) sidebar() string {
	lines := []string{"Boards", strings.Repeat("─", sidebarWidth-2)}
	for i, b := range m.boards {
		best := "-"
		if st := m.boardStats(b.ID); st != nil && st.HighScore > 0 {
			best = strconv.Itoa(st.HighScore)
		}
		name := truncate(b.Title, sidebarWidth-10)
		line := fmt.Sprintf("%-*s %4s", sidebarWidth-9, name, best)
		if i == m.board {
			lines = append(lines, sbTitleStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}
	return strings.Join(lines, "\n")
}

// tabs is the narrow-window board selector.
func (m ScoreboardModel) tabs() string {
	if len(m.boards) == 0 {
		return ""
	}
	active := lipgloss.NewStyle().Bold(true).Foreground(sbAccent).Background(sbActive).Padding(0, 1)
	parts := make([]string, len(m.boards))
	plain := 0
	for i, b := range m.boards {
		name := truncate(b.Title, 12)
		plain += len([]rune(name)) + 3
		if i == m.board {
			parts[i] = active.Render(name)
		} else {
			parts[i] = sbMutedStyle.Render(" " + name + " ")
		}
	}
	if plain > m.width-4 {
		return fmt.Sprintf("< %s >", m.boards[m.board].Title)
	}
	return strings.Join(parts, " ")
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return sbMutedStyle.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nEat something to get on the board!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
