package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func TestMenuListsBoardsWithBestScores(t *testing.T) {
	isolate(t)
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveRun(storage.Run{GameID: snake.IDClassic, Score: 17})

	m := NewMenuModel(store, testConfig())
	view := m.View()

	for _, title := range []string{"Snake", "Snake (Mini)", "Snake (Wide)"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu should list %q", title)
		}
	}
	if !strings.Contains(view, "best 17") {
		t.Error("menu should show the classic best score")
	}
	for _, size := range []string{"20x20", "10x10", "40x20"} {
		if !strings.Contains(view, size) {
			t.Errorf("menu should show board size %s", size)
		}
	}
	if !strings.Contains(view, "One move every 9 frames at 60 fps") {
		t.Error("menu should show the move speed")
	}
}

func TestMenuCursorWraps(t *testing.T) {
	isolate(t)
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	menu := next.(MenuModel)
	if menu.cursor != len(menu.items)-1 {
		t.Errorf("up from the first item should wrap to the last, got %d", menu.cursor)
	}

	next, _ = menu.Update(tea.KeyMsg{Type: tea.KeyDown})
	if next.(MenuModel).cursor != 0 {
		t.Errorf("down from the last item should wrap to the first, got %d", next.(MenuModel).cursor)
	}
}

func TestMenuSelect(t *testing.T) {
	isolate(t)
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)

	if cmd == nil || menu.Selected() == nil {
		t.Fatal("enter should select an item")
	}
	if menu.Selected().GameID != menu.items[1].GameID {
		t.Errorf("selected %s, expected %s", menu.Selected().GameID, menu.items[1].GameID)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	isolate(t)
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSessionFlow(t *testing.T) {
	isolate(t)
	s := NewSessionModel(nil, testConfig(), "alice")

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("expected scoreboard, got screen %d", s.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("expected menu after back, got screen %d", s.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame {
		t.Fatalf("expected game, got screen %d", s.screen)
	}
	if s.game.opts.Player != "alice" {
		t.Errorf("session player = %q", s.game.opts.Player)
	}

	step(runeKey('p'))
	step(TickMsg{})
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Errorf("expected menu after leaving a paused game, got screen %d", s.screen)
	}

	step(runeKey('q'))
	if !s.quitting || s.View() != "" {
		t.Error("q in the menu should end the session")
	}
}
