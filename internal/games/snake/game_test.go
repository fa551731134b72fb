package snake

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	platformcore "github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

type fixedSource struct {
	vals []int
}

func (s *fixedSource) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v % n
}

// newTestGame resets a game with an isolated HOME so user configs don't leak in.
func newTestGame(t *testing.T, id string, cfg platformcore.RuntimeConfig) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")

	g := NewVariant(id)
	g.Reset(cfg)
	return g
}

func defaultCfg(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// stepMoves runs frames until the snake has moved n times or the game ended.
func stepMoves(g *Game, in platformcore.InputFrame, n int) {
	for moved := 0; moved < n && !g.State().GameOver; {
		if g.Step(in).Moved {
			moved++
		}
		in = platformcore.NewInputFrame()
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, IDClassic, defaultCfg(12345))
	g2 := newTestGame(t, IDClassic, defaultCfg(12345))

	input := platformcore.NewInputFrame()
	for i := 0; i < 300; i++ {
		input.Clear()
		switch i {
		case 20:
			input.Set(platformcore.ActionDown)
		case 80:
			input.Set(platformcore.ActionLeft)
		case 150:
			input.Set(platformcore.ActionUp)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if snap1, snap2 := g1.Snapshot(), g2.Snapshot(); !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
}

func TestMovesEveryConfiguredFrames(t *testing.T) {
	g := newTestGame(t, IDClassic, defaultCfg(1))
	if g.MoveEveryTicks() != 9 {
		t.Fatalf("MoveEveryTicks() = %d, expected 9 at 60 fps", g.MoveEveryTicks())
	}

	head := g.state.Head()
	in := platformcore.NewInputFrame()
	for i := 0; i < 8; i++ {
		if g.Step(in).Moved {
			t.Fatalf("moved early on frame %d", i+1)
		}
	}
	if !g.Step(in).Moved {
		t.Fatal("expected a move on frame 9")
	}
	if got := g.state.Head(); got.X != head.X+1 {
		t.Errorf("head moved to %v, expected one cell right of %v", got, head)
	}
}

func TestFramesPerMoveScalesWithTickRate(t *testing.T) {
	sc := config.DefaultSnakeConfig()

	tests := []struct {
		tickRate, expected int
	}{
		{60, 9},
		{30, 4},
		{120, 18},
		{1, 1},
		{0, 9},
	}
	for _, tc := range tests {
		if got := FramesPerMove(sc, tc.tickRate); got != tc.expected {
			t.Errorf("FramesPerMove(%d) = %d, expected %d", tc.tickRate, got, tc.expected)
		}
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, IDClassic, defaultCfg(42))
	start := g.state.Head()

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionLeft)
	stepMoves(g, in, 1)

	if g.state.Heading() != core.DirRight {
		t.Errorf("Heading() = %v, reversal should be ignored", g.state.Heading())
	}
	if got := g.state.Head(); got.X != start.X+1 || got.Y != start.Y {
		t.Errorf("head = %v, expected one cell right of %v", got, start)
	}
}

func TestQueuedTurnsInOneFrame(t *testing.T) {
	g := newTestGame(t, IDClassic, defaultCfg(7))

	// Up then Left within a single move window: Left is the reverse of the
	// committed heading, so only Up applies.
	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionUp)
	in.Set(platformcore.ActionLeft)
	stepMoves(g, in, 1)

	if g.state.Heading() != core.DirUp {
		t.Errorf("Heading() = %v, expected up", g.state.Heading())
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := newTestGame(t, IDMini, defaultCfg(seed))
		in := platformcore.NewInputFrame()
		in.Set(platformcore.ActionUp)
		stepMoves(g, in, 5)

		sim := g.state
		if sim.IsOver() {
			continue
		}
		food := sim.Food()
		for _, c := range sim.Cells() {
			if c == food {
				t.Errorf("seed %d: food spawned on snake at %v", seed, food)
			}
		}
		if food.X < 0 || food.X >= sim.Width() || food.Y < 0 || food.Y >= sim.Height() {
			t.Errorf("seed %d: food out of bounds at %v", seed, food)
		}
	}
}

func TestSnakeGrowth(t *testing.T) {
	g := newTestGame(t, IDClassic, defaultCfg(222))
	g.state = core.New(20, 20, &fixedSource{vals: []int{11, 8, 0, 0}})

	stepMoves(g, platformcore.NewInputFrame(), 1)

	if g.state.Len() != 4 {
		t.Errorf("Snake should grow by 1 after eating food, got length %d", g.state.Len())
	}
	if g.State().Score != 1 {
		t.Errorf("Score should be 1 after eating food, got %d", g.State().Score)
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	g := newTestGame(t, IDMini, defaultCfg(3))

	// Mini board: head starts at (9, 8) against the right wall.
	stepMoves(g, platformcore.NewInputFrame(), 1)

	if !g.State().GameOver {
		t.Error("Game should be over after hitting wall")
	}
	if g.Snapshot().State != core.StateGameOver {
		t.Errorf("Snapshot().State = %s, expected game_over", g.Snapshot().State)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t, IDMini, defaultCfg(3))
	stepMoves(g, platformcore.NewInputFrame(), 1)
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionRestart)
	g.Step(in)

	if g.State().GameOver {
		t.Error("restart should start a new round")
	}
	if g.state.Len() != 3 || g.State().Score != 0 {
		t.Errorf("new round should start fresh, got len %d score %d", g.state.Len(), g.State().Score)
	}
}

func TestConfirmRestartsAfterGameOver(t *testing.T) {
	g := newTestGame(t, IDMini, defaultCfg(3))
	stepMoves(g, platformcore.NewInputFrame(), 1)
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionConfirm)
	g.Step(in)

	if g.State().GameOver {
		t.Error("enter should start a new round after game over")
	}
	if g.state.Turn() != 0 {
		t.Errorf("Turn() = %d, expected 0", g.state.Turn())
	}
}

func TestOverlayFitsNarrowScreen(t *testing.T) {
	g := newTestGame(t, IDMini, defaultCfg(3))
	screen := platformcore.NewScreen(8, 6)
	g.Resize(8, 6)
	g.Render(screen)

	if !strings.Contains(screen.String(), "┌") {
		t.Errorf("overlay box should be drawn on a narrow screen:\n%s", screen.String())
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, IDClassic, defaultCfg(5))
	sim := g.state

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionRestart)
	g.Step(in)

	if g.state != sim {
		t.Error("restart should only apply after game over")
	}
}

func TestPauseStopsMovement(t *testing.T) {
	g := newTestGame(t, IDClassic, defaultCfg(9))
	head := g.state.Head()

	pause := platformcore.NewInputFrame()
	pause.Set(platformcore.ActionPause)
	g.Step(pause)

	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	for i := 0; i < 50; i++ {
		if g.Step(platformcore.NewInputFrame()).Moved {
			t.Fatal("snake moved while paused")
		}
	}
	if g.state.Head() != head {
		t.Error("head changed while paused")
	}
	if g.Snapshot().State != core.StatePaused {
		t.Errorf("Snapshot().State = %s, expected paused", g.Snapshot().State)
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestWindowTooSmall(t *testing.T) {
	cfg := defaultCfg(333)
	cfg.ScreenW = 10
	cfg.ScreenH = 5

	g := newTestGame(t, IDClassic, cfg)

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}
	if snap := g.Snapshot(); snap.State != core.StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", snap.State)
	}
	if g.Step(platformcore.NewInputFrame()).Moved {
		t.Error("game should not advance while the window is too small")
	}

	g.Resize(80, 24)
	if g.tooSmall {
		t.Error("Resize to 80x24 should fit the classic board")
	}
}

func TestLayoutCellWidth(t *testing.T) {
	classic := newTestGame(t, IDClassic, defaultCfg(1))
	if classic.cellW != 2 {
		t.Errorf("classic board should use double-width cells, got %d", classic.cellW)
	}

	wide := newTestGame(t, IDWide, defaultCfg(1))
	if wide.cellW != 1 {
		t.Errorf("wide board should fall back to single-width cells on 80 columns, got %d", wide.cellW)
	}
}

func TestRender(t *testing.T) {
	cfg := defaultCfg(444)
	g := newTestGame(t, IDClassic, cfg)

	screen := platformcore.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	content := screen.String()

	if !strings.Contains(content, "Snake") {
		t.Error("HUD should contain 'Snake'")
	}
	if !strings.Contains(content, "OO") {
		t.Error("head should be drawn two columns wide")
	}
	if !strings.Contains(content, "**") {
		t.Error("food should be drawn")
	}
	if !strings.Contains(content, "┌") {
		t.Error("board border should be drawn")
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newTestGame(t, IDMini, defaultCfg(3))
	stepMoves(g, platformcore.NewInputFrame(), 1)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay should be drawn")
	}
}

func TestDifficultyPresetChangesSpeed(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")

	g := NewVariant(IDClassic)
	g.Reset(defaultCfg(1))

	if g.MoveEveryTicks() != 5 {
		t.Errorf("hard preset MoveEveryTicks() = %d, expected 5", g.MoveEveryTicks())
	}
}

func TestConfigFileDifficulty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("difficulty: hard\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	SetDifficultyPreset("")
	g := NewVariant(IDClassic)
	g.Reset(defaultCfg(1))
	if g.MoveEveryTicks() != 5 {
		t.Errorf("difficulty: hard in the file gave MoveEveryTicks() = %d, expected 5", g.MoveEveryTicks())
	}

	SetDifficultyPreset("easy")
	defer SetDifficultyPreset("")
	g.Reset(defaultCfg(1))
	if g.MoveEveryTicks() != 12 {
		t.Errorf("--difficulty easy should override the file, got %d", g.MoveEveryTicks())
	}
}

func TestGameIDsAndTitles(t *testing.T) {
	tests := []struct {
		id, title string
	}{
		{IDClassic, "Snake"},
		{IDMini, "Snake (Mini)"},
		{IDWide, "Snake (Wide)"},
	}

	for _, tc := range tests {
		if !registry.Exists(tc.id) {
			t.Errorf("%s should be registered", tc.id)
			continue
		}
		g, err := registry.Create(tc.id)
		if err != nil {
			t.Fatalf("Create(%s): %v", tc.id, err)
		}
		if g.ID() != tc.id {
			t.Errorf("ID() = %s, expected %s", g.ID(), tc.id)
		}
		if g.Title() != tc.title {
			t.Errorf("Title() = %s, expected %s", g.Title(), tc.title)
		}
	}
}

func TestDebugState(t *testing.T) {
	g := newTestGame(t, IDClassic, defaultCfg(1))
	if !strings.Contains(g.DebugState(), "Snake len: 3") {
		t.Errorf("DebugState() = %q", g.DebugState())
	}
}
