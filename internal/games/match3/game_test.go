package match3

import (
	"strings"
	"testing"

	"github.com/vovakirdan/minigames/internal/core"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	g.Reset(cfg)
	if !g.Start() {
		t.Fatal("Start() should succeed from Idle")
	}
	g.Step(core.NewInputFrame())
	return g
}

func snapshot(b *Board) []Gem {
	return append([]Gem(nil), b.cells...)
}

func sameCells(a, b []Gem) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return len(a) == len(b)
}

func TestNewGame(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	if g.State().Phase != core.PhaseIdle {
		t.Fatal("new game should be idle")
	}
	if g.State().TimeLeft != g.cfg.Scoring.TimeLimit {
		t.Errorf("TimeLeft = %g, expected %g", g.State().TimeLeft, g.cfg.Scoring.TimeLimit)
	}
	if len(g.Board().Runs()) != 0 || !g.Board().HasMove() {
		t.Error("initial board should have no runs and at least one move")
	}
	if g.Select() {
		t.Error("Select while idle should do nothing")
	}
}

func TestInvalidSwapIsReverted(t *testing.T) {
	g := newTestGame(t)
	fillPattern(g.board)
	before := snapshot(g.board)

	if g.TrySwap(Pos{0, 0}, Pos{1, 0}) {
		t.Error("swap without a run should be rejected")
	}
	if g.TrySwap(Pos{0, 0}, Pos{2, 0}) {
		t.Error("non-adjacent swap should be rejected")
	}
	if !sameCells(before, g.board.cells) {
		t.Error("rejected swaps must leave the board unchanged")
	}
	if g.Score() != 0 {
		t.Error("rejected swaps must not score")
	}
}

func TestValidSwapScoresAndAddsTime(t *testing.T) {
	g := newTestGame(t)
	fillPattern(g.board)
	g.board.Set(Pos{1, 1}, 0)
	timeBefore := g.State().TimeLeft

	if !g.TrySwap(Pos{1, 0}, Pos{1, 1}) {
		t.Fatal("swap lining up row 0 should succeed")
	}

	if want := 3 * g.cfg.Scoring.PointsPerGem; g.Score() < want {
		t.Errorf("score = %d, expected at least %d", g.Score(), want)
	}
	if got := g.State().TimeLeft; got < timeBefore+g.cfg.Scoring.MatchBonus {
		t.Errorf("TimeLeft = %g, expected at least %g", got, timeBefore+g.cfg.Scoring.MatchBonus)
	}
	if len(g.board.Runs()) != 0 {
		t.Error("board should be stable after resolving")
	}
	for i, gem := range g.board.cells {
		if gem == Empty {
			t.Fatalf("cell %d left empty", i)
		}
	}
}

func TestCascadeMultiplier(t *testing.T) {
	g := newTestGame(t)
	fillPattern(g.board)
	// Clearing the bottom of column 0 drops a 5 next to two more 5s on row 7.
	g.board.Set(Pos{0, 4}, 5)
	g.board.Set(Pos{0, 5}, 4)
	g.board.Set(Pos{0, 6}, 4)
	g.board.Set(Pos{0, 7}, 4)
	g.board.Set(Pos{1, 7}, 5)
	g.board.Set(Pos{2, 7}, 5)
	if runs := g.board.Runs(); len(runs) != 1 {
		t.Fatalf("setup should start with one run, got %+v", runs)
	}

	chain := g.resolve()

	if chain < 2 {
		t.Fatalf("chain = %d, expected a cascade", chain)
	}
	p := g.cfg.Scoring.PointsPerGem
	if want := 3*p + 3*p*2; g.Score() < want {
		t.Errorf("score = %d, expected at least %d", g.Score(), want)
	}
	res := g.Result(g.State())
	if e, ok := core.FindEvent(res.Events, core.EventCombo); !ok || e.Value != 2 {
		t.Errorf("expected a combo event for the second pass, got %+v", res.Events)
	}
}

func TestSelectFlow(t *testing.T) {
	g := newTestGame(t)
	fillPattern(g.board)
	before := snapshot(g.board)

	g.Step(core.Frame(core.ActionJump))
	if sel, ok := g.Selected(); !ok || sel != (Pos{0, 0}) {
		t.Fatalf("first press should select the cursor cell, got %v %v", sel, ok)
	}
	g.Step(core.Frame(core.ActionJump))
	if _, ok := g.Selected(); ok {
		t.Fatal("pressing the selected cell again should deselect")
	}

	g.Step(core.Frame(core.ActionJump))
	g.Step(core.Frame(core.ActionRight))
	g.Step(core.Frame(core.ActionRight))
	g.Step(core.Frame(core.ActionJump))
	if sel, _ := g.Selected(); sel != (Pos{2, 0}) {
		t.Fatalf("pressing a distant cell should move the selection, got %v", sel)
	}

	g.Step(core.Frame(core.ActionDown))
	g.Step(core.Frame(core.ActionJump))
	if _, ok := g.Selected(); ok {
		t.Error("an adjacent press should attempt the swap and clear the selection")
	}
	if !sameCells(before, g.board.cells) {
		t.Error("the swap makes no run and should have been reverted")
	}
}

func TestCursorClamped(t *testing.T) {
	g := newTestGame(t)
	g.Step(core.Frame(core.ActionLeft))
	g.Step(core.Frame(core.ActionUp))
	if g.Cursor() != (Pos{0, 0}) {
		t.Errorf("cursor = %v, expected {0 0}", g.Cursor())
	}
	for range 20 {
		g.MoveCursor(1, 1)
	}
	if g.Cursor() != (Pos{g.board.W - 1, g.board.H - 1}) {
		t.Errorf("cursor = %v, expected bottom-right corner", g.Cursor())
	}
}

func TestNoMoveTriggersReshuffle(t *testing.T) {
	g := newTestGame(t)
	fillPattern(g.board)

	g.ensurePlayable()

	if !g.board.HasMove() || g.shuffles != 1 {
		t.Error("a stuck board should be reshuffled into a playable one")
	}
	g.ensurePlayable()
	if g.shuffles != 1 {
		t.Error("a playable board must not be reshuffled")
	}
}

func TestCountdownEndsGame(t *testing.T) {
	g := newTestGame(t)
	ticks := int(g.cfg.Scoring.TimeLimit*60) + 5

	var res core.StepResult
	for range ticks {
		res = g.Step(core.NewInputFrame())
		if res.State.GameOver() {
			break
		}
	}

	if !res.State.GameOver() {
		t.Fatal("game should end when time runs out")
	}
	if res.State.TimeLeft != 0 {
		t.Errorf("TimeLeft = %g, expected 0", res.State.TimeLeft)
	}
	e, ok := core.FindEvent(res.Events, core.EventGameOver)
	if !ok || e.Reason != "time up" {
		t.Errorf("expected time up, got %+v", res.Events)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(40, 16)

	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, '[') {
		t.Error("cursor should be drawn")
	}
	if !strings.ContainsAny(out, string(gemGlyphs)) {
		t.Error("gems should be drawn")
	}
	if !strings.Contains(out, "Time:") {
		t.Error("HUD should show the timer")
	}
}
