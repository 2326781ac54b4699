package stack

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	g.Reset(cfg)
	return g
}

func startGame(t *testing.T, g *Game) {
	t.Helper()
	if !g.Start() {
		t.Fatal("Start() should succeed from Idle")
	}
	g.Step(core.NewInputFrame()) // drain the start event
}

func TestNewGameLayout(t *testing.T) {
	g := newTestGame(t)

	if g.State().Phase != core.PhaseIdle {
		t.Fatalf("new game should be idle, got %v", g.State().Phase)
	}
	if g.Height() != 1 {
		t.Fatalf("expected one base block, got %d", g.Height())
	}

	base := g.Top()
	if base.X != (g.cfg.World.Width-base.W)/2 {
		t.Errorf("base block not centered: x=%g w=%g", base.X, base.W)
	}
	if base.Y+base.H != g.cfg.World.Height {
		t.Errorf("base block should sit on the bottom, y=%g", base.Y)
	}

	m := g.Moving()
	if m.Y != base.Y-g.cfg.Block.Height {
		t.Errorf("moving block should be one row above, y=%g", m.Y)
	}
	if m.W != base.W {
		t.Errorf("moving block width = %g, expected %g", m.W, base.W)
	}
}

func TestIdleUntilStart(t *testing.T) {
	g := newTestGame(t)
	before := g.Moving()

	for range 30 {
		res := g.Step(core.Frame(core.ActionJump))
		if res.State.Phase != core.PhaseIdle {
			t.Fatal("game must not leave Idle without Start")
		}
	}
	if g.Moving() != before || g.Height() != 1 {
		t.Error("nothing should move or be placed while idle")
	}
	if g.PlaceBlock() != PlaceNone {
		t.Error("PlaceBlock while idle should do nothing")
	}

	if !g.Start() {
		t.Fatal("Start() should succeed from Idle")
	}
	if g.Start() {
		t.Error("Start() should fail once playing")
	}
	res := g.Step(core.NewInputFrame())
	if _, ok := core.FindEvent(res.Events, core.EventStarted); !ok {
		t.Error("expected EventStarted after Start")
	}
}

func TestPerfectPlacement(t *testing.T) {
	g := newTestGame(t)
	startGame(t, g)

	top := g.Top()
	g.moving.X = top.X + 3 // within the 5px threshold

	res := g.Step(core.Frame(core.ActionJump))

	if g.Height() != 2 {
		t.Fatalf("expected 2 blocks, got %d", g.Height())
	}
	placed := g.Top()
	if placed.X != top.X || placed.W != top.W {
		t.Errorf("perfect placement should snap: got x=%g w=%g, want x=%g w=%g", placed.X, placed.W, top.X, top.W)
	}
	if g.Combo() != 1 {
		t.Errorf("combo = %d, expected 1", g.Combo())
	}
	if res.State.Score != 1+g.cfg.Scoring.PerfectBonus {
		t.Errorf("score = %d, expected %d", res.State.Score, 1+g.cfg.Scoring.PerfectBonus)
	}
	if e, ok := core.FindEvent(res.Events, core.EventCombo); !ok || e.Value != 1 {
		t.Errorf("expected combo event with value 1, got %+v", res.Events)
	}

	// A new moving block spawns on the next row from the other side
	m := g.Moving()
	if m.Y != placed.Y-g.cfg.Block.Height {
		t.Errorf("new block y = %g, expected %g", m.Y, placed.Y-g.cfg.Block.Height)
	}
	if g.dir != -1 {
		t.Errorf("second moving block should enter from the right, dir=%g", g.dir)
	}
}

func TestTrimmedPlacement(t *testing.T) {
	tests := []struct {
		name    string
		offset  float64
		wantX   float64
		wantW   float64
		cutFrom float64
	}{
		{"overhang right", 50, 100 + 50, 150, 300},
		{"overhang left", -30, 100, 170, 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t)
			startGame(t, g)

			top := g.Top() // x=100 w=200 with defaults
			g.moving.X = top.X + tc.offset

			if p := g.PlaceBlock(); p != PlaceTrimmed {
				t.Fatalf("placement = %v, expected trimmed", p)
			}
			placed := g.Top()
			if placed.X != tc.wantX || placed.W != tc.wantW {
				t.Errorf("kept block x=%g w=%g, expected x=%g w=%g", placed.X, placed.W, tc.wantX, tc.wantW)
			}
			if g.Combo() != 0 {
				t.Error("trimmed placement should reset combo")
			}
			if g.debris.Count(kindDebris) != 1 {
				t.Fatalf("expected one debris piece, got %d", g.debris.Count(kindDebris))
			}
			cut := g.debris.Find(kindDebris).Bounds()
			if cut.X != tc.cutFrom {
				t.Errorf("debris x = %g, expected %g", cut.X, tc.cutFrom)
			}
			if g.Moving().W != tc.wantW {
				t.Errorf("next block should inherit width %g, got %g", tc.wantW, g.Moving().W)
			}
		})
	}
}

func TestZeroOverlapEndsGame(t *testing.T) {
	g := newTestGame(t)
	startGame(t, g)

	// One perfect placement first so there is a score to report
	g.moving.X = g.Top().X
	g.Step(core.Frame(core.ActionJump))
	score := g.Score()

	g.moving.X = g.Top().Right() // edges touch, zero overlap
	res := g.Step(core.Frame(core.ActionJump))

	if !res.State.GameOver() {
		t.Fatal("zero overlap should end the game")
	}
	e, ok := core.FindEvent(res.Events, core.EventGameOver)
	if !ok {
		t.Fatal("expected EventGameOver")
	}
	if e.Value != score || e.Reason != "missed" {
		t.Errorf("game over event = %+v, expected score %d", e, score)
	}
	if res.State.Score != score {
		t.Error("a miss must not change the score")
	}

	// Terminal: nothing more happens
	if g.PlaceBlock() != PlaceNone || g.Start() {
		t.Error("no transitions out of GameOver except Reset")
	}
}

func TestComboGrowsBlock(t *testing.T) {
	g := newTestGame(t)
	startGame(t, g)

	g.moving.X = g.Top().X + 40
	g.PlaceBlock() // trimmed to 160
	width := g.Top().W

	for i := 1; i <= g.cfg.Scoring.ComboGrowEvery; i++ {
		g.moving.X = g.Top().X
		if p := g.PlaceBlock(); p != PlacePerfect {
			t.Fatalf("placement %d = %v, expected perfect", i, p)
		}
	}

	want := width + g.cfg.Scoring.GrowAmount
	if got := g.Top().W; got != want {
		t.Errorf("after %d perfects width = %g, expected %g", g.cfg.Scoring.ComboGrowEvery, got, want)
	}
}

func TestGrowCappedAtBaseWidth(t *testing.T) {
	g := newTestGame(t)
	b := Block{X: 0, W: g.cfg.Block.BaseWidth - 2, H: 20}
	grown := g.grow(b)
	if grown.W != g.cfg.Block.BaseWidth {
		t.Errorf("width = %g, expected cap %g", grown.W, g.cfg.Block.BaseWidth)
	}
	if grown.X < 0 {
		t.Errorf("grown block left the world: x=%g", grown.X)
	}
}

func TestMovingBlockBounces(t *testing.T) {
	g := newTestGame(t)
	startGame(t, g)

	maxX := g.cfg.World.Width - g.Moving().W
	for range 100 {
		g.Step(core.NewInputFrame())
		if x := g.Moving().X; x < 0 || x > maxX {
			t.Fatalf("moving block left the world: x=%g", x)
		}
	}
	if g.dir != -1 {
		t.Error("block should have bounced off the right edge")
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newTestGame(t)
	startGame(t, g)

	g.Step(core.Frame(core.ActionPause))
	x := g.Moving().X
	for range 10 {
		g.Step(core.Frame(core.ActionJump))
	}
	if g.Moving().X != x || g.Height() != 1 {
		t.Error("paused game should not move or place blocks")
	}
	if !g.State().Paused {
		t.Error("state should report paused")
	}
}

func TestDeterminism(t *testing.T) {
	play := func() (int, float64) {
		g := newTestGame(t)
		startGame(t, g)
		for i := range 400 {
			in := core.NewInputFrame()
			if i%37 == 0 {
				in.Set(core.ActionJump)
			}
			g.Step(in)
		}
		return g.Score(), g.Moving().X
	}

	s1, x1 := play()
	s2, x2 := play()
	if s1 != s2 || x1 != x2 {
		t.Errorf("same inputs diverged: (%d, %g) vs (%d, %g)", s1, x1, s2, x2)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(40, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Block Stack") {
		t.Error("idle screen should show the title")
	}

	startGame(t, g)
	g.Render(screen)
	if !strings.ContainsRune(screen.String(), BlockChar) {
		t.Error("tower should be drawn")
	}
}

func TestResetWarnsOnBadExplicitConfig(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })

	dir := t.TempDir()
	wide := filepath.Join(dir, "wide.yaml")
	os.WriteFile(wide, []byte("world:\n  width: 100\nblock:\n  base_width: 500\n"), 0o600)

	for _, path := range []string{wide, filepath.Join(dir, "missing.yaml")} {
		buf.Reset()
		cfg := core.DefaultConfig()
		cfg.Seed = 1
		cfg.ConfigPath = path

		g := New()
		g.Reset(cfg)

		if !strings.Contains(buf.String(), "config not loaded") {
			t.Errorf("%s: expected a warning, got %q", filepath.Base(path), buf.String())
		}
		if g.cfg.Block.BaseWidth != config.DefaultStackConfig().Block.BaseWidth {
			t.Errorf("%s: base width = %g, expected default", filepath.Base(path), g.cfg.Block.BaseWidth)
		}
	}
}
