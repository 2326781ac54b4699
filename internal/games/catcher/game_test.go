package catcher

import (
	"strings"
	"testing"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/sim"
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

// quietGame disables random spawns so tests control every item.
func quietGame(t *testing.T) *Game {
	g := newTestGame(t)
	g.cfg.Items.SpawnInterval = 0
	return g
}

// dropAbove places an item just above the basket at horizontal offset dx.
func dropAbove(g *Game, kind sim.Kind, dx float64) *sim.Body {
	item := g.drop(kind, g.basket.Pos.X+dx)
	item.Pos.Y = g.basket.Bounds().Y - 15
	return item
}

func stepUntil(g *Game, n int, done func() bool) []core.Event {
	var events []core.Event
	for range n {
		res := g.Step(core.NewInputFrame())
		events = append(events, res.Events...)
		if done() {
			break
		}
	}
	return events
}

func TestBasketMovesAndClamps(t *testing.T) {
	g := quietGame(t)
	start := g.basket.Pos

	g.Step(core.Frame(core.ActionRight))
	for range 30 {
		g.Step(core.NewInputFrame())
	}
	moved := g.basket.Pos.X
	if moved <= start.X {
		t.Fatal("basket should move right")
	}
	g.Step(core.NewInputFrame())
	if g.basket.Pos.X != moved {
		t.Error("basket should stop once the press lapses")
	}
	if g.basket.Pos.Y != start.Y {
		t.Error("basket must stay on its row")
	}

	for range 200 {
		g.Step(core.Frame(core.ActionLeft))
	}
	if left := g.basket.Bounds().X; left != 0 {
		t.Errorf("basket left edge = %g, expected clamp at 0", left)
	}
}

func TestCatchFruitScores(t *testing.T) {
	g := quietGame(t)
	fruit := dropAbove(g, kindFruit, 0)

	events := stepUntil(g, 30, func() bool { return fruit.Dead })

	if !fruit.Dead || g.Caught() != 1 {
		t.Fatal("fruit over the basket should be caught")
	}
	if g.Score() != g.cfg.Items.Points {
		t.Errorf("score = %d, expected %d", g.Score(), g.cfg.Items.Points)
	}
	if _, ok := core.FindEvent(events, core.EventDamaged); ok {
		t.Error("catching fruit must not cost a life")
	}
}

func TestBombCostsLife(t *testing.T) {
	g := quietGame(t)
	bomb := dropAbove(g, kindBomb, 0)

	events := stepUntil(g, 30, func() bool { return bomb.Dead })

	if g.State().Health != g.cfg.Basket.Health-1 {
		t.Errorf("health = %d, expected %d", g.State().Health, g.cfg.Basket.Health-1)
	}
	e, ok := core.FindEvent(events, core.EventDamaged)
	if !ok || e.Reason != "bomb" {
		t.Errorf("expected bomb damage event, got %+v", events)
	}
	if g.Score() != 0 {
		t.Error("bombs must not score")
	}
}

func TestMissedFruitCostsLife(t *testing.T) {
	g := quietGame(t)
	r := g.cfg.Items.Radius
	fruit := g.drop(kindFruit, r)
	fruit.Pos.Y = g.cfg.World.Height - r

	events := stepUntil(g, 60, func() bool { return fruit.Dead })

	if !fruit.Dead {
		t.Fatal("fruit should leave the world")
	}
	if g.dropped != 1 || g.State().Health != g.cfg.Basket.Health-1 {
		t.Errorf("dropped=%d health=%d, expected a lost life", g.dropped, g.State().Health)
	}
	e, ok := core.FindEvent(events, core.EventDamaged)
	if !ok || e.Reason != "missed" {
		t.Errorf("expected missed damage event, got %+v", events)
	}
}

func TestMissedBombIsHarmless(t *testing.T) {
	g := quietGame(t)
	r := g.cfg.Items.Radius
	bomb := g.drop(kindBomb, r)
	bomb.Pos.Y = g.cfg.World.Height - r

	stepUntil(g, 60, func() bool { return bomb.Dead })

	if g.State().Health != g.cfg.Basket.Health {
		t.Error("a bomb falling past the basket should not cost a life")
	}
}

func TestLosingAllLivesEndsGame(t *testing.T) {
	g := quietGame(t)
	g.basket.Health = 1
	dropAbove(g, kindBomb, 0)

	var res core.StepResult
	for range 30 {
		res = g.Step(core.NewInputFrame())
		if res.State.GameOver() {
			break
		}
	}

	if !res.State.GameOver() {
		t.Fatal("last life lost should end the game")
	}
	if res.State.Health != 0 {
		t.Errorf("health = %d, expected 0", res.State.Health)
	}
	e, _ := core.FindEvent(res.Events, core.EventGameOver)
	if e.Reason != "out of lives" {
		t.Errorf("reason = %q, expected out of lives", e.Reason)
	}
}

func TestItemsSpawnInsideWorld(t *testing.T) {
	g := newTestGame(t)
	seen := 0
	for range 120 {
		g.Step(core.NewInputFrame())
		for _, b := range g.world.Bodies {
			if b.Kind == kindBasket {
				continue
			}
			seen++
			if b.Pos.X < b.Radius || b.Pos.X > g.cfg.World.Width-b.Radius {
				t.Fatalf("item spawned outside the world: x=%g", b.Pos.X)
			}
			if b.Vel.Y <= 0 {
				t.Fatal("items should fall")
			}
		}
	}
	if seen == 0 {
		t.Error("items should spawn over two seconds")
	}
}

func TestDeterminism(t *testing.T) {
	play := func() (int, int, float64) {
		g := newTestGame(t)
		for i := range 900 {
			in := core.NewInputFrame()
			switch i % 60 {
			case 0:
				in.Set(core.ActionLeft)
			case 30:
				in.Set(core.ActionRight)
			}
			g.Step(in)
		}
		return g.Score(), g.State().Health, g.basket.Pos.X
	}

	s1, h1, x1 := play()
	s2, h2, x2 := play()
	if s1 != s2 || h1 != h2 || x1 != x2 {
		t.Errorf("same inputs diverged: (%d %d %g) vs (%d %d %g)", s1, h1, x1, s2, h2, x2)
	}
}

func TestRender(t *testing.T) {
	g := quietGame(t)
	dropAbove(g, kindBomb, 0).Pos.Y = 100
	screen := core.NewScreen(40, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, BasketChar) || !strings.ContainsRune(out, BombChar) {
		t.Error("basket and bomb should be drawn")
	}
	if strings.Count(out, string(HeartChar)) != g.cfg.Basket.Health {
		t.Error("HUD should show one heart per life")
	}
}
