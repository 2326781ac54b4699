package slingshot

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/minigames/internal/config"
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

// setTargets replaces the random layout with targets at the given centers.
func setTargets(g *Game, centers ...core.Vec2) {
	for _, b := range g.world.Each(kindTarget) {
		b.Dead = true
	}
	g.world.Sweep()
	size := g.cfg.Targets.Size
	for i, c := range centers {
		target := sim.NewBox(kindTarget, c, size, size)
		target.Tag = i
		g.world.Spawn(target)
	}
}

// farTarget is out of reach of any low shot.
func farTarget(g *Game) core.Vec2 {
	return core.V(g.cfg.World.Width-20, 20)
}

func TestTargetsPlaced(t *testing.T) {
	g := newTestGame(t)

	targets := g.world.Each(kindTarget)
	if len(targets) != g.cfg.Targets.Count {
		t.Fatalf("targets = %d, expected %d", len(targets), g.cfg.Targets.Count)
	}
	for i, a := range targets {
		box := a.Bounds()
		if box.X < g.cfg.Targets.MinX || box.Right() > g.cfg.World.Width {
			t.Errorf("target %d outside the target zone: %+v", i, box)
		}
		if box.Bottom() > g.cfg.Physics.GroundY {
			t.Errorf("target %d below ground: %+v", i, box)
		}
		for _, b := range targets[i+1:] {
			if a.Overlaps(b) {
				t.Errorf("targets overlap: %+v and %+v", box, b.Bounds())
			}
		}
	}
}

func TestAimClampsToRange(t *testing.T) {
	g := newTestGame(t)
	a := g.cfg.Aim

	g.Step(core.Frame(core.ActionUp))
	if g.Angle() != a.InitialAngle+a.AngleStep {
		t.Errorf("angle = %g, expected %g", g.Angle(), a.InitialAngle+a.AngleStep)
	}
	g.Step(core.Frame(core.ActionLeft))
	if g.Power() != a.InitialPower-a.PowerStep {
		t.Errorf("power = %g, expected %g", g.Power(), a.InitialPower-a.PowerStep)
	}

	g.Aim(1000, 1000)
	if g.Angle() != a.MaxAngle || g.Power() != a.MaxPower {
		t.Errorf("aim = (%g, %g), expected max (%g, %g)", g.Angle(), g.Power(), a.MaxAngle, a.MaxPower)
	}
	g.Aim(-1000, -1000)
	if g.Angle() != a.MinAngle || g.Power() != a.MinPower {
		t.Errorf("aim = (%g, %g), expected min (%g, %g)", g.Angle(), g.Power(), a.MinAngle, a.MinPower)
	}
}

func TestFlightFollowsTrajectory(t *testing.T) {
	g := newTestGame(t)
	setTargets(g, farTarget(g))

	path := g.Trajectory(30)
	if len(path) != 30 {
		t.Fatalf("preview should not reach the ground in 30 ticks, got %d points", len(path))
	}

	g.Step(core.Frame(core.ActionJump))
	if !g.InFlight() || g.ShotsLeft() != g.cfg.Targets.Shots-1 {
		t.Fatal("launch should put a stone in flight and use a shot")
	}
	if g.Launch() {
		t.Error("cannot launch while a stone is flying")
	}

	for i, want := range path {
		if i > 0 {
			g.Step(core.NewInputFrame())
		}
		if g.stone.Pos != want {
			t.Fatalf("tick %d: stone at %v, preview said %v", i, g.stone.Pos, want)
		}
	}
}

func TestKnockingTargetsScores(t *testing.T) {
	g := newTestGame(t)
	path := g.Trajectory(40)
	setTargets(g, path[15], path[30], farTarget(g))

	g.Launch()
	var events []core.Event
	for range 40 {
		res := g.Step(core.NewInputFrame())
		events = append(events, res.Events...)
	}

	if g.Targets() != 1 {
		t.Fatalf("expected two targets knocked, %d left", g.Targets())
	}
	want := g.cfg.Targets.Points + 2*g.cfg.Targets.Points
	if g.Score() != want {
		t.Errorf("score = %d, expected %d", g.Score(), want)
	}
	if e, ok := core.FindEvent(events, core.EventCombo); !ok || e.Value != 2 {
		t.Errorf("second target should report a combo, got %+v", events)
	}
}

func TestStoneBouncesToRest(t *testing.T) {
	g := newTestGame(t)
	setTargets(g, farTarget(g))
	g.Aim(-1000, -1000)

	g.Launch()
	ground := g.cfg.Physics.GroundY
	bounced := false
	for i := 0; g.InFlight(); i++ {
		if i > 600 {
			t.Fatal("stone never came to rest")
		}
		vy := g.stone.Vel.Y
		g.Step(core.NewInputFrame())
		if !g.InFlight() {
			break
		}
		if g.stone.Pos.Y+g.stone.Radius > ground {
			t.Fatalf("stone sank below the ground: y=%g", g.stone.Pos.Y)
		}
		if vy > 0 && g.stone.Vel.Y < 0 {
			bounced = true
		}
	}

	if !bounced {
		t.Error("stone should bounce off the ground")
	}
	if g.State().GameOver() {
		t.Error("game should continue while shots remain")
	}
	if !g.Launch() {
		t.Error("next shot should be available once the stone rests")
	}
}

func TestStoneLeavesScreen(t *testing.T) {
	g := newTestGame(t)
	setTargets(g, farTarget(g))
	g.Aim(-7, 1000) // 31 degrees at full power clears the right edge

	g.Launch()
	for range 120 {
		g.Step(core.NewInputFrame())
	}
	if g.InFlight() {
		t.Error("stone should be dropped once it leaves the screen")
	}
	if g.world.Count(kindStone) != 0 {
		t.Error("dropped stone should be removed from the world")
	}
}

func TestOutOfShotsEndsGame(t *testing.T) {
	g := newTestGame(t)
	setTargets(g, farTarget(g))
	g.Aim(-1000, -1000)
	g.shotsLeft = 1

	g.Launch()
	var res core.StepResult
	for range 600 {
		res = g.Step(core.NewInputFrame())
		if res.State.GameOver() {
			break
		}
	}

	if !res.State.GameOver() {
		t.Fatal("last shot resolving should end the game")
	}
	e, ok := core.FindEvent(res.Events, core.EventGameOver)
	if !ok || e.Reason != "out of shots" {
		t.Errorf("expected out of shots, got %+v", res.Events)
	}
}

func TestClearingAwardsShotBonus(t *testing.T) {
	g := newTestGame(t)
	path := g.Trajectory(20)
	setTargets(g, path[10])

	g.Launch()
	var res core.StepResult
	for range 20 {
		res = g.Step(core.NewInputFrame())
		if res.State.GameOver() {
			break
		}
	}

	if !res.State.GameOver() {
		t.Fatal("clearing every target should end the game")
	}
	shots := g.cfg.Targets.Shots - 1
	want := g.cfg.Targets.Points + shots*g.cfg.Targets.ShotBonus
	if res.State.Score != want {
		t.Errorf("score = %d, expected %d", res.State.Score, want)
	}
	e, _ := core.FindEvent(res.Events, core.EventGameOver)
	if e.Reason != "cleared" {
		t.Errorf("reason = %q, expected cleared", e.Reason)
	}
}

func TestLayoutDeterminism(t *testing.T) {
	a, b := newTestGame(t), newTestGame(t)
	ta, tb := a.world.Each(kindTarget), b.world.Each(kindTarget)
	for i := range ta {
		if ta[i].Pos != tb[i].Pos {
			t.Fatalf("target %d differs: %v vs %v", i, ta[i].Pos, tb[i].Pos)
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, PathChar) {
		t.Error("aiming guide should be drawn")
	}
	if !strings.ContainsRune(out, TargetChar) {
		t.Error("targets should be drawn")
	}
	if !strings.Contains(out, "Shots: 6") {
		t.Error("HUD should show shots left")
	}
}

func TestTargetLayoutMustFit(t *testing.T) {
	cfg := config.DefaultSlingshotConfig()
	cfg.Targets.Size = cfg.World.Width
	if err := cfg.Validate(); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("targets wider than the zone should be invalid, got %v", err)
	}

	cfg = config.DefaultSlingshotConfig()
	cfg.Targets.Size = cfg.Physics.GroundY + 1
	cfg.Targets.MinX = 0
	if err := cfg.Validate(); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("targets taller than the ground height should be invalid, got %v", err)
	}
}

func TestLargeTargetsStayInWorld(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := New()
		rc := core.DefaultConfig()
		rc.Seed = seed
		g.Reset(rc)
		g.cfg.Targets.Size = 150
		g.cfg.Targets.Count = 3
		for _, b := range g.world.Each(kindTarget) {
			b.Dead = true
		}
		g.world.Sweep()
		g.placeTargets()

		if g.Targets() == 0 {
			t.Fatalf("seed %d: no targets placed", seed)
		}
		for _, b := range g.world.Each(kindTarget) {
			box := b.Bounds()
			if box.Y < 0 || box.Bottom() > g.cfg.Physics.GroundY || box.Right() > g.cfg.World.Width {
				t.Errorf("seed %d: target outside the world: %+v", seed, box)
			}
		}
	}
}
