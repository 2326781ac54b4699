package arena

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

// addEnemy places a stationary enemy at an offset from the player.
func addEnemy(g *Game, offset core.Vec2, health int) *sim.Body {
	e := sim.NewCircle(kindEnemy, g.player.Pos.Add(offset), g.cfg.Enemies.Radius)
	e.Health = health
	return g.world.Spawn(e)
}

func TestHeldIntentLapses(t *testing.T) {
	g := newTestGame(t)
	start := g.player.Pos

	g.Step(core.Frame(core.ActionRight))
	if g.player.Pos.X <= start.X {
		t.Fatal("player should move right")
	}

	// The press keeps steering for a while, then lapses
	for range 20 {
		g.Step(core.NewInputFrame())
	}
	moved := g.player.Pos
	if moved.X-start.X < g.cfg.Player.Speed*g.cfg.Player.HoldTime*0.8 {
		t.Errorf("press should steer for about HoldTime, moved %g", moved.X-start.X)
	}
	for range 5 {
		g.Step(core.NewInputFrame())
	}
	if g.player.Pos != moved {
		t.Error("player should stop once the press lapses")
	}
	if g.player.Pos.Y != start.Y {
		t.Error("horizontal press must not move vertically")
	}
}

func TestDiagonalMovementIsNormalized(t *testing.T) {
	g := newTestGame(t)
	start := g.player.Pos

	g.Step(core.Frame(core.ActionUp, core.ActionLeft))

	d := g.player.Pos.Sub(start)
	if d.X >= 0 || d.Y >= 0 {
		t.Fatalf("expected up-left movement, got %v", d)
	}
	want := g.cfg.Player.Speed * g.runtime.DeltaTime()
	if diff := d.Len() - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("diagonal step length %g, expected %g", d.Len(), want)
	}
}

func TestPlayerStaysInArena(t *testing.T) {
	g := newTestGame(t)
	for range 300 {
		g.Step(core.Frame(core.ActionLeft))
	}
	if got := g.player.Pos.X; got != g.player.Radius {
		t.Errorf("player x = %g, expected clamp at %g", got, g.player.Radius)
	}
}

func TestFireUsesFacingAndCooldown(t *testing.T) {
	g := newTestGame(t)

	g.Step(core.Frame(core.ActionLeft))
	if !g.Fire() {
		t.Fatal("first shot should fire")
	}
	if g.Fire() {
		t.Error("second shot within cooldown should not fire")
	}

	b := g.world.Find(kindBullet)
	if b == nil {
		t.Fatal("expected a bullet")
	}
	if b.Vel.X >= 0 || b.Vel.Y != 0 {
		t.Errorf("bullet should fly left, vel %v", b.Vel)
	}
	if !b.Cull {
		t.Error("bullets should be culled off screen")
	}

	for range 15 {
		g.Step(core.NewInputFrame())
	}
	if !g.Fire() {
		t.Error("weapon should be ready after the cooldown")
	}
}

func TestBulletsCulledOffscreen(t *testing.T) {
	g := newTestGame(t)
	g.Fire()
	for range 120 {
		g.Step(core.NewInputFrame())
	}
	if g.world.Count(kindBullet) != 0 {
		t.Error("bullet should be removed after leaving the arena")
	}
}

func TestBulletKillsEnemy(t *testing.T) {
	g := newTestGame(t)
	enemy := addEnemy(g, core.V(60, 0), 1)

	g.Step(core.Frame(core.ActionFire))
	for range 10 {
		g.Step(core.NewInputFrame())
	}

	if !enemy.Dead {
		t.Fatal("enemy should be destroyed")
	}
	if g.Score() != g.cfg.Enemies.Points || g.kills != 1 {
		t.Errorf("score = %d kills = %d, expected %d and 1", g.Score(), g.kills, g.cfg.Enemies.Points)
	}
	if g.particles.Len() == 0 {
		t.Error("kill should spawn particles")
	}
}

func TestEnemyNeedsEnoughHits(t *testing.T) {
	g := newTestGame(t)
	enemy := addEnemy(g, core.V(60, 0), 2)

	g.Fire()
	for range 10 {
		g.Step(core.NewInputFrame())
	}
	if enemy.Dead || enemy.Health != 1 {
		t.Fatalf("one bullet should leave the enemy at 1 hp, got %d", enemy.Health)
	}
	if g.Score() != 0 {
		t.Error("wounding an enemy should not score")
	}
}

func TestContactDamageAndInvulnerability(t *testing.T) {
	g := newTestGame(t)
	addEnemy(g, core.V(5, 0), 1)
	addEnemy(g, core.V(-5, 0), 1)

	res := g.Step(core.NewInputFrame())

	if res.State.Health != g.cfg.Player.Health-1 {
		t.Errorf("health = %d, expected one hit only", res.State.Health)
	}
	e, ok := core.FindEvent(res.Events, core.EventDamaged)
	if !ok || e.Value != g.cfg.Enemies.Damage {
		t.Errorf("expected a damaged event, got %+v", res.Events)
	}
	if g.world.Count(kindEnemy) != 0 {
		t.Error("enemies should explode on contact")
	}

	// Still invulnerable on the next touch
	addEnemy(g, core.V(0, 5), 1)
	g.Step(core.NewInputFrame())
	if g.player.Health != g.cfg.Player.Health-1 {
		t.Error("invulnerability window should block damage")
	}
}

func TestHealthZeroEndsGame(t *testing.T) {
	g := newTestGame(t)
	g.player.Health = 1
	addEnemy(g, core.V(0, 0), 1)

	res := g.Step(core.NewInputFrame())

	if !res.State.GameOver() {
		t.Fatal("losing the last hit point should end the game")
	}
	if res.State.Health != 0 {
		t.Errorf("health = %d, expected 0", res.State.Health)
	}
	e, ok := core.FindEvent(res.Events, core.EventGameOver)
	if !ok || e.Reason != "destroyed" {
		t.Errorf("expected game over event, got %+v", res.Events)
	}
}

func TestSpawnRespectsMaxAlive(t *testing.T) {
	g := newTestGame(t)
	for range g.cfg.Enemies.MaxAlive + 5 {
		g.spawnEnemy()
	}
	if n := g.world.Count(kindEnemy); n != g.cfg.Enemies.MaxAlive {
		t.Errorf("enemies = %d, expected cap %d", n, g.cfg.Enemies.MaxAlive)
	}
	for _, e := range g.world.Each(kindEnemy) {
		if !g.world.Bounds.ContainsPoint(e.Pos) {
			t.Errorf("enemy spawned outside the arena at %v", e.Pos)
		}
		if e.Chase != g.player {
			t.Error("enemies should chase the player")
		}
	}
}

func TestEnemiesSpawnAndChase(t *testing.T) {
	g := newTestGame(t)

	ticks := int(g.cfg.Enemies.SpawnInterval*60) + 1
	for range ticks {
		g.Step(core.NewInputFrame())
	}
	enemy := g.world.Find(kindEnemy)
	if enemy == nil {
		t.Fatal("an enemy should spawn after one interval")
	}

	before := enemy.Pos.Dist(g.player.Pos)
	g.Step(core.NewInputFrame())
	if after := enemy.Pos.Dist(g.player.Pos); after >= before {
		t.Errorf("enemy should close in: %g -> %g", before, after)
	}
}

func TestDeterminism(t *testing.T) {
	play := func() (int, core.Vec2, int) {
		g := newTestGame(t)
		for i := range 600 {
			in := core.NewInputFrame()
			switch i % 40 {
			case 0:
				in.Set(core.ActionRight)
			case 10:
				in.Set(core.ActionDown)
			case 20:
				in.Set(core.ActionLeft)
			case 30:
				in.Set(core.ActionUp)
			}
			if i%7 == 0 {
				in.Set(core.ActionFire)
			}
			g.Step(in)
		}
		return g.Score(), g.player.Pos, g.world.Count(kindEnemy)
	}

	s1, p1, n1 := play()
	s2, p2, n2 := play()
	if s1 != s2 || p1 != p2 || n1 != n2 {
		t.Errorf("same inputs diverged: (%d %v %d) vs (%d %v %d)", s1, p1, n1, s2, p2, n2)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	addEnemy(g, core.V(100, 0), 1)
	screen := core.NewScreen(60, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, PlayerChar) || !strings.ContainsRune(out, EnemyChar) {
		t.Error("player and enemy should be drawn")
	}
	if !strings.Contains(out, "HP: 5/5") {
		t.Error("HUD should show health")
	}
}
