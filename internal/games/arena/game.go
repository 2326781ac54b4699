// Package arena implements a top-down arena shooter.
// Enemies spawn at the edges and chase the player; the player moves in
// eight directions and fires in the direction it last moved.
package arena

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

// Visual characters for rendering
const (
	PlayerChar = '@'
	EnemyChar  = 'X'
	BulletChar = '•'
	SparkChar  = '*'
)

const (
	kindPlayer sim.Kind = iota + 1
	kindEnemy
	kindBullet
)

// Game implements the Arena Shooter game logic.
type Game struct {
	core.Lifecycle

	runtime    core.RuntimeConfig
	cfg        config.ArenaConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	world     *sim.World
	player    *sim.Body
	particles *sim.Particles

	intent     sim.Intent
	facing     core.Vec2
	cooldown   float64 // Seconds until the weapon can fire
	invuln     float64 // Seconds of immunity left
	spawnTimer sim.Timer
	kills      int
}

// New creates a new Arena Shooter game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "arena"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Arena Shooter"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.ID(), runtime.ConfigPath, config.DefaultArenaConfig)
	if err != nil {
		log.Warn("config not loaded, using defaults", "game", g.ID(), "err", err)
	}
	if preset, err := config.ParsePreset(runtime.Difficulty); err == nil {
		config.ApplyPreset(&cfg.Difficulty, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.ResetLifecycle()
	g.world = sim.NewWorld(cfg.World.Width, cfg.World.Height)

	center := core.V(cfg.World.Width/2, cfg.World.Height/2)
	g.player = sim.NewCircle(kindPlayer, center, cfg.Player.Radius)
	g.player.Clamp = true
	g.player.Health = cfg.Player.Health
	g.world.Spawn(g.player)

	if g.particles == nil {
		g.particles = sim.NewParticles(runtime.Seed)
	} else {
		g.particles.Reset(runtime.Seed)
	}

	g.intent = sim.NewIntent(cfg.Player.HoldTime)
	g.facing = core.V(1, 0)
	g.cooldown = 0
	g.invuln = 0
	g.spawnTimer = sim.NewTimer(cfg.Enemies.SpawnInterval)
	g.kills = 0
}

// Move presses a movement direction; it stays active for HoldTime seconds.
func (g *Game) Move(dx, dy float64) {
	g.intent.Press(dx, dy)
}

// Fire shoots a bullet in the facing direction if the weapon is ready.
func (g *Game) Fire() bool {
	if !g.IsPlaying() || g.cooldown > 0 {
		return false
	}
	w := g.cfg.Weapon
	pos := g.player.Pos.Add(g.facing.Scale(g.player.Radius + w.BulletRadius))
	b := sim.NewCircle(kindBullet, pos, w.BulletRadius)
	b.Vel = g.facing.Scale(w.BulletSpeed)
	b.Cull = true
	b.Health = 1
	g.world.Spawn(b)
	g.cooldown = w.Cooldown
	return true
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Advance(in) {
		return g.Result(g.State())
	}
	dt := g.runtime.DeltaTime()

	g.intent.PressFrame(in)
	g.intent.Tick(dt)
	if dir := g.intent.Dir(); dir != (core.Vec2{}) {
		g.facing = dir
		g.player.Vel = dir.Scale(g.cfg.Player.Speed)
	} else {
		g.player.Vel = core.Vec2{}
	}
	if in.Has(core.ActionFire) || in.Has(core.ActionJump) {
		g.Fire()
	}

	g.cooldown = max(0, g.cooldown-dt)
	g.invuln = max(0, g.invuln-dt)

	g.spawnTimer.Interval = g.difficulty.Interval(g.cfg.Enemies.SpawnInterval, g.Score(), g.Ticks())
	for range g.spawnTimer.Tick(dt) {
		g.spawnEnemy()
	}

	g.world.Step(dt,
		sim.Rule{A: kindBullet, B: kindEnemy, Hit: g.bulletHit},
		sim.Rule{A: kindEnemy, B: kindPlayer, Hit: g.enemyHit},
	)
	g.particles.Update(dt)

	if g.player.Health <= 0 {
		g.End("destroyed")
	}
	return g.Result(g.State())
}

// spawnEnemy places an enemy just inside a random edge, chasing the player.
func (g *Game) spawnEnemy() {
	if g.world.Count(kindEnemy) >= g.cfg.Enemies.MaxAlive {
		return
	}
	e := g.cfg.Enemies
	w, h := g.cfg.World.Width, g.cfg.World.Height
	var pos core.Vec2
	switch g.rng.Intn(4) {
	case 0:
		pos = core.V(g.rng.Float64()*w, e.Radius)
	case 1:
		pos = core.V(g.rng.Float64()*w, h-e.Radius)
	case 2:
		pos = core.V(e.Radius, g.rng.Float64()*h)
	default:
		pos = core.V(w-e.Radius, g.rng.Float64()*h)
	}

	enemy := sim.NewCircle(kindEnemy, pos, e.Radius)
	enemy.Health = e.Health
	enemy.Chase = g.player
	enemy.ChaseSpeed = g.difficulty.Speed(e.Speed, g.Score(), g.Ticks())
	g.world.Spawn(enemy)
}

func (g *Game) bulletHit(bullet, enemy *sim.Body) {
	if bullet.Dead {
		return
	}
	bullet.Dead = true
	enemy.Damage(g.cfg.Weapon.Damage)
	if enemy.Dead {
		g.kills++
		g.AddScore(g.cfg.Enemies.Points, "kill")
		g.particles.Burst(enemy.Pos, 10, 150, 0.5, core.ColorBrightRed)
	}
}

func (g *Game) enemyHit(enemy, player *sim.Body) {
	// Enemies explode on contact
	enemy.Dead = true
	g.particles.Burst(enemy.Pos, 6, 100, 0.3, core.ColorOrange)
	if g.invuln > 0 {
		return
	}
	if n := player.Damage(g.cfg.Enemies.Damage); n > 0 {
		g.Emit(core.Event{Kind: core.EventDamaged, Value: n})
		g.invuln = g.cfg.Player.Invulnerable
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	vp := core.NewViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())

	for _, p := range g.particles.All() {
		vp.Plot(dst, p.Pos, SparkChar, p.Color)
	}
	for _, b := range g.world.Bodies {
		switch b.Kind {
		case kindEnemy:
			vp.Plot(dst, b.Pos, EnemyChar, core.ColorBrightRed)
		case kindBullet:
			vp.Plot(dst, b.Pos, BulletChar, core.ColorBrightYellow)
		}
	}

	// Blink while invulnerable
	if g.invuln <= 0 || g.Ticks()%8 < 4 {
		vp.Plot(dst, g.player.Pos, PlayerChar, core.ColorBrightCyan)
	}

	hud := fmt.Sprintf(" Score: %d  Kills: %d ", g.Score(), g.kills)
	dst.DrawText(2, 0, hud)
	hp := fmt.Sprintf(" HP: %d/%d ", max(0, g.player.Health), g.cfg.Player.Health)
	dst.DrawTextColor(dst.Width()-len(hp)-2, 0, hp, core.ColorBrightGreen)

	core.DrawOverlay(dst, g.State(), g.Title())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.BaseState()
	s.Health = g.player.Health
	return s
}

// Register the game with the registry
func init() {
	registry.Register("arena", func() registry.Game {
		return New()
	})
}
