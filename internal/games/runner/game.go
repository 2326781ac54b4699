// Package runner implements an endless runner.
// The player runs automatically and must jump over cacti and duck under
// birds. Distance and collected coins score points.
package runner

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

// Visual characters for rendering
const (
	PlayerBody = '█'
	PlayerHead = '◆'
	CactusChar = '▓'
	BirdChar   = 'v'
	CoinChar   = 'o'
	GroundChar = '═'
	SparkChar  = '·'
)

// Game implements the Endless Runner game logic.
type Game struct {
	core.Lifecycle

	runtime    core.RuntimeConfig
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager

	world     *sim.World
	player    *sim.Body
	spawner   *Spawner
	particles *sim.Particles

	groundY   float64
	grounded  bool
	duckLeft  float64 // Seconds of ducking left from the last Down press
	distance  float64 // Distance not yet converted to points
	travelled float64
	coins     int
	crashed   bool
	legFrame  int
}

// New creates a new Endless Runner game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Endless Runner"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.ID(), runtime.ConfigPath, config.DefaultRunnerConfig)
	if err != nil {
		log.Warn("config not loaded, using defaults", "game", g.ID(), "err", err)
	}
	if preset, err := config.ParsePreset(runtime.Difficulty); err == nil {
		config.ApplyPreset(&cfg.Difficulty, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.ResetLifecycle()
	g.groundY = cfg.World.Height - cfg.Physics.GroundOffset
	g.grounded = true
	g.duckLeft = 0
	g.distance = 0
	g.travelled = 0
	g.coins = 0
	g.crashed = false
	g.legFrame = 0

	// The world extends past the right edge so obstacles can spawn off screen,
	// and its floor is the ground line so the player lands by clamping.
	margin := cfg.Obstacles.MinSpacing + cfg.Obstacles.MaxWidth + birdWidth
	g.world = sim.NewWorld(cfg.World.Width+margin, cfg.World.Height)
	g.world.Bounds = core.NewBox(0, g.groundY-2*cfg.World.Height, cfg.World.Width+margin, 2*cfg.World.Height)
	g.world.Gravity = cfg.Physics.Gravity

	p := cfg.Player
	g.player = sim.NewBox(kindPlayer, core.V(p.X+p.Width/2, g.groundY-p.Height/2), p.Width, p.Height)
	g.player.Gravity = 1
	g.player.Clamp = true
	g.world.Spawn(g.player)

	g.spawner = NewSpawner(runtime.Seed, &g.cfg, g.difficulty, g.groundY)
	if g.particles == nil {
		g.particles = sim.NewParticles(runtime.Seed)
	} else {
		g.particles.Reset(runtime.Seed)
	}
}

// Speed returns the current scroll speed in world units per second.
func (g *Game) Speed() float64 {
	return g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.Score(), g.Ticks())
}

// Jump launches the player if standing on the ground.
func (g *Game) Jump() bool {
	if !g.IsPlaying() || !g.grounded {
		return false
	}
	g.duckLeft = 0
	g.setHeight(g.cfg.Player.Height)
	g.player.Vel.Y = g.cfg.Physics.JumpImpulse
	g.grounded = false
	return true
}

// Duck crouches for DuckTime seconds. In the air it speeds up the fall.
func (g *Game) Duck() {
	if !g.IsPlaying() {
		return
	}
	if !g.grounded {
		g.player.Vel.Y = max(g.player.Vel.Y, g.cfg.Physics.MaxFallSpeed/2)
		return
	}
	g.duckLeft = g.cfg.Player.DuckTime
	g.setHeight(g.cfg.Player.DuckHeight)
}

// Distance returns how far the player has run in world units.
func (g *Game) Distance() float64 {
	return g.travelled
}

// Ducking reports whether the player is crouched.
func (g *Game) Ducking() bool {
	return g.duckLeft > 0
}

// setHeight resizes the player keeping the feet where they are.
func (g *Game) setHeight(h float64) {
	bottom := g.player.Pos.Y + g.player.Size.Y/2
	g.player.Size.Y = h
	g.player.Pos.Y = bottom - h/2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Advance(in) {
		return g.Result(g.State())
	}
	dt := g.runtime.DeltaTime()
	g.legFrame = (g.legFrame + 1) % 10

	if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
		g.Jump()
	}
	if in.Has(core.ActionDown) {
		g.Duck()
	}
	if g.duckLeft > 0 {
		g.duckLeft -= dt
		if g.duckLeft <= 0 {
			g.duckLeft = 0
			g.setHeight(g.cfg.Player.Height)
		}
	}

	speed := g.Speed()
	for _, b := range g.world.Bodies {
		if b != g.player {
			b.Vel.X = -speed
		}
	}
	if g.player.Vel.Y > g.cfg.Physics.MaxFallSpeed {
		g.player.Vel.Y = g.cfg.Physics.MaxFallSpeed
	}

	g.world.Step(dt,
		sim.Rule{A: kindPlayer, B: kindCactus, Hit: g.crash},
		sim.Rule{A: kindPlayer, B: kindBird, Hit: g.crash},
		sim.Rule{A: kindPlayer, B: kindCoin, Hit: g.collect},
	)
	g.particles.Update(dt)

	// The world floor clamps the player onto the ground
	if !g.grounded && g.player.Vel.Y >= 0 && g.player.Bounds().Bottom() >= g.groundY-0.5 {
		g.grounded = true
		g.player.Vel.Y = 0
	}

	if g.crashed {
		g.End("crashed")
		return g.Result(g.State())
	}

	scrolled := speed * dt
	g.travelled += scrolled
	g.distance += scrolled
	if per := g.cfg.Obstacles.DistancePerPts; per > 0 {
		for g.distance >= per {
			g.distance -= per
			g.AddScore(1, "distance")
		}
	}
	g.spawner.Update(g.world, scrolled, speed, g.Score(), g.Ticks())

	return g.Result(g.State())
}

func (g *Game) crash(player, obstacle *sim.Body) {
	g.crashed = true
}

func (g *Game) collect(player, coin *sim.Body) {
	coin.Dead = true
	g.coins++
	g.AddScore(coin.Tag, "coin")
	g.particles.Burst(coin.Pos, 8, 80, 0.4, core.ColorBrightYellow)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	vp := core.NewViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())

	_, groundRow := vp.Point(core.V(0, g.groundY))
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar)

	for _, b := range g.world.Bodies {
		switch b.Kind {
		case kindCactus:
			vp.Fill(dst, b.Bounds(), CactusChar, core.ColorGreen)
		case kindBird:
			r := BirdChar
			if g.legFrame < 5 {
				r = '^'
			}
			vp.Fill(dst, b.Bounds(), r, core.ColorGray)
		case kindCoin:
			vp.Plot(dst, b.Pos, CoinChar, core.ColorBrightYellow)
		}
	}

	g.drawPlayer(dst, vp)
	for _, p := range g.particles.All() {
		vp.Plot(dst, p.Pos, SparkChar, p.Color)
	}

	hud := fmt.Sprintf(" Score: %d  Coins: %d  %.0fm ", g.Score(), g.coins, g.travelled/g.cfg.Obstacles.DistancePerPts)
	dst.DrawText(2, 0, hud)
	if g.difficulty.IsEnabled() {
		spd := fmt.Sprintf(" Spd: %.0f ", g.Speed())
		dst.DrawText(dst.Width()-len(spd)-2, 0, spd)
	}

	core.DrawOverlay(dst, g.State(), g.Title())
}

// drawPlayer renders the runner with a head marker on the top-right cell.
func (g *Game) drawPlayer(dst *core.Screen, vp core.Viewport) {
	r := vp.Rect(g.player.Bounds())
	dst.DrawRect(r, PlayerBody, core.ColorBrightWhite)
	dst.SetColor(r.Right()-1, r.Y, PlayerHead, core.ColorBrightWhite)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.BaseState()
}

// Register the game with the registry
func init() {
	registry.Register("runner", func() registry.Game {
		return New()
	})
}
