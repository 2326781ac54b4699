// Package slingshot implements a projectile aiming game.
// The player sets angle and power, launches a stone under gravity and tries
// to knock down every target before running out of shots.
package slingshot

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

// Visual characters for rendering
const (
	StoneChar  = 'o'
	TargetChar = '▣'
	SlingChar  = 'Y'
	PathChar   = '·'
	GroundChar = '▀'
	SparkChar  = '*'
)

const (
	kindStone sim.Kind = iota + 1
	kindTarget
)

// previewSteps is how many ticks of flight the aiming guide shows.
const previewSteps = 45

// Game implements the Slingshot game logic.
type Game struct {
	core.Lifecycle

	runtime    core.RuntimeConfig
	cfg        config.SlingshotConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	world     *sim.World
	stone     *sim.Body // Projectile in flight, nil while aiming
	particles *sim.Particles

	angle     float64 // Degrees above the horizon
	power     float64 // Launch speed in world units per second
	shotsLeft int
	flight    float64 // Seconds the current stone has been flying
	shotHits  int     // Targets knocked by the current stone
}

// New creates a new Slingshot game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "slingshot"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Slingshot"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.ID(), runtime.ConfigPath, config.DefaultSlingshotConfig)
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
	g.world.Gravity = cfg.Physics.Gravity
	g.stone = nil
	if g.particles == nil {
		g.particles = sim.NewParticles(runtime.Seed)
	} else {
		g.particles.Reset(runtime.Seed)
	}

	g.angle = cfg.Aim.InitialAngle
	g.power = cfg.Aim.InitialPower
	g.shotsLeft = cfg.Targets.Shots
	g.flight = 0
	g.shotHits = 0

	g.placeTargets()
}

// placeTargets scatters non-overlapping targets right of MinX,
// some on the ground and some floating.
func (g *Game) placeTargets() {
	t := g.cfg.Targets
	ground := g.cfg.Physics.GroundY
	size := g.difficulty.Spacing(t.Size, 0, 0)

	// Floating targets stay inside the top of the world
	levels := min(4, 1+int((ground-size)/(size*1.5)))

	var placed []core.Box
	for attempt := 0; len(placed) < t.Count && attempt < t.Count*50; attempt++ {
		x := t.MinX + g.rng.Float64()*(g.cfg.World.Width-size-t.MinX)
		lift := float64(g.rng.Intn(levels)) * size * 1.5
		box := core.NewBox(x, ground-lift-size, size, size)

		free := true
		for _, p := range placed {
			if box.Intersects(p) {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		placed = append(placed, box)
		target := sim.NewBox(kindTarget, box.Center(), size, size)
		target.Tag = len(placed) - 1
		g.world.Spawn(target)
	}
}

// Angle returns the aim angle in degrees.
func (g *Game) Angle() float64 {
	return g.angle
}

// Power returns the launch speed.
func (g *Game) Power() float64 {
	return g.power
}

// ShotsLeft returns how many stones remain.
func (g *Game) ShotsLeft() int {
	return g.shotsLeft
}

// Targets returns how many targets are still standing.
func (g *Game) Targets() int {
	return g.world.Count(kindTarget)
}

// InFlight reports whether a stone is flying.
func (g *Game) InFlight() bool {
	return g.stone != nil
}

// Aim adjusts angle and power by the given number of steps, clamped to range.
func (g *Game) Aim(angleSteps, powerSteps int) {
	a := g.cfg.Aim
	g.angle = core.ClampF(g.angle+float64(angleSteps)*a.AngleStep, a.MinAngle, a.MaxAngle)
	g.power = core.ClampF(g.power+float64(powerSteps)*a.PowerStep, a.MinPower, a.MaxPower)
}

func (g *Game) anchor() core.Vec2 {
	return core.V(g.cfg.Aim.AnchorX, g.cfg.Aim.AnchorY)
}

// launchVelocity converts the current aim into a velocity vector.
func (g *Game) launchVelocity() core.Vec2 {
	rad := g.angle * math.Pi / 180
	return core.V(math.Cos(rad)*g.power, -math.Sin(rad)*g.power)
}

// Launch fires a stone if none is in flight and shots remain.
func (g *Game) Launch() bool {
	if !g.IsPlaying() || g.stone != nil || g.shotsLeft <= 0 {
		return false
	}
	g.shotsLeft--
	g.flight = 0
	g.shotHits = 0

	g.stone = sim.NewCircle(kindStone, g.anchor(), g.cfg.Physics.Radius)
	g.stone.Vel = g.launchVelocity()
	g.stone.Gravity = 1
	g.world.Spawn(g.stone)
	return true
}

// Trajectory predicts up to n positions of a stone launched with the
// current aim, one per tick, stopping at the ground.
func (g *Game) Trajectory(n int) []core.Vec2 {
	dt := g.runtime.DeltaTime()
	pos, vel := g.anchor(), g.launchVelocity()
	points := make([]core.Vec2, 0, n)
	for range n {
		vel.Y += g.cfg.Physics.Gravity * dt
		pos = pos.Add(vel.Scale(dt))
		if pos.Y+g.cfg.Physics.Radius >= g.cfg.Physics.GroundY {
			break
		}
		points = append(points, pos)
	}
	return points
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Advance(in) {
		return g.Result(g.State())
	}
	dt := g.runtime.DeltaTime()

	switch {
	case in.Has(core.ActionUp):
		g.Aim(1, 0)
	case in.Has(core.ActionDown):
		g.Aim(-1, 0)
	}
	switch {
	case in.Has(core.ActionRight):
		g.Aim(0, 1)
	case in.Has(core.ActionLeft):
		g.Aim(0, -1)
	}
	if in.Has(core.ActionJump) || in.Has(core.ActionFire) {
		g.Launch()
	}

	g.world.Step(dt, sim.Rule{A: kindStone, B: kindTarget, Hit: g.knock})
	g.particles.Update(dt)

	resolved := false
	if g.stone != nil {
		g.flight += dt
		resolved = g.updateStone()
	}

	switch {
	case g.Targets() == 0:
		if bonus := g.shotsLeft * g.cfg.Targets.ShotBonus; bonus > 0 {
			g.AddScore(bonus, "shots left")
		}
		g.End("cleared")
	case resolved && g.shotsLeft == 0:
		g.End("out of shots")
	}
	return g.Result(g.State())
}

// updateStone bounces the stone off the ground and reports whether the
// shot is over: at rest, off screen or out of time.
func (g *Game) updateStone() bool {
	s, p := g.stone, g.cfg.Physics

	if s.Pos.Y+s.Radius >= p.GroundY && s.Vel.Y > 0 {
		s.Pos.Y = p.GroundY - s.Radius
		s.Vel.Y = -s.Vel.Y * p.Restitution
		s.Vel.X *= p.Friction
		if s.Vel.Len() < p.RestSpeed {
			return g.dropStone()
		}
	}

	offscreen := s.Pos.X-s.Radius > g.cfg.World.Width || s.Pos.X+s.Radius < 0
	if offscreen || g.flight >= p.MaxFlight {
		return g.dropStone()
	}
	return false
}

func (g *Game) dropStone() bool {
	g.stone.Dead = true
	g.stone = nil
	g.world.Sweep()
	return true
}

// knock topples a target. Each extra target hit by the same stone is worth more.
func (g *Game) knock(stone, target *sim.Body) {
	target.Dead = true
	g.shotHits++
	g.AddScore(g.cfg.Targets.Points*g.shotHits, "target")
	if g.shotHits > 1 {
		g.Emit(core.Event{Kind: core.EventCombo, Value: g.shotHits})
	}
	g.particles.Burst(target.Pos, 12, 160, 0.6, core.PaletteColor(target.Tag))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	vp := core.NewViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())

	_, groundRow := vp.Point(core.V(0, g.cfg.Physics.GroundY))
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar)

	for _, b := range g.world.Bodies {
		if b.Kind == kindTarget && !b.Dead {
			vp.Fill(dst, b.Bounds(), TargetChar, core.PaletteColor(b.Tag))
		}
	}

	if g.stone == nil && g.IsPlaying() {
		for i, p := range g.Trajectory(previewSteps) {
			if i%3 == 2 {
				vp.Plot(dst, p, PathChar, core.ColorGray)
			}
		}
	}
	vp.Plot(dst, g.anchor(), SlingChar, core.ColorOrange)
	if g.stone != nil {
		vp.Plot(dst, g.stone.Pos, StoneChar, core.ColorBrightWhite)
	}
	for _, p := range g.particles.All() {
		vp.Plot(dst, p.Pos, SparkChar, p.Color)
	}

	hud := fmt.Sprintf(" Score: %d  Shots: %d  Targets: %d ", g.Score(), g.shotsLeft, g.Targets())
	dst.DrawText(2, 0, hud)
	aim := fmt.Sprintf(" Angle: %.0f°  Power: %.0f ", g.angle, g.power)
	dst.DrawText(2, 1, aim)

	core.DrawOverlay(dst, g.State(), g.Title())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.BaseState()
}

// Register the game with the registry
func init() {
	registry.Register("slingshot", func() registry.Game {
		return New()
	})
}
