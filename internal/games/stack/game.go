// Package stack implements Block Stack.
// A block slides back and forth above the tower; dropping it trims away
// whatever hangs over the block below. Landing within a few pixels snaps it
// to perfect alignment and builds a combo that eventually regrows the block.
package stack

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

const (
	BlockChar  = '█'
	DebrisChar = '▒'
	SparkChar  = '*'
)

const kindDebris sim.Kind = 1

// Game implements the Block Stack game logic.
type Game struct {
	core.Lifecycle

	cfg        config.StackConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager

	tower     []Block
	moving    Block
	dir       float64 // +1 moving right, -1 moving left
	combo     int     // Consecutive perfect placements
	lastPlace Placement

	debris    *sim.World
	particles *sim.Particles
	scrollY   float64 // World y at the top of the view
}

// New creates a new Block Stack game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "stack"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Block Stack"
}

// Reset builds a new tower: one base block centered at the bottom and one
// moving block on the row above. The game is left Idle.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.ID(), runtime.ConfigPath, config.DefaultStackConfig)
	if err != nil {
		log.Warn("config not loaded, using defaults", "game", g.ID(), "err", err)
	}
	if preset, err := config.ParsePreset(runtime.Difficulty); err == nil {
		config.ApplyPreset(&cfg.Difficulty, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.ResetLifecycle()
	g.combo = 0
	g.lastPlace = PlaceNone
	g.scrollY = 0

	if g.debris == nil {
		g.debris = sim.NewWorld(cfg.World.Width, cfg.World.Height)
		g.particles = sim.NewParticles(runtime.Seed)
	} else {
		g.debris.Reset()
		g.particles.Reset(runtime.Seed)
	}
	g.debris.Gravity = cfg.Block.Gravity
	g.debris.Bounds = core.NewBox(0, 0, cfg.World.Width, cfg.World.Height)

	w := cfg.Block.BaseWidth
	base := Block{
		X:     (cfg.World.Width - w) / 2,
		Y:     cfg.World.Height - cfg.Block.Height,
		W:     w,
		H:     cfg.Block.Height,
		Color: core.PaletteColor(0),
	}
	g.tower = append(g.tower[:0], base)
	g.spawnMoving()
}

// spawnMoving puts a new block one row above the top, entering from the
// left on even rows and from the right on odd rows.
func (g *Game) spawnMoving() {
	top := g.Top()
	row := len(g.tower)
	g.moving = Block{
		Y:     top.Y - g.cfg.Block.Height,
		W:     top.W,
		H:     g.cfg.Block.Height,
		Color: core.PaletteColor(row),
	}
	if row%2 == 1 {
		g.moving.X = 0
		g.dir = 1
	} else {
		g.moving.X = g.cfg.World.Width - g.moving.W
		g.dir = -1
	}
}

// Top returns the highest placed block.
func (g *Game) Top() Block {
	return g.tower[len(g.tower)-1]
}

// Moving returns the sliding block.
func (g *Game) Moving() Block {
	return g.moving
}

// Height returns the number of placed blocks, base included.
func (g *Game) Height() int {
	return len(g.tower)
}

// Combo returns the current perfect streak.
func (g *Game) Combo() int {
	return g.combo
}

// speed returns the current slide speed in world units per second.
func (g *Game) speed() float64 {
	return g.difficulty.Speed(g.cfg.Block.Speed, g.Score(), g.Ticks())
}

// PlaceBlock drops the moving block onto the tower.
func (g *Game) PlaceBlock() Placement {
	if !g.IsPlaying() || g.Paused() {
		return PlaceNone
	}

	kept, cut, p := place(g.moving, g.Top(), g.cfg.Scoring.PerfectThreshold)
	g.lastPlace = p

	switch p {
	case PlaceMiss:
		g.dropDebris(cut)
		g.combo = 0
		g.End("missed")
		return p

	case PlacePerfect:
		g.combo++
		g.Emit(core.Event{Kind: core.EventCombo, Value: g.combo})
		g.AddScore(g.cfg.Scoring.PerfectBonus, "perfect")
		if every := g.cfg.Scoring.ComboGrowEvery; every > 0 && g.combo%every == 0 {
			kept = g.grow(kept)
		}
		g.particles.Burst(core.V(kept.X+kept.W/2, kept.Y), 12, 120, 0.6, core.ColorBrightYellow)

	case PlaceTrimmed:
		g.combo = 0
		g.dropDebris(cut)
	}

	g.tower = append(g.tower, kept)
	g.AddScore(1, "placed")
	g.follow()
	g.spawnMoving()
	return p
}

// grow widens a block around its center, up to the base width, staying inside the world.
func (g *Game) grow(b Block) Block {
	newW := min(b.W+g.cfg.Scoring.GrowAmount, g.cfg.Block.BaseWidth)
	b.X -= (newW - b.W) / 2
	b.W = newW
	b.X = core.ClampF(b.X, 0, g.cfg.World.Width-b.W)
	return b
}

// dropDebris turns a cut-off piece into a falling body.
func (g *Game) dropDebris(cut Block) {
	if cut.W <= 0 {
		return
	}
	body := sim.NewBox(kindDebris, cut.Box().Center(), cut.W, cut.H)
	body.Gravity = 1
	body.Cull = true
	body.Vel = core.V(g.dir*g.speed()*0.3, 0)
	body.Tag = int(cut.Color)
	g.debris.Spawn(body)
}

// follow scrolls the view so the top of the tower stays in the upper half.
func (g *Game) follow() {
	limit := g.cfg.World.Height * 0.4
	top := g.Top().Y - g.cfg.Block.Height
	if top-g.scrollY < limit {
		g.scrollY = top - limit
	}
	g.debris.Bounds = core.NewBox(0, g.scrollY, g.cfg.World.Width, g.cfg.World.Height)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := g.runtime.DeltaTime()

	if g.Advance(in) {
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.PlaceBlock()
		}
		if g.IsPlaying() {
			g.slide(dt)
		}
	}

	// Debris keeps falling after a miss
	if g.Phase() != core.PhaseIdle && !g.Paused() {
		g.debris.Step(dt)
		g.particles.Update(dt)
	}

	return g.Result(g.State())
}

// slide moves the block and bounces it off the world edges.
func (g *Game) slide(dt float64) {
	g.moving.X += g.dir * g.speed() * dt
	if g.moving.X < 0 {
		g.moving.X = 0
		g.dir = 1
	} else if maxX := g.cfg.World.Width - g.moving.W; g.moving.X > maxX {
		g.moving.X = maxX
		g.dir = -1
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	vp := core.NewViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())
	vp.ScrollY = g.scrollY

	for _, b := range g.tower {
		vp.Fill(dst, b.Box(), BlockChar, b.Color)
	}
	if g.Phase() != core.PhaseGameOver {
		vp.Fill(dst, g.moving.Box(), BlockChar, g.moving.Color)
	}
	for _, d := range g.debris.Bodies {
		vp.Fill(dst, d.Bounds(), DebrisChar, core.Color(d.Tag))
	}
	for _, p := range g.particles.All() {
		vp.Plot(dst, p.Pos, SparkChar, p.Color)
	}

	hud := fmt.Sprintf(" Score: %d  Height: %d ", g.Score(), len(g.tower)-1)
	dst.DrawText(2, 0, hud)
	if g.combo > 1 {
		combo := fmt.Sprintf(" Combo x%d ", g.combo)
		dst.DrawTextColor(dst.Width()-len(combo)-2, 0, combo, core.ColorBrightYellow)
	} else if g.lastPlace == PlacePerfect {
		dst.DrawTextColor(dst.Width()-11, 0, " Perfect! ", core.ColorBrightYellow)
	}

	core.DrawOverlay(dst, g.State(), g.Title())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.BaseState()
}

// Register the game with the registry
func init() {
	registry.Register("stack", func() registry.Game {
		return New()
	})
}
