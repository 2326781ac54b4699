// Package catcher implements a falling-fruit catching game.
// The basket slides along the bottom catching fruit; bombs and dropped
// fruit cost a life.
package catcher

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
	BasketChar = '▄'
	BombChar   = '◉'
	SparkChar  = '·'
	HeartChar  = '♥'
)

var fruitGlyphs = []rune{'●', '♣', '♦', '◆'}

var fruitColors = []core.Color{core.ColorBrightRed, core.ColorBrightGreen, core.ColorOrange, core.ColorBrightYellow}

const (
	kindBasket sim.Kind = iota + 1
	kindFruit
	kindBomb
)

// basketMargin is the gap between the basket and the bottom of the world.
const basketMargin = 20

// Game implements the Fruit Catcher game logic.
type Game struct {
	core.Lifecycle

	runtime    core.RuntimeConfig
	cfg        config.CatcherConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	world     *sim.World
	basket    *sim.Body
	particles *sim.Particles

	intent     sim.Intent
	spawnTimer sim.Timer
	caught     int
	dropped    int
}

// New creates a new Fruit Catcher game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "catcher"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Fruit Catcher"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.ID(), runtime.ConfigPath, config.DefaultCatcherConfig)
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

	b := cfg.Basket
	pos := core.V(cfg.World.Width/2, cfg.World.Height-basketMargin-b.Height/2)
	g.basket = sim.NewBox(kindBasket, pos, b.Width, b.Height)
	g.basket.Clamp = true
	g.basket.Health = b.Health
	g.world.Spawn(g.basket)

	if g.particles == nil {
		g.particles = sim.NewParticles(runtime.Seed)
	} else {
		g.particles.Reset(runtime.Seed)
	}

	g.intent = sim.NewIntent(b.HoldTime)
	g.spawnTimer = sim.NewTimer(cfg.Items.SpawnInterval)
	g.caught = 0
	g.dropped = 0
}

// MoveLeft steers the basket left for HoldTime seconds.
func (g *Game) MoveLeft() {
	g.intent.Press(-1, 0)
}

// MoveRight steers the basket right for HoldTime seconds.
func (g *Game) MoveRight() {
	g.intent.Press(1, 0)
}

// Caught returns the number of fruit caught.
func (g *Game) Caught() int {
	return g.caught
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Advance(in) {
		return g.Result(g.State())
	}
	dt := g.runtime.DeltaTime()

	switch {
	case in.Has(core.ActionLeft):
		g.MoveLeft()
	case in.Has(core.ActionRight):
		g.MoveRight()
	}
	g.intent.Tick(dt)
	g.basket.Vel = core.V(g.intent.X*g.cfg.Basket.Speed, 0)

	g.spawnTimer.Interval = g.difficulty.Interval(g.cfg.Items.SpawnInterval, g.Score(), g.Ticks())
	for range g.spawnTimer.Tick(dt) {
		g.spawnItem()
	}

	contacts := g.world.Step(dt,
		sim.Rule{A: kindBasket, B: kindFruit, Hit: g.catchFruit},
		sim.Rule{A: kindBasket, B: kindBomb, Hit: g.catchBomb},
	)
	for _, b := range contacts.Culled {
		if b.Kind == kindFruit {
			g.dropped++
			g.hurt("missed")
		}
	}
	g.particles.Update(dt)

	if g.basket.Health <= 0 {
		g.End("out of lives")
	}
	return g.Result(g.State())
}

// spawnItem drops a fruit or a bomb at a random column.
func (g *Game) spawnItem() {
	kind := kindFruit
	if g.rng.Float64() < g.cfg.Items.BombChance {
		kind = kindBomb
	}
	r := g.cfg.Items.Radius
	x := r + g.rng.Float64()*(g.cfg.World.Width-2*r)
	item := g.drop(kind, x)
	item.Tag = g.rng.Intn(len(fruitGlyphs))
}

// drop adds a falling item just inside the top edge.
func (g *Game) drop(kind sim.Kind, x float64) *sim.Body {
	r := g.cfg.Items.Radius
	item := sim.NewCircle(kind, core.V(x, r), r)
	item.Vel = core.V(0, g.difficulty.Speed(g.cfg.Items.FallSpeed, g.Score(), g.Ticks()))
	item.Cull = true
	return g.world.Spawn(item)
}

func (g *Game) catchFruit(basket, fruit *sim.Body) {
	fruit.Dead = true
	g.caught++
	g.AddScore(g.cfg.Items.Points, "fruit")
	g.particles.Burst(fruit.Pos, 6, 90, 0.4, fruitColors[fruit.Tag%len(fruitColors)])
}

func (g *Game) catchBomb(basket, bomb *sim.Body) {
	bomb.Dead = true
	g.particles.Burst(bomb.Pos, 14, 180, 0.6, core.ColorBrightRed)
	g.hurt("bomb")
}

// hurt costs one life.
func (g *Game) hurt(reason string) {
	if n := g.basket.Damage(1); n > 0 {
		g.Emit(core.Event{Kind: core.EventDamaged, Value: n, Reason: reason})
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	vp := core.NewViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())

	for _, b := range g.world.Bodies {
		switch b.Kind {
		case kindFruit:
			i := b.Tag % len(fruitGlyphs)
			vp.Plot(dst, b.Pos, fruitGlyphs[i], fruitColors[i])
		case kindBomb:
			vp.Plot(dst, b.Pos, BombChar, core.ColorGray)
		}
	}
	vp.Fill(dst, g.basket.Bounds(), BasketChar, core.ColorOrange)
	for _, p := range g.particles.All() {
		vp.Plot(dst, p.Pos, SparkChar, p.Color)
	}

	hud := fmt.Sprintf(" Score: %d  Caught: %d ", g.Score(), g.caught)
	dst.DrawText(2, 0, hud)
	lives := max(0, g.basket.Health)
	for i := range g.cfg.Basket.Health {
		c := core.ColorGray
		if i < lives {
			c = core.ColorBrightRed
		}
		dst.SetColor(dst.Width()-3-2*i, 0, HeartChar, c)
	}

	core.DrawOverlay(dst, g.State(), g.Title())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.BaseState()
	s.Health = g.basket.Health
	return s
}

// Register the game with the registry
func init() {
	registry.Register("catcher", func() registry.Game {
		return New()
	})
}
