// Package whack implements Whack-a-Mole.
// Moles pop out of a grid of holes for a short random time; the player moves
// a cursor and whacks them before they duck back down.
package whack

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
	MoleChar   = '●'
	GoldenChar = '★'
	HoleChar   = '_'
	HitChar    = '✶'
)

const (
	holeWidth  = 7
	holeHeight = 3
)

// Mole is the occupant of one hole.
type Mole struct {
	Up     bool
	Golden bool
	Left   float64 // Seconds until the mole ducks
	Bonked float64 // Seconds the hit marker stays visible
}

// Game implements the Whack-a-Mole game logic.
type Game struct {
	core.Lifecycle

	runtime    core.RuntimeConfig
	cfg        config.WhackConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	holes      []Mole
	cursor     int
	spawnTimer sim.Timer
	clock      sim.Countdown
	hits       int
	escaped    int
	streak     int
}

// New creates a new Whack-a-Mole game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "whack"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Whack-a-Mole"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.ID(), runtime.ConfigPath, config.DefaultWhackConfig)
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
	g.holes = make([]Mole, cfg.Board.Cols*cfg.Board.Rows)
	g.cursor = len(g.holes) / 2
	g.spawnTimer = sim.NewTimer(cfg.Moles.SpawnInterval)
	g.clock = sim.NewCountdown(cfg.Board.TimeLimit)
	g.hits = 0
	g.escaped = 0
	g.streak = 0
}

// Holes returns the grid in row-major order.
func (g *Game) Holes() []Mole {
	return g.holes
}

// Cursor returns the index of the highlighted hole.
func (g *Game) Cursor() int {
	return g.cursor
}

// MoveCursor shifts the cursor on the grid, clamped to the edges.
func (g *Game) MoveCursor(dx, dy int) {
	cols, rows := g.cfg.Board.Cols, g.cfg.Board.Rows
	x := core.Clamp(g.cursor%cols+dx, 0, cols-1)
	y := core.Clamp(g.cursor/cols+dy, 0, rows-1)
	g.cursor = y*cols + x
}

// Whack strikes the hole under the cursor and reports a hit.
func (g *Game) Whack() bool {
	if !g.IsPlaying() {
		return false
	}
	m := &g.holes[g.cursor]
	if !m.Up {
		g.streak = 0
		return false
	}

	points := g.cfg.Moles.Points
	if m.Golden {
		points = g.cfg.Moles.GoldenPoints
	}
	*m = Mole{Bonked: 0.3}
	g.hits++
	g.streak++
	g.AddScore(points, "whack")
	if g.streak > 1 && g.streak%5 == 0 {
		g.Emit(core.Event{Kind: core.EventCombo, Value: g.streak})
	}
	return true
}

// popMole raises a mole in a random empty hole. Returns the hole index or -1
// when every hole is occupied.
func (g *Game) popMole() int {
	var free []int
	for i, m := range g.holes {
		if !m.Up {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return -1
	}
	i := free[g.rng.Intn(len(free))]

	// Moles duck faster as the difficulty rises
	mo := g.cfg.Moles
	up := mo.MinUp + g.rng.Float64()*(mo.MaxUp-mo.MinUp)
	up = g.difficulty.Interval(up, g.Score(), g.Ticks())
	g.holes[i] = Mole{
		Up:     true,
		Golden: g.rng.Float64() < mo.GoldenChance,
		Left:   up,
	}
	return i
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Advance(in) {
		return g.Result(g.State())
	}
	dt := g.runtime.DeltaTime()

	switch {
	case in.Has(core.ActionUp):
		g.MoveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.MoveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.MoveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.MoveCursor(1, 0)
	}
	if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		g.Whack()
	}

	for i := range g.holes {
		m := &g.holes[i]
		m.Bonked = max(0, m.Bonked-dt)
		if !m.Up {
			continue
		}
		if m.Left -= dt; m.Left <= 0 {
			*m = Mole{}
			g.escaped++
			g.streak = 0
		}
	}

	g.spawnTimer.Interval = g.difficulty.Interval(g.cfg.Moles.SpawnInterval, g.Score(), g.Ticks())
	for range g.spawnTimer.Tick(dt) {
		g.popMole()
	}

	if g.clock.Tick(dt) {
		g.End("time up")
	}
	return g.Result(g.State())
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	cols, rows := g.cfg.Board.Cols, g.cfg.Board.Rows
	ox := max(0, (dst.Width()-cols*holeWidth)/2)
	oy := 2 + max(0, (dst.Height()-2-rows*holeHeight)/2)

	for i, m := range g.holes {
		x := ox + (i%cols)*holeWidth
		y := oy + (i/cols)*holeHeight
		switch {
		case m.Up && m.Golden:
			dst.SetColor(x+3, y, GoldenChar, core.ColorBrightYellow)
		case m.Up:
			dst.SetColor(x+3, y, MoleChar, core.ColorOrange)
		case m.Bonked > 0:
			dst.SetColor(x+3, y, HitChar, core.ColorBrightWhite)
		}
		for dx := 1; dx <= 5; dx++ {
			dst.SetColor(x+dx, y+1, HoleChar, core.ColorGray)
		}
		if i == g.cursor {
			dst.SetColor(x, y+1, '[', core.ColorBrightWhite)
			dst.SetColor(x+6, y+1, ']', core.ColorBrightWhite)
		}
	}

	hud := fmt.Sprintf(" Score: %d  Hits: %d  Time: %.0f ", g.Score(), g.hits, g.clock.Left())
	dst.DrawText(2, 0, hud)

	core.DrawOverlay(dst, g.State(), g.Title())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.BaseState()
	s.TimeLeft = g.clock.Left()
	return s
}

// Register the game with the registry
func init() {
	registry.Register("whack", func() registry.Game {
		return New()
	})
}
