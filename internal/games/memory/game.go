// Package memory implements a card-pairs memory game.
// Cards are dealt face down; the player flips two at a time looking for
// pairs against the clock. Wrong pairs cost time.
package memory

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

// faceGlyphs are the card faces; boards larger than the list reuse glyphs
// with a different color.
var faceGlyphs = []rune{'♥', '♦', '♣', '♠', '★', '☀', '☂', '♪', '☺', '✿', '⚑', '☘'}

const (
	cardWidth = 5
	backChar  = '▒'
	noCard    = -1
)

// Card is one card on the table.
type Card struct {
	Face    int
	Up      bool
	Matched bool
}

// Game implements the Memory Match game logic.
type Game struct {
	core.Lifecycle

	runtime    core.RuntimeConfig
	cfg        config.MemoryConfig
	difficulty *config.DifficultyManager

	cards      []Card
	cursor     int
	first      int     // Index of the first flipped card, noCard if none
	second     int     // Index of a mismatched second card while revealed
	revealLeft float64 // Seconds until a mismatched pair flips back
	clock      sim.Countdown
	pairs      int // Pairs found
	streak     int // Consecutive matches without a mismatch
	misses     int
}

// New creates a new Memory Match game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "memory"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Memory Match"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.ID(), runtime.ConfigPath, config.DefaultMemoryConfig)
	if err != nil {
		log.Warn("config not loaded, using defaults", "game", g.ID(), "err", err)
	}
	if preset, err := config.ParsePreset(runtime.Difficulty); err == nil {
		config.ApplyPreset(&cfg.Difficulty, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.ResetLifecycle()
	g.deal(rand.New(rand.NewSource(runtime.Seed)))
	g.cursor = 0
	g.first, g.second = noCard, noCard
	g.revealLeft = 0
	g.clock = sim.NewCountdown(g.difficulty.Interval(cfg.Scoring.TimeLimit, 0, 0))
	g.pairs = 0
	g.streak = 0
	g.misses = 0
}

// deal lays out two cards of every face in random order.
func (g *Game) deal(rng *rand.Rand) {
	n := g.cfg.Board.Cols * g.cfg.Board.Rows
	g.cards = make([]Card, n)
	for i := range g.cards {
		g.cards[i] = Card{Face: i / 2}
	}
	rng.Shuffle(n, func(i, j int) {
		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	})
}

// Cards returns the table in row-major order.
func (g *Game) Cards() []Card {
	return g.cards
}

// Cursor returns the index of the highlighted card.
func (g *Game) Cursor() int {
	return g.cursor
}

// Pairs returns how many pairs have been found.
func (g *Game) Pairs() int {
	return g.pairs
}

// Revealing reports whether a mismatched pair is waiting to flip back.
func (g *Game) Revealing() bool {
	return g.second != noCard
}

// MoveCursor shifts the cursor on the grid, clamped to the edges.
func (g *Game) MoveCursor(dx, dy int) {
	cols, rows := g.cfg.Board.Cols, g.cfg.Board.Rows
	x := core.Clamp(g.cursor%cols+dx, 0, cols-1)
	y := core.Clamp(g.cursor/cols+dy, 0, rows-1)
	g.cursor = y*cols + x
}

// Flip turns the card under the cursor.
func (g *Game) Flip() bool {
	return g.FlipAt(g.cursor)
}

// FlipAt turns card i face up. Face-up cards, matched cards and flips while a
// mismatched pair is showing are ignored.
func (g *Game) FlipAt(i int) bool {
	if !g.IsPlaying() || i < 0 || i >= len(g.cards) || g.Revealing() {
		return false
	}
	c := &g.cards[i]
	if c.Up || c.Matched {
		return false
	}
	c.Up = true

	if g.first == noCard {
		g.first = i
		return true
	}

	a, b := &g.cards[g.first], c
	if a.Face == b.Face {
		a.Matched, b.Matched = true, true
		g.first = noCard
		g.pairs++
		g.streak++
		g.AddScore(g.cfg.Scoring.MatchPoints+g.cfg.Scoring.StreakBonus*(g.streak-1), "pair")
		if g.streak > 1 {
			g.Emit(core.Event{Kind: core.EventCombo, Value: g.streak})
		}
		if g.pairs == len(g.cards)/2 {
			g.AddScore(int(g.clock.Left())*g.cfg.Scoring.TimeBonus, "time bonus")
			g.End("cleared")
		}
		return true
	}

	g.second = i
	g.streak = 0
	g.revealLeft = g.cfg.Board.RevealDelay
	return true
}

// hideMismatch turns a mismatched pair face down and charges the time penalty.
func (g *Game) hideMismatch() {
	g.cards[g.first].Up = false
	g.cards[g.second].Up = false
	g.first, g.second = noCard, noCard
	g.misses++

	penalty := g.cfg.Scoring.MismatchPenalty
	g.Emit(core.Event{Kind: core.EventPenalty, Value: int(penalty), Reason: "mismatch"})
	if g.clock.Penalize(penalty) {
		g.End("time up")
	}
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
		g.Flip()
	}

	if g.Revealing() {
		if g.revealLeft -= dt; g.revealLeft <= 0 {
			g.hideMismatch()
		}
	}
	if g.IsPlaying() && g.clock.Tick(dt) {
		g.End("time up")
	}
	return g.Result(g.State())
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	cols, rows := g.cfg.Board.Cols, g.cfg.Board.Rows
	rowStep := 2
	ox := max(0, (dst.Width()-cols*cardWidth)/2)
	oy := 2 + max(0, (dst.Height()-2-rows*rowStep)/2)

	for i, c := range g.cards {
		x := ox + (i%cols)*cardWidth
		y := oy + (i/cols)*rowStep
		switch {
		case c.Matched:
			dst.SetColor(x+2, y, faceGlyphs[c.Face%len(faceGlyphs)], core.ColorGray)
		case c.Up:
			dst.SetColor(x+2, y, faceGlyphs[c.Face%len(faceGlyphs)], core.PaletteColor(c.Face))
		default:
			for dx := 1; dx <= 3; dx++ {
				dst.SetColor(x+dx, y, backChar, core.ColorBlue)
			}
		}
		if i == g.cursor {
			dst.SetColor(x, y, '[', core.ColorBrightWhite)
			dst.SetColor(x+4, y, ']', core.ColorBrightWhite)
		}
	}

	hud := fmt.Sprintf(" Score: %d  Pairs: %d/%d  Time: %.0f ", g.Score(), g.pairs, len(g.cards)/2, g.clock.Left())
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
	registry.Register("memory", func() registry.Game {
		return New()
	})
}
