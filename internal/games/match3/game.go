// Package match3 implements a gem-swapping match-three game.
// Swapping two adjacent gems must line up three or more of a kind; cleared
// gems fall, the board refills and chain reactions multiply the score.
package match3

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/sim"
)

// gemGlyphs gives each kind a distinct shape as well as a color.
var gemGlyphs = []rune{'●', '■', '▲', '◆', '★', '♥', '♣', '♠'}

// cellWidth is the number of screen columns per board cell.
const cellWidth = 3

// Game implements the Gem Match game logic.
type Game struct {
	core.Lifecycle

	runtime    core.RuntimeConfig
	cfg        config.Match3Config
	difficulty *config.DifficultyManager

	board     *Board
	cursor    Pos
	selected  Pos
	hasSel    bool
	clock     sim.Countdown
	lastChain int
	shuffles  int
}

// New creates a new Gem Match game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "match3"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Gem Match"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.ID(), runtime.ConfigPath, config.DefaultMatch3Config)
	if err != nil {
		log.Warn("config not loaded, using defaults", "game", g.ID(), "err", err)
	}
	if preset, err := config.ParsePreset(runtime.Difficulty); err == nil {
		config.ApplyPreset(&cfg.Difficulty, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.ResetLifecycle()
	rng := rand.New(rand.NewSource(runtime.Seed))
	kinds := min(cfg.Board.Kinds, len(gemGlyphs))
	g.board = NewBoard(cfg.Board.Width, cfg.Board.Height, kinds, rng)
	g.cursor = Pos{}
	g.hasSel = false
	g.clock = sim.NewCountdown(g.difficulty.Interval(cfg.Scoring.TimeLimit, 0, 0))
	g.lastChain = 0
	g.shuffles = 0
}

// Board returns the gem grid.
func (g *Game) Board() *Board {
	return g.board
}

// Cursor returns the highlighted cell.
func (g *Game) Cursor() Pos {
	return g.cursor
}

// Selected returns the selected cell, if any.
func (g *Game) Selected() (Pos, bool) {
	return g.selected, g.hasSel
}

// MoveCursor shifts the cursor, clamped to the board.
func (g *Game) MoveCursor(dx, dy int) {
	g.cursor.X = core.Clamp(g.cursor.X+dx, 0, g.board.W-1)
	g.cursor.Y = core.Clamp(g.cursor.Y+dy, 0, g.board.H-1)
}

// Select acts on the cursor cell: the first press selects it, a press on an
// adjacent cell tries the swap, a press on the same cell deselects and a
// press elsewhere moves the selection.
func (g *Game) Select() bool {
	if !g.IsPlaying() {
		return false
	}
	switch {
	case !g.hasSel:
		g.selected, g.hasSel = g.cursor, true
	case g.selected == g.cursor:
		g.hasSel = false
	case g.selected.Adjacent(g.cursor):
		g.hasSel = false
		return g.TrySwap(g.selected, g.cursor)
	default:
		g.selected = g.cursor
	}
	return false
}

// TrySwap swaps two adjacent gems and resolves the board.
// A swap that creates no run is undone and returns false.
func (g *Game) TrySwap(p, q Pos) bool {
	if !g.IsPlaying() || !p.Adjacent(q) || !g.board.In(p) || !g.board.In(q) {
		return false
	}
	g.board.Swap(p, q)
	if len(g.board.Runs()) == 0 {
		g.board.Swap(p, q)
		return false
	}
	g.lastChain = g.resolve()
	return true
}

// resolve clears runs until the board is stable and returns the number of
// passes. Each pass after the first raises the multiplier by one.
func (g *Game) resolve() int {
	chain := 0
	for {
		runs := g.board.Runs()
		if len(runs) == 0 {
			break
		}
		chain++
		cleared := g.board.Clear(runs)
		g.AddScore(cleared*g.cfg.Scoring.PointsPerGem*chain, "match")
		g.clock.Extend(g.cfg.Scoring.MatchBonus * float64(len(runs)))
		if chain > 1 {
			g.Emit(core.Event{Kind: core.EventCombo, Value: chain})
		}
		g.board.Collapse()
		g.board.Refill()
	}
	g.ensurePlayable()
	return chain
}

// ensurePlayable reshuffles a board with no possible move.
func (g *Game) ensurePlayable() {
	if g.board.HasMove() {
		return
	}
	g.board.Shuffle()
	g.shuffles++
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.Advance(in) {
		return g.Result(g.State())
	}

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
		g.Select()
	}

	if g.clock.Tick(g.runtime.DeltaTime()) {
		g.End("time up")
	}
	return g.Result(g.State())
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	b := g.board
	ox := max(0, (dst.Width()-b.W*cellWidth)/2)
	oy := 2 + max(0, (dst.Height()-2-b.H)/2)

	for y := range b.H {
		for x := range b.W {
			p := Pos{x, y}
			sx := ox + x*cellWidth
			gem := b.At(p)
			if gem != Empty {
				dst.SetColor(sx+1, oy+y, gemGlyphs[gem], core.PaletteColor(int(gem)))
			}
			switch {
			case g.hasSel && p == g.selected:
				dst.SetColor(sx, oy+y, '(', core.ColorBrightWhite)
				dst.SetColor(sx+2, oy+y, ')', core.ColorBrightWhite)
			case p == g.cursor:
				dst.SetColor(sx, oy+y, '[', core.ColorBrightWhite)
				dst.SetColor(sx+2, oy+y, ']', core.ColorBrightWhite)
			}
		}
	}

	hud := fmt.Sprintf(" Score: %d  Time: %.0f ", g.Score(), g.clock.Left())
	dst.DrawText(2, 0, hud)
	if g.lastChain > 1 {
		chain := fmt.Sprintf(" Chain x%d ", g.lastChain)
		dst.DrawTextColor(dst.Width()-len(chain)-2, 0, chain, core.ColorBrightYellow)
	}

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
	registry.Register("match3", func() registry.Game {
		return New()
	})
}
