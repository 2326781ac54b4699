package match3

import (
	"math/rand"
)

// Gem is the kind of gem in a cell.
type Gem int8

// Empty marks a cleared cell waiting for collapse and refill.
const Empty Gem = -1

// Pos is a cell coordinate, origin at the top-left.
type Pos struct {
	X, Y int
}

// Adjacent reports whether two cells share an edge.
func (p Pos) Adjacent(o Pos) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx+dy*dy == 1
}

// Run is a straight line of three or more equal gems.
type Run struct {
	Start      Pos
	Len        int
	Horizontal bool
}

// Cells returns the positions covered by the run.
func (r Run) Cells() []Pos {
	cells := make([]Pos, r.Len)
	for i := range cells {
		if r.Horizontal {
			cells[i] = Pos{r.Start.X + i, r.Start.Y}
		} else {
			cells[i] = Pos{r.Start.X, r.Start.Y + i}
		}
	}
	return cells
}

// Board is the gem grid.
type Board struct {
	W, H  int
	kinds int
	cells []Gem
	rng   *rand.Rand
}

// NewBoard creates a board filled with no initial runs and at least one move.
func NewBoard(w, h, kinds int, rng *rand.Rand) *Board {
	b := &Board{W: w, H: h, kinds: kinds, cells: make([]Gem, w*h), rng: rng}
	b.regenerate()
	return b
}

// In reports whether p is on the board.
func (b *Board) In(p Pos) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= 0 && p.Y < b.H
}

// At returns the gem at p, Empty when off the board.
func (b *Board) At(p Pos) Gem {
	if !b.In(p) {
		return Empty
	}
	return b.cells[p.Y*b.W+p.X]
}

// Set places a gem at p.
func (b *Board) Set(p Pos, g Gem) {
	if b.In(p) {
		b.cells[p.Y*b.W+p.X] = g
	}
}

// Swap exchanges two cells.
func (b *Board) Swap(p, q Pos) {
	gp, gq := b.At(p), b.At(q)
	b.Set(p, gq)
	b.Set(q, gp)
}

// regenerate fills every cell so that no run exists, repeating until a move exists.
func (b *Board) regenerate() {
	for {
		for y := range b.H {
			for x := range b.W {
				b.Set(Pos{x, y}, b.safeGem(Pos{x, y}))
			}
		}
		if b.HasMove() {
			return
		}
	}
}

// safeGem picks a random kind that does not complete a run with the two
// cells to the left or the two cells above.
func (b *Board) safeGem(p Pos) Gem {
	g := Gem(b.rng.Intn(b.kinds))
	for range b.kinds {
		left := b.At(Pos{p.X - 1, p.Y}) == g && b.At(Pos{p.X - 2, p.Y}) == g
		up := b.At(Pos{p.X, p.Y - 1}) == g && b.At(Pos{p.X, p.Y - 2}) == g
		if !left && !up {
			break
		}
		g = (g + 1) % Gem(b.kinds)
	}
	return g
}

// Runs returns every horizontal and vertical run of three or more.
func (b *Board) Runs() []Run {
	var runs []Run
	scan := func(horizontal bool, outer, inner int, at func(o, i int) Pos) {
		for o := range outer {
			start := 0
			for i := 1; i <= inner; i++ {
				if i < inner && b.At(at(o, i)) == b.At(at(o, start)) && b.At(at(o, start)) != Empty {
					continue
				}
				if n := i - start; n >= 3 && b.At(at(o, start)) != Empty {
					runs = append(runs, Run{Start: at(o, start), Len: n, Horizontal: horizontal})
				}
				start = i
			}
		}
	}
	scan(true, b.H, b.W, func(y, x int) Pos { return Pos{x, y} })
	scan(false, b.W, b.H, func(x, y int) Pos { return Pos{x, y} })
	return runs
}

// Clear empties every cell covered by runs and returns how many gems went.
// Crossing runs share cells, which count once.
func (b *Board) Clear(runs []Run) int {
	n := 0
	for _, r := range runs {
		for _, p := range r.Cells() {
			if b.At(p) != Empty {
				b.Set(p, Empty)
				n++
			}
		}
	}
	return n
}

// Collapse lets gems fall into empty cells below them, keeping column order.
func (b *Board) Collapse() {
	for x := range b.W {
		write := b.H - 1
		for y := b.H - 1; y >= 0; y-- {
			if g := b.At(Pos{x, y}); g != Empty {
				b.Set(Pos{x, write}, g)
				write--
			}
		}
		for ; write >= 0; write-- {
			b.Set(Pos{x, write}, Empty)
		}
	}
}

// Refill puts random gems into every empty cell.
func (b *Board) Refill() {
	for i, g := range b.cells {
		if g == Empty {
			b.cells[i] = Gem(b.rng.Intn(b.kinds))
		}
	}
}

// HasMove reports whether any adjacent swap would create a run.
func (b *Board) HasMove() bool {
	for y := range b.H {
		for x := range b.W {
			p := Pos{x, y}
			for _, q := range []Pos{{x + 1, y}, {x, y + 1}} {
				if !b.In(q) || b.At(p) == b.At(q) {
					continue
				}
				b.Swap(p, q)
				ok := len(b.Runs()) > 0
				b.Swap(p, q)
				if ok {
					return true
				}
			}
		}
	}
	return false
}

// Shuffle rearranges the existing gems into a layout with no runs and at
// least one move. If shuffling keeps failing, the board is regenerated.
func (b *Board) Shuffle() {
	for range 50 {
		b.rng.Shuffle(len(b.cells), func(i, j int) {
			b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
		})
		if len(b.Runs()) == 0 && b.HasMove() {
			return
		}
	}
	b.regenerate()
}
