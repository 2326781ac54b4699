package stack

import (
	"github.com/vovakirdan/minigames/internal/core"
)

// Block is one row of the tower, in world units. Y is the top edge.
type Block struct {
	X, Y  float64
	W, H  float64
	Color core.Color
}

// Box returns the block's bounds.
func (b Block) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// Right returns the right edge.
func (b Block) Right() float64 {
	return b.X + b.W
}

// Placement is the outcome of dropping the moving block.
type Placement int

const (
	PlaceNone    Placement = iota // Not playing, nothing happened
	PlaceMiss                     // No overlap, the game ends
	PlaceTrimmed                  // Partial overlap, the overhang was cut off
	PlacePerfect                  // Within the threshold, snapped to the block below
)

// String returns a lowercase name used as the score reason.
func (p Placement) String() string {
	switch p {
	case PlaceMiss:
		return "miss"
	case PlaceTrimmed:
		return "trimmed"
	case PlacePerfect:
		return "perfect"
	default:
		return "none"
	}
}

// place computes where the moving block lands on top.
// It returns the kept block, the cut-off piece (zero width when none) and the outcome.
func place(moving, top Block, threshold float64) (kept, cut Block, p Placement) {
	overlap := moving.Box().OverlapX(top.Box())
	if overlap <= 0 {
		return Block{}, moving, PlaceMiss
	}

	diff := moving.X - top.X
	if diff < 0 {
		diff = -diff
	}
	if diff <= threshold {
		kept = moving
		kept.X = top.X
		kept.W = top.W
		return kept, Block{}, PlacePerfect
	}

	kept = moving
	cut = moving
	if moving.X < top.X {
		// Overhang on the left
		cut.W = top.X - moving.X
		kept.X = top.X
	} else {
		// Overhang on the right
		cut.X = top.Right()
		cut.W = moving.Right() - top.Right()
	}
	kept.W = overlap
	return kept, cut, PlaceTrimmed
}
