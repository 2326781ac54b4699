// Package sim implements the per-frame update step shared by the action games:
// pursuit, gravity, integration, clamping, culling, pairwise collision rules and
// dead-entity filtering. Games own the terminal checks.
package sim

import (
	"github.com/vovakirdan/minigames/internal/core"
)

// Kind tags a body so collision rules can select pairs. Games define their own kinds.
type Kind int

// Shape selects the collision test used for a body.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeBox
)

// Body is a simulated entity: player, enemy, projectile, pickup, obstacle.
type Body struct {
	ID     int
	Kind   Kind
	Shape  Shape
	Pos    core.Vec2 // Center
	Vel    core.Vec2 // World units per second
	Size   core.Vec2 // Full width/height for ShapeBox
	Radius float64   // For ShapeCircle
	Health int

	Clamp   bool    // Keep inside world bounds
	Cull    bool    // Remove once fully outside world bounds
	Gravity float64 // Multiplier on World.Gravity (0 = unaffected)

	Chase      *Body   // Pursuit target, nil for straight-line motion
	ChaseSpeed float64 // Pursuit speed in world units per second

	Dead bool
	Tag  int // Free slot for game data (points, variant, frame)
}

// NewCircle creates a circular body centered at pos.
func NewCircle(kind Kind, pos core.Vec2, radius float64) *Body {
	return &Body{Kind: kind, Shape: ShapeCircle, Pos: pos, Radius: radius}
}

// NewBox creates a box body centered at pos with the given full size.
func NewBox(kind Kind, pos core.Vec2, w, h float64) *Body {
	return &Body{Kind: kind, Shape: ShapeBox, Pos: pos, Size: core.V(w, h)}
}

// Bounds returns the axis-aligned bounding box of the body.
func (b *Body) Bounds() core.Box {
	if b.Shape == ShapeCircle {
		return core.BoxAround(b.Pos, b.Radius*2, b.Radius*2)
	}
	return core.BoxAround(b.Pos, b.Size.X, b.Size.Y)
}

func (b *Body) circle() core.Circle {
	return core.Circle{C: b.Pos, R: b.Radius}
}

// Overlaps reports whether two bodies intersect. The test is symmetric.
func (b *Body) Overlaps(o *Body) bool {
	switch {
	case b.Shape == ShapeCircle && o.Shape == ShapeCircle:
		return b.circle().Intersects(o.circle())
	case b.Shape == ShapeBox && o.Shape == ShapeBox:
		return b.Bounds().Intersects(o.Bounds())
	case b.Shape == ShapeCircle:
		return b.circle().IntersectsBox(o.Bounds())
	default:
		return o.circle().IntersectsBox(b.Bounds())
	}
}

// Damage subtracts health, never below zero, and kills the body at zero.
// Returns the health actually removed.
func (b *Body) Damage(amount int) int {
	if amount <= 0 || b.Health <= 0 {
		return 0
	}
	if amount > b.Health {
		amount = b.Health
	}
	b.Health -= amount
	if b.Health == 0 {
		b.Dead = true
	}
	return amount
}
