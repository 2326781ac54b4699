package sim

import (
	"github.com/vovakirdan/minigames/internal/core"
)

// World owns every body of one game instance.
type World struct {
	Bounds  core.Box
	Gravity float64 // World units per second squared, positive is down
	Bodies  []*Body
	nextID  int
}

// NewWorld creates an empty world of the given size.
func NewWorld(w, h float64) *World {
	return &World{
		Bounds: core.NewBox(0, 0, w, h),
		Bodies: make([]*Body, 0, 32),
	}
}

// Reset removes every body.
func (w *World) Reset() {
	for i := range w.Bodies {
		w.Bodies[i] = nil
	}
	w.Bodies = w.Bodies[:0]
	w.nextID = 0
}

// Spawn adds a body and assigns its ID.
func (w *World) Spawn(b *Body) *Body {
	w.nextID++
	b.ID = w.nextID
	w.Bodies = append(w.Bodies, b)
	return b
}

// Each returns the live bodies of the given kind.
func (w *World) Each(kind Kind) []*Body {
	var out []*Body
	for _, b := range w.Bodies {
		if b.Kind == kind && !b.Dead {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of live bodies of the given kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, b := range w.Bodies {
		if b.Kind == kind && !b.Dead {
			n++
		}
	}
	return n
}

// Find returns the first live body of the given kind, or nil.
func (w *World) Find(kind Kind) *Body {
	for _, b := range w.Bodies {
		if b.Kind == kind && !b.Dead {
			return b
		}
	}
	return nil
}

// ClampBody pushes a body back inside the world and zeroes velocity into walls.
func (w *World) ClampBody(b *Body) {
	box := b.Bounds()
	halfW, halfH := box.W/2, box.H/2

	minX, maxX := w.Bounds.X+halfW, w.Bounds.Right()-halfW
	minY, maxY := w.Bounds.Y+halfH, w.Bounds.Bottom()-halfH

	if b.Pos.X < minX {
		b.Pos.X = minX
		b.Vel.X = max(b.Vel.X, 0)
	} else if b.Pos.X > maxX {
		b.Pos.X = maxX
		b.Vel.X = min(b.Vel.X, 0)
	}
	if b.Pos.Y < minY {
		b.Pos.Y = minY
		b.Vel.Y = max(b.Vel.Y, 0)
	} else if b.Pos.Y > maxY {
		b.Pos.Y = maxY
		b.Vel.Y = min(b.Vel.Y, 0)
	}
}

// Outside reports whether the body has left the world entirely.
func (w *World) Outside(b *Body) bool {
	return !b.Bounds().Intersects(w.Bounds)
}

// Sweep removes dead bodies, reusing the backing array.
func (w *World) Sweep() {
	alive := w.Bodies[:0]
	for _, b := range w.Bodies {
		if !b.Dead {
			alive = append(alive, b)
		}
	}
	for i := len(alive); i < len(w.Bodies); i++ {
		w.Bodies[i] = nil
	}
	w.Bodies = alive
}
