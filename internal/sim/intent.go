package sim

import (
	"github.com/vovakirdan/minigames/internal/core"
)

// Intent is a movement direction that stays active for a short time after a
// key press. Terminals report presses, not held keys, so a press refreshes
// the axis and Tick lets it lapse.
type Intent struct {
	X, Y  float64 // -1, 0 or +1 per axis
	Hold  float64 // Seconds a press stays active
	leftX float64
	leftY float64
}

// NewIntent creates an intent whose presses last hold seconds.
func NewIntent(hold float64) Intent {
	return Intent{Hold: hold}
}

// Press refreshes the axes with a nonzero component.
func (i *Intent) Press(dx, dy float64) {
	if dx != 0 {
		i.X = dx
		i.leftX = i.Hold
	}
	if dy != 0 {
		i.Y = dy
		i.leftY = i.Hold
	}
}

// PressFrame reads the directional actions of a frame.
func (i *Intent) PressFrame(in core.InputFrame) {
	var dx, dy float64
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}
	i.Press(dx, dy)
}

// Tick expires axes whose press has lapsed.
func (i *Intent) Tick(dt float64) {
	if i.leftX -= dt; i.leftX <= 0 {
		i.leftX, i.X = 0, 0
	}
	if i.leftY -= dt; i.leftY <= 0 {
		i.leftY, i.Y = 0, 0
	}
}

// Dir returns the unit direction, or zero when no axis is active.
func (i *Intent) Dir() core.Vec2 {
	return core.V(i.X, i.Y).Normalize()
}

// Stop clears both axes.
func (i *Intent) Stop() {
	*i = Intent{Hold: i.Hold}
}
