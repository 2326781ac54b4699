package core

// Viewport maps world units onto screen cells.
// The world is scaled to fit below the HUD rows. Terminal cells are not
// square, so each axis scales independently.
type Viewport struct {
	WorldW, WorldH float64
	ScreenW        int
	ScreenH        int
	OffsetY        int     // Screen rows reserved at the top (HUD)
	ScrollY        float64 // World y shown at the top row
}

// NewViewport creates a viewport with a single HUD row.
func NewViewport(worldW, worldH float64, screenW, screenH int) Viewport {
	return Viewport{
		WorldW:  worldW,
		WorldH:  worldH,
		ScreenW: screenW,
		ScreenH: screenH,
		OffsetY: 1,
	}
}

func (v Viewport) scale() (sx, sy float64) {
	rows := v.ScreenH - v.OffsetY
	if v.WorldW <= 0 || v.WorldH <= 0 || v.ScreenW <= 0 || rows <= 0 {
		return 0, 0
	}
	return float64(v.ScreenW) / v.WorldW, float64(rows) / v.WorldH
}

// Point maps a world point to a screen cell.
func (v Viewport) Point(p Vec2) (int, int) {
	sx, sy := v.scale()
	return int(p.X * sx), int((p.Y-v.ScrollY)*sy) + v.OffsetY
}

// Rect maps a world box to a screen rectangle, at least one cell in each axis.
func (v Viewport) Rect(b Box) Rect {
	x0, y0 := v.Point(Vec2{b.X, b.Y})
	x1, y1 := v.Point(Vec2{b.Right(), b.Bottom()})
	return NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// Fill draws a world box as a filled rectangle.
func (v Viewport) Fill(dst *Screen, b Box, r rune, c Color) {
	dst.DrawRect(v.Rect(b), r, c)
}

// Plot draws one rune at a world point.
func (v Viewport) Plot(dst *Screen, p Vec2, r rune, c Color) {
	x, y := v.Point(p)
	dst.SetColor(x, y, r, c)
}
