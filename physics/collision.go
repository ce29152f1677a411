package physics

import (
	"math"

	"github.com/lixenwraith/pi-catcher/component"
)

// Bounds is the fixed geometry shared by collision and bottom-edge checks
type Bounds struct {
	Half        float64 // play area spans [-Half, Half] on both axes
	PieRadius   float64
	PlateWidth  float64
	PlateHeight float64
	PlateY      float64
}

// CircleRectOverlap tests a circle at (cx, cy) with radius r against an
// axis-aligned rectangle of size w x h centered at (rx, ry)
// Touching counts as overlap
func CircleRectOverlap(cx, cy, r, rx, ry, w, h float64) bool {
	dx := math.Abs(cx - rx)
	dy := math.Abs(cy - ry)
	halfW := w / 2
	halfH := h / 2

	// Far on both axes
	if dx > halfW+r && dy > halfH+r {
		return false
	}

	// Center inside the rectangle footprint
	if dx <= halfW && dy <= halfH {
		return true
	}

	cornerX := dx - halfW
	cornerY := dy - halfH
	return cornerX*cornerX+cornerY*cornerY <= r*r
}

// PieHitsPlate reports whether the pie overlaps the plate
func PieHitsPlate(p *component.Pie, plate component.Plate, b Bounds) bool {
	return CircleRectOverlap(p.X, p.Y, b.PieRadius, plate.X, b.PlateY, b.PlateWidth, b.PlateHeight)
}

// AboveBottom reports whether the pie's lowest point is still inside the play area
func AboveBottom(p *component.Pie, b Bounds) bool {
	return p.Y-b.PieRadius > -b.Half
}
