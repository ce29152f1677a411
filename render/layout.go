package render

import "math"

// statusRows is the number of rows above the play area
const statusRows = 1

// Layout maps the square world [-Half, Half]^2 onto the terminal grid
// The play area is stretched to fill the screen below the status line
type Layout struct {
	Cols, Rows int
	Half       float64
}

// NewLayout builds a layout for a cols x rows screen
func NewLayout(cols, rows int, half float64) Layout {
	return Layout{Cols: max(cols, 1), Rows: max(rows, statusRows+1), Half: half}
}

// areaRows is the height of the play area in cells
func (l Layout) areaRows() int {
	return l.Rows - statusRows
}

// Col maps world x to a screen column, unclamped
func (l Layout) Col(x float64) int {
	return int(math.Floor((x + l.Half) / (2 * l.Half) * float64(l.Cols)))
}

// Row maps world y to a screen row, unclamped; +Y is up
func (l Layout) Row(y float64) int {
	return statusRows + int(math.Floor((l.Half-y)/(2*l.Half)*float64(l.areaRows())))
}

// WorldX maps a screen column to the world x at the cell's center
func (l Layout) WorldX(col int) float64 {
	return (float64(col)+0.5)/float64(l.Cols)*2*l.Half - l.Half
}

// CellsX converts a world width to columns
func (l Layout) CellsX(w float64) float64 {
	return w / (2 * l.Half) * float64(l.Cols)
}

// CellsY converts a world height to rows
func (l Layout) CellsY(h float64) float64 {
	return h / (2 * l.Half) * float64(l.areaRows())
}

// InArea reports whether a cell lies inside the play area
func (l Layout) InArea(col, row int) bool {
	return col >= 0 && col < l.Cols && row >= statusRows && row < l.Rows
}
