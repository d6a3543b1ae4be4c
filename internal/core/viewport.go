package core

import "math"

// Default logical size of one terminal cell. Terminal cells are roughly twice
// as tall as they are wide.
const (
	DefaultCellW = 8.0
	DefaultCellH = 16.0
)

// Viewport maps a block of screen cells onto the logical arena.
// Row Top is the first arena row; arena y grows upwards while screen rows
// grow downwards.
type Viewport struct {
	Top   int
	Cols  int
	Rows  int
	CellW float64
	CellH float64
}

// NewViewport creates a viewport with default cell metrics.
func NewViewport(top, cols, rows int) Viewport {
	return Viewport{Top: top, Cols: cols, Rows: rows, CellW: DefaultCellW, CellH: DefaultCellH}
}

// Size returns the arena dimensions in logical pixels.
func (v Viewport) Size() (w, h float64) {
	return float64(v.Cols) * v.CellW, float64(v.Rows) * v.CellH
}

// Bounds returns the arena as a rectangle anchored at the origin.
func (v Viewport) Bounds() FRect {
	w, h := v.Size()
	return FRect{MaxX: w, MaxY: h}
}

// ToCell converts a logical position into a screen cell.
func (v Viewport) ToCell(p Vec) (col, row int) {
	col = int(math.Floor(p.X / v.CellW))
	row = v.Top + v.Rows - 1 - int(math.Floor(p.Y/v.CellH))
	return col, row
}

// ToWorld converts a screen cell into the logical position of its centre.
// ok is false when the cell lies outside the arena rows.
func (v Viewport) ToWorld(col, row int) (p Vec, ok bool) {
	r := row - v.Top
	if r < 0 || r >= v.Rows || col < 0 || col >= v.Cols {
		return Vec{}, false
	}
	return Vec{
		X: (float64(col) + 0.5) * v.CellW,
		Y: (float64(v.Rows-1-r) + 0.5) * v.CellH,
	}, true
}

// Span returns how many cells a logical extent covers, at least one.
func (v Viewport) Span(size float64) (cols, rows int) {
	cols = int(math.Round(size / v.CellW))
	rows = int(math.Round(size / v.CellH))
	return max(cols, 1), max(rows, 1)
}
