// Package core provides fundamental types shared by the simulation and the
// platform layer: vectors, the viewport, input frames and the screen buffer.
// It must not depend on the terminal UI so level logic stays testable.
package core

import (
	"strings"
)

// Cell is one character of the screen with its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Rect is a rectangle of screen cells; X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Screen is the character buffer levels and menus draw into. Row 0 is the
// top line of the terminal. Writes outside the buffer are dropped.
type Screen struct {
	width, height int
	cells         []Cell
}

// NewScreen creates a blank screen buffer.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height, cells: make([]Cell, width*height)}
	s.Clear()
	return s
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Resize changes the dimensions, keeping the overlapping top-left content.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	next := NewScreen(width, height)
	for y := range min(s.height, height) {
		copy(next.cells[y*width:y*width+min(s.width, width)], s.cells[y*s.width:])
	}
	*s = *next
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Set places a rune with the default color.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a colored rune.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), a space outside the buffer.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), a blank outside the buffer.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y*s.width+x]
}

// DrawTextColored writes text from (x, y) to the right, clipped.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCenteredColored writes text centred on row y.
func (s *Screen) DrawTextCenteredColored(y int, text string, c Color) {
	s.DrawTextColored((s.width-len([]rune(text)))/2, y, text, c)
}

// Panel blanks r and frames it with box-drawing characters.
func (s *Screen) Panel(r Rect, c Color) {
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for y := r.Y; y <= bottom; y++ {
		for x := r.X; x <= right; x++ {
			ch := ' '
			switch {
			case y == r.Y || y == bottom:
				ch = '─'
			case x == r.X || x == right:
				ch = '│'
			}
			s.SetColored(x, y, ch, c)
		}
	}
	s.SetColored(r.X, r.Y, '┌', c)
	s.SetColored(right, r.Y, '┐', c)
	s.SetColored(r.X, bottom, '└', c)
	s.SetColored(right, bottom, '┘', c)
}

// Row returns line y as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the buffer as plain text, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
