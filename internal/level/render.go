package level

import (
	"fmt"

	"github.com/vovakirdan/survive2020/internal/ability"
	"github.com/vovakirdan/survive2020/internal/core"
	"github.com/vovakirdan/survive2020/internal/sim"
)

// Bar glyphs.
const (
	barFull  = '█'
	barEmpty = '░'
)

// Render draws the HUD on the first row, the arena through vp and the
// ability bar on the last row.
func (l *Level) Render(dst *core.Screen, vp core.Viewport) {
	dst.Clear()
	if l.world == nil {
		return
	}

	for _, d := range l.world.DrawList() {
		drawEntity(dst, vp, d)
	}

	l.renderHUD(dst)
	l.renderAbilities(dst, vp)

	if l.paused {
		l.renderPause(dst)
	}
}

func drawEntity(dst *core.Screen, vp core.Viewport, d sim.Drawable) {
	cols, rows := vp.Span(2 * d.HalfExtent)
	col, row := vp.ToCell(d.Pos)
	x0 := col - cols/2
	y0 := row - rows/2
	for y := y0; y < y0+rows; y++ {
		if y < vp.Top || y >= vp.Top+vp.Rows {
			continue
		}
		for x := x0; x < x0+cols; x++ {
			dst.SetColored(x, y, d.Sprite.Glyph, d.Sprite.Color)
		}
	}
}

func (l *Level) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, l.rules.Title(), core.ColorBrightCyan)
	dst.DrawTextCenteredColored(0, l.status, core.ColorBrightWhite)
	if l.svc.Scores != nil {
		best := fmt.Sprintf("Best: %d", l.svc.Scores.Best(l.rules.Key()))
		dst.DrawTextColored(dst.Width()-len(best)-1, 0, best, core.ColorYellow)
	}
}

// renderAbilities draws each bar at its widget geometry: slot digit, icon,
// then the progress cells.
func (l *Level) renderAbilities(dst *core.Screen, vp core.Viewport) {
	if l.engine == nil {
		return
	}
	y := dst.Height() - 1
	for i, bar := range l.bars {
		spec := l.engine.Spec(i)
		col, _ := vp.ToCell(core.Vec{X: bar.X})
		width, _ := vp.Span(bar.MaxWidth)

		color := core.ColorGray
		switch {
		case l.engine.IsActive(i):
			color = core.ColorBrightYellow
		case bar.Progress >= 1:
			color = core.ColorBrightGreen
		}

		dst.SetColored(col, y, rune('1'+i), core.ColorWhite)
		dst.SetColored(col+1, y, spec.Icon, color)
		cells := max(width-2, 1)
		filled := bar.Cells(cells)
		for c := 0; c < cells; c++ {
			r := barEmpty
			if c < filled {
				r = barFull
			}
			dst.SetColored(col+2+c, y, r, color)
		}
	}
}

func (l *Level) renderPause(dst *core.Screen) {
	lines := []string{"PAUSED", "Press P to resume, Esc for the menu", ""}
	for i := 0; i < l.engine.Len(); i++ {
		spec := l.engine.Spec(i)
		lines = append(lines, fmt.Sprintf("[%d] %s", i+1, spec.Name))
	}
	top := dst.Height()/2 - len(lines)/2
	width := 0
	for _, ln := range lines {
		width = max(width, len(ln))
	}
	dst.Panel(core.Rect{X: dst.Width()/2 - width/2 - 2, Y: top - 1, W: width + 4, H: len(lines) + 2}, core.ColorDefault)
	for i, ln := range lines {
		dst.DrawTextCenteredColored(top+i, ln, core.ColorBrightWhite)
	}
}

// Bars exposes the ability widgets.
func (l *Level) Bars() []*ability.Bar { return l.bars }
