package ability

// Frame and bar metrics in logical pixels.
const (
	FrameSize   = 52.0
	FrameGap    = 10.0
	BarMaxWidth = 47.0
	BarHeight   = 7.0
)

// Bar is the progress bar drawn under an ability frame. The frame is
// anchored at Offset; the bar is laid out from the frame's left edge and
// its width follows the ability percentage.
type Bar struct {
	Offset   float64 // horizontal centre of the frame
	Y        float64
	MaxWidth float64
	X        float64
	Width    float64
	Progress float64
}

// NewBar creates a bar for a frame centred at offset.
func NewBar(offset, screenH float64) *Bar {
	b := &Bar{
		Offset:   offset,
		MaxWidth: BarMaxWidth,
	}
	b.Place(offset, screenH)
	return b
}

// Place moves the bar to a frame centred at offset on a screen screenH tall,
// keeping its progress.
func (b *Bar) Place(offset, screenH float64) {
	b.Offset = offset
	b.Y = screenH*0.05 - FrameSize/2.5
	b.SetProgress(b.Progress)
}

// SetProgress implements Widget.
func (b *Bar) SetProgress(pct float64) {
	b.Progress = pct
	b.Width = b.MaxWidth * pct
	b.X = b.Offset - 0.5*b.MaxWidth
}

// Cells returns how many of n cells are filled.
func (b *Bar) Cells(n int) int {
	if b.MaxWidth <= 0 {
		return 0
	}
	filled := int(b.Width/b.MaxWidth*float64(n) + 0.5)
	return min(max(filled, 0), n)
}

// LayoutBars returns frame offsets for n abilities, centred on the screen.
func LayoutBars(n int, screenW float64) []float64 {
	if n <= 0 {
		return nil
	}
	step := FrameSize + FrameGap
	base := (screenW - float64(n-1)*step) / 2
	offsets := make([]float64, n)
	for i := range offsets {
		offsets[i] = base + float64(i)*step
	}
	return offsets
}

// RelayoutBars moves existing bars for a new screen size.
func RelayoutBars(bars []*Bar, screenW, screenH float64) {
	for i, off := range LayoutBars(len(bars), screenW) {
		bars[i].Place(off, screenH)
	}
}

// BindBars creates one bar per ability of e and binds them.
func BindBars(e *Engine, screenW, screenH float64) []*Bar {
	offsets := LayoutBars(e.Len(), screenW)
	bars := make([]*Bar, len(offsets))
	for i, off := range offsets {
		bars[i] = NewBar(off, screenH)
		e.Bind(i, bars[i])
	}
	return bars
}
