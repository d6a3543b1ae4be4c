// Package tui runs a session controller in a terminal with Bubble Tea: a
// fixed tick drives the simulation, keys are latched into held actions and
// the screen buffer is painted with lipgloss colours.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/survive2020/internal/core"
	"github.com/vovakirdan/survive2020/internal/session"
)

// DefaultKeyHold is how many ticks a key report counts as held. It covers
// the gap before terminal auto-repeat kicks in.
const DefaultKeyHold = 8

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

func tickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Options configures a Model.
type Options struct {
	Session session.Options
	Width   int
	Height  int
	KeyHold int
	// Start is played right away instead of showing the menu first.
	Start string
	// ScreenshotDir receives ctrl+s dumps; empty disables them.
	ScreenshotDir string
}

// display is the viewport shared between the model and the levels, which
// read the arena size every tick.
type display struct {
	vp core.Viewport
}

func (d *display) size() (float64, float64) { return d.vp.Size() }

// viewportFor reserves the HUD line on top and the ability bar at the bottom.
func viewportFor(cols, rows int) core.Viewport {
	return core.NewViewport(1, cols, max(rows-2, 1))
}

// Model is the Bubble Tea model around a session controller.
type Model struct {
	ctrl     *session.Controller
	screen   *core.Screen
	disp     *display
	keys     *KeyMapper
	latch    *KeyLatch
	pointer  *core.Pointer
	fps      int
	shotDir  string
	quitting bool
}

// NewModel creates the model and its session controller.
func NewModel(opts Options) Model {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	if opts.KeyHold <= 0 {
		opts.KeyHold = DefaultKeyHold
	}
	fps := opts.Session.Runtime.TickRate
	if fps <= 0 {
		fps = 60
		opts.Session.Runtime.TickRate = fps
	}
	opts.Session.Runtime.ScreenW = opts.Width
	opts.Session.Runtime.ScreenH = opts.Height

	disp := &display{vp: viewportFor(opts.Width, opts.Height)}
	opts.Session.Services.Screen = disp.size

	return Model{
		ctrl:    session.New(opts.Session),
		screen:  core.NewScreen(opts.Width, opts.Height),
		disp:    disp,
		keys:    NewKeyMapper(),
		latch:   NewKeyLatch(opts.KeyHold),
		pointer: &core.Pointer{},
		fps:     fps,
		shotDir: opts.ScreenshotDir,
	}
}

// Controller returns the wrapped session controller.
func (m Model) Controller() *session.Controller { return m.ctrl }

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		action, quit := m.keys.MapKey(msg)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		m.latch.Press(action)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.disp.vp = viewportFor(msg.Width, msg.Height)

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	pos, ok := m.disp.vp.ToWorld(msg.X, msg.Y)
	m.pointer.Pos = pos
	m.pointer.Valid = ok
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.pointer.Down = true
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := core.NewInputFrame()
	m.latch.Frame(&in)
	in.Mouse = *m.pointer
	m.pointer.Down = false

	prev := m.ctrl.Mode()
	m.ctrl.Step(in)
	if m.ctrl.Mode() != prev {
		m.latch.Release()
	}
	if m.ctrl.Quit() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.fps)
}

func (m Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	m.ctrl.Render(m.screen, m.disp.vp)
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return
	}
	name := fmt.Sprintf("survive2020_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(filepath.Join(m.shotDir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.ctrl.Render(m.screen, m.disp.vp)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	m := NewModel(opts)
	if opts.Start != "" {
		if err := m.ctrl.Play(opts.Start); err != nil {
			return err
		}
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
