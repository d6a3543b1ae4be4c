// Package session owns the menu and the level that is currently being
// played. Platforms feed it one InputFrame per tick and ask it to render
// into a Screen; the controller itself knows nothing about terminals.
package session

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/survive2020/internal/config"
	"github.com/vovakirdan/survive2020/internal/core"
	"github.com/vovakirdan/survive2020/internal/level"
	"github.com/vovakirdan/survive2020/internal/registry"
)

// Mode is what the controller is showing.
type Mode int

const (
	ModeMenu Mode = iota
	ModeLevel
	ModeQuit
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeLevel:
		return "level"
	case ModeQuit:
		return "quit"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Options configures a Controller.
type Options struct {
	Services level.Services
	Runtime  core.RuntimeConfig
	// Watcher, when set, is drained every tick so config edits are logged.
	Watcher *config.Watcher
	// ExitAfterLevel quits instead of returning to the menu.
	ExitAfterLevel bool
}

// MenuEntry is one line of the level-select menu.
type MenuEntry struct {
	Info registry.Info
	Best uint64
}

// Controller is the menu <-> level stack.
type Controller struct {
	opts   Options
	logger *log.Logger

	mode    Mode
	entries []MenuEntry
	cursor  int
	banner  string
	err     string
	active  *level.Level
	runs    int
}

// New creates a controller showing the menu.
func New(opts Options) *Controller {
	if opts.Services.Logger == nil {
		opts.Services.Logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	c := &Controller{opts: opts, logger: opts.Services.Logger}
	c.enterMenu()
	return c
}

// enterMenu reloads the best scores and lists the registered levels.
func (c *Controller) enterMenu() {
	c.mode = ModeMenu
	c.active = nil
	if book := c.opts.Services.Scores; book != nil {
		if err := book.Reload(); err != nil {
			c.logger.Error("cannot load high scores", "err", err)
		}
	}

	infos := registry.List()
	c.entries = make([]MenuEntry, len(infos))
	for i, info := range infos {
		c.entries[i] = MenuEntry{Info: info}
		if book := c.opts.Services.Scores; book != nil {
			c.entries[i].Best = book.Best(info.ID)
		}
	}
	if c.cursor >= len(c.entries) {
		c.cursor = 0
	}
}

// Play constructs the level and makes it active.
func (c *Controller) Play(id string) error {
	rules, err := registry.Create(id)
	if err != nil {
		c.err = err.Error()
		return err
	}
	lvl := level.New(rules, c.opts.Services)

	cfg := c.opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	} else {
		cfg.Seed += int64(c.runs)
	}
	c.runs++

	if err := lvl.Reset(cfg); err != nil {
		c.err = err.Error()
		c.logger.Error("cannot start level", "level", id, "err", err)
		return err
	}
	c.err = ""
	c.banner = ""
	c.active = lvl
	c.mode = ModeLevel
	return nil
}

// Step advances the controller by one tick.
func (c *Controller) Step(in core.InputFrame) {
	c.drainWatcher()

	switch c.mode {
	case ModeMenu:
		c.stepMenu(in)
	case ModeLevel:
		c.active.Step(in)
		if c.active.Done() {
			c.finish()
		}
	}
}

func (c *Controller) stepMenu(in core.InputFrame) {
	switch {
	case in.JustPressed(core.ActionQuit):
		c.mode = ModeQuit
		return
	case in.JustPressed(core.ActionUp):
		if c.cursor > 0 {
			c.cursor--
		}
	case in.JustPressed(core.ActionDown):
		if c.cursor < len(c.entries)-1 {
			c.cursor++
		}
	case in.JustPressed(core.ActionConfirm):
		if len(c.entries) > 0 {
			_ = c.Play(c.entries[c.cursor].Info.ID)
		}
		return
	}

	for slot := 0; slot < core.MaxAbilitySlots; slot++ {
		if !in.JustPressed(core.AbilityAction(slot)) {
			continue
		}
		if info, ok := registry.ByNumber(slot + 1); ok {
			_ = c.Play(info.ID)
		}
		return
	}
}

// finish pops the finished level and returns to the menu.
func (c *Controller) finish() {
	lvl := c.active
	banner := ""
	if lvl.NewBest() {
		banner = fmt.Sprintf("New best for %s: %d!", lvl.Title(), lvl.Stats().Score)
	}
	if c.opts.ExitAfterLevel {
		c.mode = ModeQuit
		c.banner = banner
		return
	}
	c.enterMenu()
	c.banner = banner
}

func (c *Controller) drainWatcher() {
	w := c.opts.Watcher
	if w == nil {
		return
	}
	for {
		select {
		case id, ok := <-w.Events:
			if !ok {
				c.opts.Watcher = nil
				return
			}
			c.logger.Info("config changed", "level", id)
		case err, ok := <-w.Errors:
			if !ok {
				c.opts.Watcher = nil
				return
			}
			c.logger.Warn("config watcher", "err", err)
		default:
			return
		}
	}
}

// Mode returns what the controller is showing.
func (c *Controller) Mode() Mode { return c.mode }

// Quit reports whether the session is over.
func (c *Controller) Quit() bool { return c.mode == ModeQuit }

// Active returns the level being played, or nil in the menu.
func (c *Controller) Active() *level.Level { return c.active }

// Entries returns the menu lines.
func (c *Controller) Entries() []MenuEntry { return c.entries }

// Cursor returns the highlighted menu line.
func (c *Controller) Cursor() int { return c.cursor }

// Banner returns the message shown above the menu, if any.
func (c *Controller) Banner() string { return c.banner }
