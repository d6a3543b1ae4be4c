package session

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/survive2020/internal/config"
	"github.com/vovakirdan/survive2020/internal/core"
	_ "github.com/vovakirdan/survive2020/internal/games/covid"
	_ "github.com/vovakirdan/survive2020/internal/games/hornets"
	_ "github.com/vovakirdan/survive2020/internal/games/wildfires"
	"github.com/vovakirdan/survive2020/internal/highscore"
	"github.com/vovakirdan/survive2020/internal/level"
)

type memStore struct {
	table highscore.Table
	saves int
}

func (m *memStore) LoadHighScores() (highscore.Table, error) {
	out := highscore.Table{}
	for k, v := range m.table {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SaveHighScores(t highscore.Table) error {
	m.table = t
	m.saves++
	return nil
}

func newController(t *testing.T, store *memStore, exitAfter bool) *Controller {
	t.Helper()
	loader := config.NewLoader(config.DifficultyNormal)
	loader.SetUserDir("")
	loader.SetDir(t.TempDir())
	logger := log.New(io.Discard)

	rc := core.DefaultConfig()
	rc.Seed = 5
	return New(Options{
		Services: level.Services{
			Scores:  highscore.NewBook(store, logger),
			Configs: loader,
			Logger:  logger,
		},
		Runtime:        rc,
		ExitAfterLevel: exitAfter,
	})
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Press(a)
	return in
}

func idle() core.InputFrame { return core.NewInputFrame() }

func TestMenuListsLevelsWithBestScores(t *testing.T) {
	c := newController(t, &memStore{table: highscore.Table{config.CovidID: 7}}, false)
	if c.Mode() != ModeMenu {
		t.Fatalf("mode = %v, want menu", c.Mode())
	}

	entries := c.Entries()
	want := []string{config.WildfiresID, config.HornetsID, config.CovidID}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, id := range want {
		if entries[i].Info.ID != id || entries[i].Info.Number != i+1 {
			t.Errorf("entry %d = %+v, want %s", i, entries[i].Info, id)
		}
	}
	if entries[2].Best != 7 {
		t.Errorf("covid best = %d, want 7", entries[2].Best)
	}

	scr := core.NewScreen(80, 24)
	c.Render(scr, core.NewViewport(1, 80, 22))
	out := scr.String()
	if !strings.Contains(out, menuTitle) || !strings.Contains(out, "Best: 7") {
		t.Errorf("menu render missing title or score:\n%s", out)
	}
}

func TestNumberKeyStartsLevel(t *testing.T) {
	c := newController(t, &memStore{}, false)
	c.Step(press(core.AbilityAction(1)))

	if c.Mode() != ModeLevel {
		t.Fatalf("mode = %v, want level", c.Mode())
	}
	if c.Active().Key() != config.HornetsID {
		t.Errorf("active = %s, want hornets", c.Active().Key())
	}

	c.Step(idle())
	c.Step(press(core.ActionBack))
	if c.Mode() != ModeMenu || c.Active() != nil {
		t.Fatalf("escape should return to the menu, mode %v", c.Mode())
	}
	if c.Banner() != "" {
		t.Errorf("banner after a zero score = %q", c.Banner())
	}
}

func TestCursorAndEnter(t *testing.T) {
	c := newController(t, &memStore{}, false)
	c.Step(press(core.ActionDown))
	c.Step(press(core.ActionDown))
	c.Step(press(core.ActionDown))
	if c.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", c.Cursor())
	}
	c.Step(press(core.ActionUp))
	c.Step(press(core.ActionConfirm))
	if c.Mode() != ModeLevel || c.Active().Key() != config.HornetsID {
		t.Fatalf("enter on the second line should start hornets")
	}
}

func TestNewBestBannerAndRefresh(t *testing.T) {
	store := &memStore{}
	c := newController(t, store, false)
	c.Step(press(core.AbilityAction(2)))
	for i := 0; i < 70; i++ {
		c.Step(idle())
	}
	c.Step(press(core.ActionBack))

	if c.Mode() != ModeMenu {
		t.Fatalf("mode = %v, want menu", c.Mode())
	}
	if !strings.Contains(c.Banner(), "New best for Covid: 1") {
		t.Errorf("banner = %q", c.Banner())
	}
	if c.Entries()[2].Best != 1 {
		t.Errorf("menu best = %d, want 1", c.Entries()[2].Best)
	}
	if store.saves != 1 || store.table[config.CovidID] != 1 {
		t.Errorf("store = %v after %d saves", store.table, store.saves)
	}
}

func TestQuitFromMenu(t *testing.T) {
	c := newController(t, &memStore{}, false)
	c.Step(press(core.ActionQuit))
	if !c.Quit() {
		t.Fatal("q in the menu should quit")
	}
}

func TestExitAfterLevel(t *testing.T) {
	c := newController(t, &memStore{}, true)
	if err := c.Play(config.WildfiresID); err != nil {
		t.Fatal(err)
	}
	c.Step(idle())
	c.Step(press(core.ActionBack))
	if !c.Quit() {
		t.Fatalf("mode = %v, want quit", c.Mode())
	}
}

func TestPlayUnknownLevel(t *testing.T) {
	c := newController(t, &memStore{}, false)
	if err := c.Play("tetris"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if c.Mode() != ModeMenu {
		t.Errorf("mode = %v, want menu", c.Mode())
	}
}

func TestMenuShowsBannerAndError(t *testing.T) {
	c := newController(t, &memStore{}, false)
	c.Step(press(core.AbilityAction(2)))
	for i := 0; i < 70; i++ {
		c.Step(idle())
	}
	c.Step(press(core.ActionBack))
	if err := c.Play("tetris"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}

	scr := core.NewScreen(80, 24)
	c.Render(scr, core.NewViewport(1, 80, 22))
	out := scr.String()
	if !strings.Contains(out, "New best for Covid: 1") {
		t.Errorf("banner lost from menu:\n%s", out)
	}
	if !strings.Contains(out, "tetris") {
		t.Errorf("error missing from menu:\n%s", out)
	}
}

func TestWatcherEventsAreDrained(t *testing.T) {
	c := newController(t, &memStore{}, false)
	w := &config.Watcher{Events: make(chan string, 2), Errors: make(chan error, 1)}
	c.opts.Watcher = w
	w.Events <- config.CovidID
	w.Events <- config.HornetsID

	c.Step(idle())
	if len(w.Events) != 0 {
		t.Errorf("%d events left after a tick", len(w.Events))
	}

	close(w.Events)
	c.Step(idle())
	if c.opts.Watcher != nil {
		t.Error("closed watcher should be dropped")
	}
}
