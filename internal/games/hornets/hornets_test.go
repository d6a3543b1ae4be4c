package hornets

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/survive2020/internal/audio"
	"github.com/vovakirdan/survive2020/internal/config"
	"github.com/vovakirdan/survive2020/internal/core"
	"github.com/vovakirdan/survive2020/internal/highscore"
	"github.com/vovakirdan/survive2020/internal/level"
	"github.com/vovakirdan/survive2020/internal/sim"
)

type fixture struct {
	level *level.Level
	rec   *audio.Recorder
	book  *highscore.Book
}

func newLevel(t *testing.T, mutate func(*config.HornetsConfig)) fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultHornetsConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hornets.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	loader := config.NewLoader(config.DifficultyNormal)
	loader.SetUserDir("")
	loader.SetDir(dir)

	f := fixture{rec: &audio.Recorder{}, book: highscore.NewBook(nil, log.New(io.Discard))}
	f.level = level.New(New(), level.Services{
		Scores:  f.book,
		Audio:   f.rec,
		Configs: loader,
		Logger:  log.New(io.Discard),
	})
	rc := core.DefaultConfig()
	rc.Seed = 3
	if err := f.level.Reset(rc); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return f
}

func quiet(c *config.HornetsConfig) {
	c.Bees.IntervalSeconds = 10000
	c.Hornets.IntervalSeconds = 10000
}

func step(l *level.Level, in core.InputFrame, n int) {
	for i := 0; i < n; i++ {
		l.Step(in)
	}
}

func idle() core.InputFrame { return core.NewInputFrame() }

func click(at core.Vec) core.InputFrame {
	in := core.NewInputFrame()
	in.Mouse = core.Pointer{Pos: at, Down: true, Valid: true}
	return in
}

func placeHornet(l *level.Level, at core.Vec) {
	l.World().Spawn(sim.Transient{Kind: Hornet, Pos: at, HalfExtent: 12, ExpireFrame: 1 << 40})
}

func TestBeesSpawnInsideTheirArea(t *testing.T) {
	f := newLevel(t, nil)
	step(f.level, idle(), 29)
	if n := f.level.World().Count(Bee); n != 0 {
		t.Fatalf("bees before frame 30 = %d", n)
	}
	step(f.level, idle(), 1)
	bees := f.level.World().Colliders(Bee)
	if len(bees) != 1 {
		t.Fatalf("bees at frame 30 = %d, want 1", len(bees))
	}
	w, h := core.NewViewport(1, 80, 22).Size()
	p := bees[0].Pos
	if p.X < w*0.16 || p.X > w*0.84 || p.Y < h*0.16 || p.Y > h*0.84 {
		t.Errorf("bee at %v outside the middle of the arena", p)
	}

	step(f.level, idle(), 180)
	for _, b := range f.level.World().Colliders(Bee) {
		if b.Entity == bees[0].Entity {
			t.Error("bee outlived its expiry frame")
		}
	}
}

func TestHornetsFlyTowardsCentre(t *testing.T) {
	f := newLevel(t, func(c *config.HornetsConfig) { c.Bees.IntervalSeconds = 10000 })
	step(f.level, idle(), 60)
	hornets := f.level.World().Colliders(Hornet)
	if len(hornets) < 1 || len(hornets) > 2 {
		t.Fatalf("hornets at one second = %d, want 1..2", len(hornets))
	}

	w, h := core.NewViewport(1, 80, 22).Size()
	center := core.Vec{X: w / 2, Y: h / 2}
	before := core.Distance(hornets[0].Pos, center)
	step(f.level, idle(), 30)
	for _, c := range f.level.World().Colliders(Hornet) {
		if c.Entity == hornets[0].Entity {
			if after := core.Distance(c.Pos, center); after >= before {
				t.Errorf("hornet moved away from the centre: %.1f -> %.1f", before, after)
			}
			return
		}
	}
	t.Fatal("hornet vanished before its expiry")
}

func TestClickSwatsHornet(t *testing.T) {
	f := newLevel(t, quiet)
	step(f.level, idle(), 1)
	placeHornet(f.level, core.Vec{X: 100, Y: 100})

	f.level.Step(click(core.Vec{X: 300, Y: 300}))
	if f.level.World().Count(Hornet) != 1 {
		t.Fatal("a click far away removed the hornet")
	}

	f.level.Step(click(core.Vec{X: 105, Y: 100}))
	if f.level.World().Count(Hornet) != 0 {
		t.Fatal("a click on the hornet did not remove it")
	}
	if f.level.Stats().Score != 1 {
		t.Errorf("score = %d, want 1", f.level.Stats().Score)
	}
	if f.rec.Count(audio.BeeTap) != 1 {
		t.Errorf("bee_tap played %d times", f.rec.Count(audio.BeeTap))
	}
}

func TestClickOutsideArenaIgnored(t *testing.T) {
	f := newLevel(t, quiet)
	step(f.level, idle(), 1)
	placeHornet(f.level, core.Vec{X: 100, Y: 100})

	in := click(core.Vec{X: 100, Y: 100})
	in.Mouse.Valid = false
	f.level.Step(in)
	if f.level.World().Count(Hornet) != 1 {
		t.Error("a click off the arena swatted a hornet")
	}
}

func TestFlySwatterWidensPointer(t *testing.T) {
	f := newLevel(t, func(c *config.HornetsConfig) {
		quiet(c)
		c.Abilities[1].StartCharged = true
	})
	step(f.level, idle(), 1)
	placeHornet(f.level, core.Vec{X: 100, Y: 100})

	f.level.Step(click(core.Vec{X: 140, Y: 100}))
	if f.level.World().Count(Hornet) != 1 {
		t.Fatal("plain pointer reached a hornet 40px away")
	}

	use := core.NewInputFrame()
	use.Press(core.AbilityAction(1))
	f.level.Step(use)
	f.level.Step(click(core.Vec{X: 140, Y: 100}))
	if f.level.World().Count(Hornet) != 0 {
		t.Fatal("swatter should reach a hornet 40px away")
	}
	if f.rec.Count(audio.FlySwat) != 1 {
		t.Errorf("fly_swat played %d times", f.rec.Count(audio.FlySwat))
	}
}

func TestBugSprayClearsHornets(t *testing.T) {
	f := newLevel(t, func(c *config.HornetsConfig) {
		quiet(c)
		c.Abilities[0].StartCharged = true
	})
	step(f.level, idle(), 1)
	for i := 0; i < 4; i++ {
		placeHornet(f.level, core.Vec{X: 50 + float64(i)*100, Y: 60})
	}

	use := core.NewInputFrame()
	use.Press(core.AbilityAction(0))
	f.level.Step(use)
	step(f.level, idle(), 1)

	if n := f.level.World().Count(Hornet); n != 0 {
		t.Errorf("hornets after bug spray = %d", n)
	}
	if f.level.Stats().Score != 4 {
		t.Errorf("score = %d, want 4", f.level.Stats().Score)
	}
	if f.level.Abilities().IsActive(0) {
		t.Error("bug spray should leave the active set after running")
	}
	if f.rec.Count(audio.BugSpray) != 1 {
		t.Errorf("bug_spray played %d times", f.rec.Count(audio.BugSpray))
	}
}

func TestHiveTrapCatchesCentralHornets(t *testing.T) {
	f := newLevel(t, func(c *config.HornetsConfig) {
		quiet(c)
		c.Abilities[2].StartCharged = true
	})
	step(f.level, idle(), 1)
	w, h := core.NewViewport(1, 80, 22).Size()
	placeHornet(f.level, core.Vec{X: w/2 + 50, Y: h / 2})
	placeHornet(f.level, core.Vec{X: 10, Y: 10})

	use := core.NewInputFrame()
	use.Press(core.AbilityAction(2))
	f.level.Step(use)
	step(f.level, idle(), 1)

	if n := f.level.World().Count(Hornet); n != 1 {
		t.Errorf("hornets after trap = %d, want 1", n)
	}
	if f.level.Stats().Score != 1 {
		t.Errorf("score = %d, want 1", f.level.Stats().Score)
	}
	if f.rec.Count(audio.HiveTrap) != 1 {
		t.Errorf("hive_trap played %d times", f.rec.Count(audio.HiveTrap))
	}
}

func TestAbilitiesReadyOnFirstFrame(t *testing.T) {
	f := newLevel(t, quiet)
	e := f.level.Abilities()
	in := core.NewInputFrame()
	for i := 0; i < e.Len(); i++ {
		in.Press(core.AbilityAction(i))
	}
	f.level.Step(in)

	for i := 0; i < e.Len(); i++ {
		if got := e.State(i).Uses; got != 1 {
			t.Errorf("%s uses = %d after first frame, want 1", e.Spec(i).Kind, got)
		}
	}
}

func TestLevelEndsAfterMaxSeconds(t *testing.T) {
	f := newLevel(t, func(c *config.HornetsConfig) {
		quiet(c)
		c.MaxSeconds = 2
	})
	step(f.level, idle(), 1)
	placeHornet(f.level, core.Vec{X: 100, Y: 100})
	f.level.Step(click(core.Vec{X: 100, Y: 100}))

	step(f.level, idle(), 117)
	if f.level.Done() {
		t.Fatal("level ended early")
	}
	step(f.level, idle(), 1)
	if !f.level.Done() {
		t.Fatal("level should end at 2 seconds")
	}
	if f.book.Best(config.HornetsID) != 1 {
		t.Errorf("best = %d, want 1", f.book.Best(config.HornetsID))
	}
}

func TestStatusLine(t *testing.T) {
	f := newLevel(t, quiet)
	step(f.level, idle(), 61)
	scr := core.NewScreen(80, 24)
	f.level.Render(scr, core.NewViewport(1, 80, 22))
	if row := scr.Row(0); !strings.Contains(row, "1s / 150s - Score: 0") {
		t.Errorf("HUD = %q", row)
	}
}
