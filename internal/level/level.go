// Package level runs one mini-game from start to teardown. A Level owns the
// entity world, the ability engine and the per-level State, and drives the
// game-specific Rules through a fixed per-tick order.
package level

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/survive2020/internal/ability"
	"github.com/vovakirdan/survive2020/internal/assets"
	"github.com/vovakirdan/survive2020/internal/audio"
	"github.com/vovakirdan/survive2020/internal/config"
	"github.com/vovakirdan/survive2020/internal/core"
	"github.com/vovakirdan/survive2020/internal/highscore"
	"github.com/vovakirdan/survive2020/internal/sim"
)

// Phase is the lifecycle stage of a level.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseRunning
	PhaseEnding
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseRunning:
		return "running"
	case PhaseEnding:
		return "ending"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// History records finished runs.
type History interface {
	SaveRun(level string, score uint64, seconds float64) (int64, error)
}

// Dimensions returns the current arena size in logical pixels. It is queried
// every tick.
type Dimensions func() (w, h float64)

// Services are the collaborators a level talks to. Nil fields are replaced
// by no-op or default implementations.
type Services struct {
	Scores  *highscore.Book
	History History
	Audio   audio.Output
	Sprites *assets.Catalog
	Configs *config.Loader
	Screen  Dimensions
	Logger  *log.Logger
}

// PlayerSpec describes the player entity of a level.
type PlayerSpec struct {
	Sprite     string
	Size       float64
	Controller sim.Controller
}

// Setup is what Rules.Start hands back to the level.
type Setup struct {
	Abilities []ability.Spec
	Player    *PlayerSpec // nil for levels without a player
}

// Context is passed to every Rules call. It is only valid during the call.
type Context struct {
	World     *sim.World
	Spawner   *sim.Spawner
	Resolver  *sim.Resolver
	Abilities *ability.Engine
	State     *State
	Clock     sim.Clock
	Arena     core.FRect
	Input     core.InputFrame
	RNG       *rand.Rand
	Audio     audio.Output
	Sprites   *assets.Catalog
	Configs   *config.Loader
	Logger    *log.Logger
}

// PlayerCollider returns the player as a collider if it exists.
func (c *Context) PlayerCollider() (sim.Collider, bool) {
	return c.World.PlayerCollider()
}

// PlayerPos returns the player position, or nil when there is no player.
func (c *Context) PlayerPos() *core.Vec {
	p, ok := c.World.PlayerCollider()
	if !ok {
		return nil
	}
	return &p.Pos
}

// Center returns the centre of the arena.
func (c *Context) Center() core.Vec {
	return core.Vec{
		X: (c.Arena.MinX + c.Arena.MaxX) / 2,
		Y: (c.Arena.MinY + c.Arena.MaxY) / 2,
	}
}

// Rules is the game-specific part of a level.
type Rules interface {
	// Key identifies the level in the high-score table.
	Key() string
	Title() string
	// Start loads tuning, registers spawn policies and returns the roster.
	Start(ctx *Context) (Setup, error)
	// Spawn creates, moves and expires transient entities.
	Spawn(ctx *Context)
	// Collide resolves overlaps and runs pending instant abilities.
	Collide(ctx *Context)
	// AbilityExpired resets the effect of a duration ability that ran out.
	AbilityExpired(ctx *Context, index int)
	// Over is the termination predicate, evaluated at the end of each tick.
	Over(ctx *Context) bool
	// Status is the HUD line.
	Status(ctx *Context) string
}

// Level drives one Rules instance.
type Level struct {
	rules Rules
	svc   Services

	phase   Phase
	cfg     core.RuntimeConfig
	world   *sim.World
	spawner *sim.Spawner
	resolv  *sim.Resolver
	engine  *ability.Engine
	bars    []*ability.Bar
	player  *PlayerSpec
	state   State
	clock   sim.Clock
	rng     *rand.Rand
	arena   core.FRect
	sprites *assets.Catalog

	paused  bool
	escaped bool
	newBest bool
	status  string
}

// New creates a level in the Starting phase.
func New(rules Rules, svc Services) *Level {
	if svc.Audio == nil {
		svc.Audio = audio.Nop{}
	}
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}
	if svc.Configs == nil {
		svc.Configs = config.NewLoader(config.DifficultyNormal)
	}
	if svc.Screen == nil {
		svc.Screen = func() (float64, float64) {
			return core.NewViewport(1, 80, 22).Size()
		}
	}
	return &Level{rules: rules, svc: svc, phase: PhaseStarting}
}

// Key returns the high-score key of the level.
func (l *Level) Key() string { return l.rules.Key() }

// Title returns the display name of the level.
func (l *Level) Title() string { return l.rules.Title() }

// Reset allocates the level resources and enters Running.
func (l *Level) Reset(cfg core.RuntimeConfig) error {
	if l.world != nil {
		l.world.Clear()
	}
	l.cfg = cfg
	l.world = sim.NewWorld(l.rules.Key())
	l.sprites = l.svc.Sprites
	if l.sprites == nil {
		l.sprites = assets.NewCatalog(l.svc.Logger)
	}
	l.spawner = sim.NewSpawner(l.world, l.sprites)
	l.resolv = sim.NewResolver(l.world)
	l.state = State{}
	l.clock = sim.Clock{FrameRate: cfg.TickRate, DT: cfg.DT()}
	if l.clock.FrameRate <= 0 {
		l.clock.FrameRate = 60
	}
	l.rng = rand.New(rand.NewSource(cfg.Seed))
	l.paused, l.escaped, l.newBest = false, false, false
	l.phase = PhaseStarting
	l.refreshArena()

	setup, err := l.rules.Start(l.context(core.NewInputFrame()))
	if err != nil {
		l.phase = PhaseDone
		return fmt.Errorf("level: cannot start %s: %w", l.rules.Key(), err)
	}
	if len(setup.Abilities) > core.MaxAbilitySlots {
		panic(fmt.Sprintf("level: %s has %d abilities, at most %d fit the bar",
			l.rules.Key(), len(setup.Abilities), core.MaxAbilitySlots))
	}
	l.engine = ability.NewEngine(setup.Abilities)
	w, h := l.svc.Screen()
	l.bars = ability.BindBars(l.engine, w, h)
	l.player = setup.Player
	if l.player != nil {
		l.sprites.Preload(l.player.Sprite)
	}
	l.status = l.rules.Status(l.context(core.NewInputFrame()))
	l.phase = PhaseRunning

	l.svc.Logger.Info("level started", "level", l.rules.Key(), "seed", cfg.Seed, "abilities", len(setup.Abilities))
	return nil
}

// Step advances the level by one tick.
func (l *Level) Step(in core.InputFrame) core.StepResult {
	if l.phase != PhaseRunning {
		return core.StepResult{State: l.State()}
	}

	l.sprites.Poll()

	if in.JustPressed(core.ActionBack) {
		l.escaped = true
		l.end()
		return core.StepResult{State: l.State()}
	}
	if in.JustPressed(core.ActionPause) {
		l.paused = !l.paused
	}
	if l.paused {
		return core.StepResult{State: l.State()}
	}

	l.clock.Frame++
	l.refreshArena()
	l.ensurePlayer()
	ctx := l.context(in)

	l.rules.Spawn(ctx)
	l.rules.Collide(ctx)
	l.world.Flush()

	for _, i := range l.engine.Update(l.clock.DT, requestedAbilities(in, l.engine.Len())) {
		l.rules.AbilityExpired(ctx, i)
	}

	l.movePlayer(in)

	l.state.Elapsed += l.clock.DT
	l.clock.Elapsed = l.state.Elapsed
	ctx.Clock = l.clock

	l.status = l.rules.Status(ctx)
	if l.rules.Over(ctx) {
		l.status = l.rules.Status(ctx)
		l.end()
	}
	return core.StepResult{State: l.State()}
}

// end records the result and tears the level down.
func (l *Level) end() {
	l.phase = PhaseEnding
	key := l.rules.Key()
	score := l.state.Score

	if l.svc.Scores != nil {
		l.newBest = l.svc.Scores.Record(key, score)
	}
	if l.svc.History != nil {
		if _, err := l.svc.History.SaveRun(key, score, l.state.Elapsed); err != nil {
			l.svc.Logger.Error("cannot save run", "level", key, "err", err)
		}
	}
	removed := l.world.Clear()
	l.phase = PhaseDone

	l.svc.Logger.Info("level ended",
		"level", key,
		"score", score,
		"seconds", l.state.Seconds(),
		"escaped", l.escaped,
		"new_best", l.newBest,
		"entities", removed,
	)
}

func (l *Level) ensurePlayer() {
	if l.player == nil {
		return
	}
	if _, ok := l.world.Player(); ok {
		return
	}
	sprite, ok := l.sprites.Load(l.player.Sprite)
	if !ok {
		return
	}
	center := core.Vec{X: (l.arena.MinX + l.arena.MaxX) / 2, Y: (l.arena.MinY + l.arena.MaxY) / 2}
	l.world.SpawnPlayer(center, l.player.Size/2, sprite)
}

func (l *Level) movePlayer(in core.InputFrame) {
	if l.player == nil {
		return
	}
	e, ok := l.world.Player()
	if !ok {
		return
	}
	l.player.Controller.Apply(in, l.clock.DT, l.world.Position(e), l.world.Motion(e), l.arena.Width(), l.arena.Height())
}

// refreshArena re-reads the screen size every tick and moves the ability
// bars when it changed.
func (l *Level) refreshArena() {
	w, h := l.svc.Screen()
	if w == l.arena.Width() && h == l.arena.Height() {
		return
	}
	l.arena = core.FRect{MaxX: w, MaxY: h}
	ability.RelayoutBars(l.bars, w, h)
}

func (l *Level) context(in core.InputFrame) *Context {
	return &Context{
		World:     l.world,
		Spawner:   l.spawner,
		Resolver:  l.resolv,
		Abilities: l.engine,
		State:     &l.state,
		Clock:     l.clock,
		Arena:     l.arena,
		Input:     in,
		RNG:       l.rng,
		Audio:     l.svc.Audio,
		Sprites:   l.sprites,
		Configs:   l.svc.Configs,
		Logger:    l.svc.Logger,
	}
}

func requestedAbilities(in core.InputFrame, n int) []int {
	var req []int
	for i := 0; i < n; i++ {
		if in.JustPressed(core.AbilityAction(i)) {
			req = append(req, i)
		}
	}
	return req
}

// State returns the platform-facing summary of the level.
func (l *Level) State() core.GameState {
	return core.GameState{
		Score:    l.state.Score,
		GameOver: l.phase == PhaseDone,
		Paused:   l.paused,
	}
}

// Phase returns the lifecycle stage.
func (l *Level) Phase() Phase { return l.phase }

// Done reports whether the level finished and was torn down.
func (l *Level) Done() bool { return l.phase == PhaseDone }

// Escaped reports whether the player left with escape.
func (l *Level) Escaped() bool { return l.escaped }

// NewBest reports whether the finished run set a new best score.
func (l *Level) NewBest() bool { return l.newBest }

// Stats returns a copy of the level state.
func (l *Level) Stats() State { return l.state }

// Frame returns the current frame number.
func (l *Level) Frame() uint64 { return l.clock.Frame }

// World exposes the entity world.
func (l *Level) World() *sim.World { return l.world }

// Abilities exposes the ability engine.
func (l *Level) Abilities() *ability.Engine { return l.engine }
