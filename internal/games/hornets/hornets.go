// Package hornets implements the Hornets level. There is no player entity:
// the mouse pointer is the swatter, and the level lasts a fixed time.
package hornets

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/survive2020/internal/ability"
	"github.com/vovakirdan/survive2020/internal/audio"
	"github.com/vovakirdan/survive2020/internal/config"
	"github.com/vovakirdan/survive2020/internal/core"
	"github.com/vovakirdan/survive2020/internal/level"
	"github.com/vovakirdan/survive2020/internal/registry"
	"github.com/vovakirdan/survive2020/internal/sim"
)

// Entity kinds.
const (
	Bee    sim.Kind = "bee"
	Hornet sim.Kind = "hornet"
)

// Abilities.
const (
	BugSpray   ability.Kind = "bug_spray"
	FlySwatter ability.Kind = "fly_swatter"
	HiveTrap   ability.Kind = "hive_trap"
)

func init() {
	registry.Register(registry.Info{ID: config.HornetsID, Title: "Hornets", Number: 2}, func() level.Rules {
		return New()
	})
}

// Rules implements level.Rules for Hornets.
type Rules struct {
	cfg       config.HornetsConfig
	diff      *config.Difficulty
	swatterOn bool
	trapOn    bool
}

// New creates the Hornets rules.
func New() *Rules {
	return &Rules{}
}

func (r *Rules) Key() string   { return config.HornetsID }
func (r *Rules) Title() string { return "Hornets" }

// Start loads the tuning and registers the spawn policies.
func (r *Rules) Start(ctx *level.Context) (level.Setup, error) {
	cfg, err := ctx.Configs.Hornets()
	if err != nil {
		return level.Setup{}, err
	}
	r.cfg = cfg
	r.diff = config.NewDifficulty(cfg.Difficulty)
	r.swatterOn, r.trapOn = false, false

	ctx.Spawner.Register(level.SpawnPolicy(Bee, "bee", 0, cfg.Bees))
	hornet := level.SpawnPolicy(Hornet, "hornet", 1, cfg.Hornets)
	hornet.Place = edgePlacement
	ctx.Spawner.Register(hornet)
	ctx.Sprites.Preload("bee", "hornet")

	return level.Setup{Abilities: level.AbilitySpecs(cfg.Abilities)}, nil
}

// edgePlacement picks a point on a random edge of the arena.
func edgePlacement(rng *rand.Rand, arena core.FRect) (core.Vec, sim.Direction) {
	switch rng.Intn(4) {
	case 0:
		return core.Vec{X: arena.MinX + rng.Float64()*arena.Width(), Y: arena.MaxY}, sim.DirDown
	case 1:
		return core.Vec{X: arena.MinX + rng.Float64()*arena.Width(), Y: arena.MinY}, sim.DirUp
	case 2:
		return core.Vec{X: arena.MinX, Y: arena.MinY + rng.Float64()*arena.Height()}, sim.DirRight
	default:
		return core.Vec{X: arena.MaxX, Y: arena.MinY + rng.Float64()*arena.Height()}, sim.DirLeft
	}
}

// Spawn places bees and hornets, aims new hornets at the centre and ages
// everything.
func (r *Rules) Spawn(ctx *level.Context) {
	ctx.Spawner.MaybeSpawn(Bee, ctx.Clock, ctx.RNG, ctx.Arena, nil)
	ctx.Spawner.AgeAndExpire(Bee, ctx.Clock)

	speed := r.diff.Speed(r.cfg.Hornets.Speed, ctx.State.Score, ctx.Clock.Frame)
	center := ctx.Center()
	for _, e := range ctx.Spawner.MaybeSpawn(Hornet, ctx.Clock, ctx.RNG, ctx.Arena, nil) {
		pos := ctx.World.Position(e).Vec()
		to := r2.Sub(center, pos)
		if n := r2.Norm(to); n > 0 {
			ctx.World.Motion(e).Velocity = core.Scale(to, speed/n)
		}
	}
	ctx.Spawner.AgeAndExpire(Hornet, ctx.Clock)
	ctx.Spawner.Drift(Hornet, ctx.Clock.DT, ctx.RNG)
}

// Collide runs the abilities and the pointer.
func (r *Rules) Collide(ctx *level.Context) {
	if i, ok := ctx.Abilities.IndexOf(BugSpray); ok && ctx.Abilities.IsActive(i) {
		for _, h := range ctx.World.Colliders(Hornet) {
			if ctx.World.Remove(h.Entity) {
				ctx.State.AddScore(1)
			}
		}
		ctx.Audio.PlayOnce(audio.BugSpray)
		ctx.Abilities.Deactivate(i)
	}

	swatter := ctx.Abilities.KindActive(FlySwatter)
	if swatter && !r.swatterOn {
		ctx.Audio.PlayOnce(audio.FlySwat)
	}
	r.swatterOn = swatter

	trap := ctx.Abilities.KindActive(HiveTrap)
	if trap && !r.trapOn {
		ctx.Audio.PlayOnce(audio.HiveTrap)
	}
	r.trapOn = trap
	if trap {
		hive := sim.Collider{Pos: ctx.Center(), HalfExtent: r.cfg.TrapRadius, Virtual: true}
		ctx.Resolver.OneToMany(hive, ctx.World.Colliders(Hornet), func(_, _ sim.Collider) sim.Outcome {
			ctx.State.AddScore(1)
			return sim.RemoveOther
		})
	}

	if !ctx.Input.MouseDown() {
		return
	}
	pos, _ := ctx.Input.MousePosition()
	pointer := sim.Collider{Pos: pos, HalfExtent: r.cfg.PointerSize, Virtual: true}
	if swatter {
		pointer.HalfExtent = r.cfg.SwatterSize
	}
	ctx.Resolver.OneToMany(pointer, ctx.World.Colliders(Hornet), func(_, _ sim.Collider) sim.Outcome {
		ctx.State.AddScore(1)
		ctx.Audio.PlayOnce(audio.BeeTap)
		return sim.RemoveOther
	})
}

// AbilityExpired clears the edge trackers so the next use plays its cue.
func (r *Rules) AbilityExpired(ctx *level.Context, i int) {
	switch ctx.Abilities.Spec(i).Kind {
	case FlySwatter:
		r.swatterOn = false
	case HiveTrap:
		r.trapOn = false
	}
}

// Over ends the level when the clock runs out.
func (r *Rules) Over(ctx *level.Context) bool {
	return float64(ctx.Clock.Frame) >= r.cfg.MaxSeconds*float64(ctx.Clock.FrameRate)
}

func (r *Rules) Status(ctx *level.Context) string {
	return fmt.Sprintf("%ds / %ds - Score: %d", ctx.State.Seconds(), int(r.cfg.MaxSeconds), ctx.State.Score)
}
