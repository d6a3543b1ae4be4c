// Package wildfires implements the Wildfires level: a firefighter sprays
// water on fires that keep breaking out, and the level is lost once the
// number of burning fires goes over a cap that shrinks with time.
package wildfires

import (
	"fmt"
	"math"

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
	Fire    sim.Kind = "fire"
	Droplet sim.Kind = "water_droplet"
)

// Abilities.
const (
	Bucket    ability.Kind = "bucket"
	Retardant ability.Kind = "retardant"
)

func init() {
	registry.Register(registry.Info{ID: config.WildfiresID, Title: "Wildfires", Number: 1}, func() level.Rules {
		return New()
	})
}

// Rules implements level.Rules for Wildfires.
type Rules struct {
	cfg  config.WildfiresConfig
	diff *config.Difficulty
}

// New creates the Wildfires rules.
func New() *Rules {
	return &Rules{}
}

func (r *Rules) Key() string   { return config.WildfiresID }
func (r *Rules) Title() string { return "Wildfires" }

// Start loads the tuning and registers the spawn policies.
func (r *Rules) Start(ctx *level.Context) (level.Setup, error) {
	cfg, err := ctx.Configs.Wildfires()
	if err != nil {
		return level.Setup{}, err
	}
	r.cfg = cfg
	r.diff = config.NewDifficulty(cfg.Difficulty)

	ctx.Spawner.Register(level.SpawnPolicy(Fire, "fire", 0, cfg.Fires))
	ctx.Spawner.Register(level.SpawnPolicy(Droplet, "water_droplet", 2, cfg.Droplets))
	ctx.Sprites.Preload("fire", "water_droplet")

	return level.Setup{
		Abilities: level.AbilitySpecs(cfg.Abilities),
		Player:    level.PlayerFrom("firefighter", cfg.Player),
	}, nil
}

// Spawn starts fires, sprays water while fire is held and ages both.
func (r *Rules) Spawn(ctx *level.Context) {
	if !ctx.Abilities.KindActive(Retardant) {
		if created := ctx.Spawner.MaybeSpawn(Fire, ctx.Clock, ctx.RNG, ctx.Arena, ctx.PlayerPos()); len(created) > 0 {
			ctx.Audio.PlayOnce(audio.Fire)
		}
	}
	ctx.Spawner.AgeAndExpire(Fire, ctx.Clock)

	if ctx.Input.Has(core.ActionFire) && r.hoseDue(ctx.Clock.Frame) {
		if e, ok := ctx.World.Player(); ok {
			pos := ctx.World.Position(e).Vec()
			ctx.Spawner.Emit(Droplet, ctx.Clock, ctx.RNG, pos, ctx.World.Motion(e).Rotation)
		}
	}
	ctx.Spawner.Drift(Droplet, ctx.Clock.DT, ctx.RNG)
	ctx.Spawner.AgeAndExpire(Droplet, ctx.Clock)
	ctx.Spawner.CullOutside(Droplet, ctx.Arena)
}

func (r *Rules) hoseDue(frame uint64) bool {
	every := uint64(max(r.cfg.HoseEvery, 1))
	return frame%every == 0
}

// Collide runs the bucket and puts out fires hit by droplets.
func (r *Rules) Collide(ctx *level.Context) {
	if i, ok := ctx.Abilities.IndexOf(Bucket); ok && ctx.Abilities.IsActive(i) {
		r.dumpBucket(ctx)
		ctx.Abilities.Deactivate(i)
	}

	ctx.Resolver.ManyToMany(ctx.World.Colliders(Fire), ctx.World.Colliders(Droplet), func(_, _ sim.Collider) sim.Outcome {
		ctx.State.AddScore(1)
		ctx.Audio.PlayOnce(audio.FireOut)
		return sim.RemoveBoth
	})
}

func (r *Rules) dumpBucket(ctx *level.Context) {
	ctx.Audio.PlayOnce(audio.Bucket)
	player, ok := ctx.PlayerCollider()
	if !ok {
		return
	}
	for _, fire := range ctx.World.Colliders(Fire) {
		if core.Distance(player.Pos, fire.Pos) <= r.cfg.BucketRadius {
			ctx.World.Remove(fire.Entity)
			ctx.State.AddScore(1)
		}
	}
}

// AbilityExpired has nothing to reset: retardant only gates spawning.
func (r *Rules) AbilityExpired(*level.Context, int) {}

// Cap returns the number of fires the level tolerates right now.
func (r *Rules) Cap(ctx *level.Context) int {
	c := r.cfg.FireCap
	return int(math.Round(r.diff.Lerp(float64(c.Start), float64(c.End), ctx.State.Score, ctx.Clock.Frame)))
}

// Over ends the level once the fires outnumber the cap.
func (r *Rules) Over(ctx *level.Context) bool {
	return ctx.World.Count(Fire) > r.Cap(ctx)
}

func (r *Rules) Status(ctx *level.Context) string {
	return fmt.Sprintf("Fires: %d/%d - Score: %d", ctx.World.Count(Fire), r.Cap(ctx), ctx.State.Score)
}
