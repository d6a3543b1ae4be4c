// Package covid implements the Covid level: survive as long as possible
// while covid cells drift in from the edges and super spreaders pop up.
// The score is the number of whole seconds survived.
package covid

import (
	"fmt"
	"math/rand"

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
	Cell       sim.Kind = "covid"
	Spreader   sim.Kind = "super_spreader"
	HealthPack sim.Kind = "health_pack"
	Droplet    sim.Kind = "spray_droplet"
)

// Abilities.
const (
	Mask        ability.Kind = "mask"
	SprayBottle ability.Kind = "spray_bottle"
)

// Player sprite variants.
const (
	playerSprite = "player"
	maskedSprite = "player_masked"
)

func init() {
	registry.Register(registry.Info{ID: config.CovidID, Title: "Covid", Number: 3}, func() level.Rules {
		return New()
	})
}

// Rules implements level.Rules for Covid.
type Rules struct {
	cfg    config.CovidConfig
	diff   *config.Difficulty
	masked bool
}

// New creates the Covid rules.
func New() *Rules {
	return &Rules{}
}

func (r *Rules) Key() string   { return config.CovidID }
func (r *Rules) Title() string { return "Covid" }

// Start loads the tuning, fills the health pool and registers the spawn
// policies.
func (r *Rules) Start(ctx *level.Context) (level.Setup, error) {
	cfg, err := ctx.Configs.Covid()
	if err != nil {
		return level.Setup{}, err
	}
	r.cfg = cfg
	r.diff = config.NewDifficulty(cfg.Difficulty)
	r.masked = false

	ctx.State.MaxHealth = cfg.Health.Max
	ctx.State.Health = cfg.Health.Max

	cells := level.SpawnPolicy(Cell, "covid", 1, cfg.Covid)
	cells.Place = lanePlacement
	ctx.Spawner.Register(cells)
	ctx.Spawner.Register(level.SpawnPolicy(Spreader, "super_spreader", 0, cfg.Spreaders))
	ctx.Spawner.Register(level.SpawnPolicy(HealthPack, "health_pack", 0, cfg.HealthPacks))
	ctx.Spawner.Register(level.SpawnPolicy(Droplet, "spray_droplet", 2, cfg.Droplets))
	ctx.Sprites.Preload("covid", "super_spreader", "health_pack", "spray_droplet", maskedSprite)

	return level.Setup{
		Abilities: level.AbilitySpecs(cfg.Abilities),
		Player:    level.PlayerFrom(playerSprite, cfg.Player),
	}, nil
}

// lanePlacement starts a cell on one of four lanes near the arena edges,
// heading inwards.
func lanePlacement(rng *rand.Rand, arena core.FRect) (core.Vec, sim.Direction) {
	along := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	x := func(f float64) float64 { return arena.MinX + f*arena.Width() }
	y := func(f float64) float64 { return arena.MinY + f*arena.Height() }

	switch rng.Intn(4) {
	case 0:
		return core.Vec{X: x(along(1.0/60, 59.0/60)), Y: y(0.2)}, sim.DirUp
	case 1:
		return core.Vec{X: x(along(1.0/60, 59.0/60)), Y: y(0.8)}, sim.DirDown
	case 2:
		return core.Vec{X: x(0.05), Y: y(along(1.0/6, 5.0/6))}, sim.DirRight
	default:
		return core.Vec{X: x(0.95), Y: y(along(1.0/6, 5.0/6))}, sim.DirLeft
	}
}

// Spawn brings in cells, spreaders and health packs, sprays while the
// bottle is active and ages everything.
func (r *Rules) Spawn(ctx *level.Context) {
	ctx.State.SetScore(ctx.State.Seconds())
	player := ctx.PlayerPos()

	ctx.Spawner.Policy(Cell).Speed = r.diff.Speed(r.cfg.Covid.Speed, ctx.State.Score, ctx.Clock.Frame)
	ctx.Spawner.MaybeSpawn(Cell, ctx.Clock, ctx.RNG, ctx.Arena, player)
	ctx.Spawner.Drift(Cell, ctx.Clock.DT, ctx.RNG)
	ctx.Spawner.CullOutside(Cell, ctx.Arena)

	ctx.Spawner.MaybeSpawn(Spreader, ctx.Clock, ctx.RNG, ctx.Arena, player)
	ctx.Spawner.AgeAndExpire(Spreader, ctx.Clock)

	ctx.Spawner.MaybeSpawn(HealthPack, ctx.Clock, ctx.RNG, ctx.Arena, player)

	if ctx.Abilities.KindActive(SprayBottle) {
		if e, ok := ctx.World.Player(); ok {
			ctx.Spawner.Emit(Droplet, ctx.Clock, ctx.RNG, ctx.World.Position(e).Vec(), ctx.World.Motion(e).Rotation)
		}
	}
	ctx.Spawner.Drift(Droplet, ctx.Clock.DT, ctx.RNG)
	ctx.Spawner.AgeAndExpire(Droplet, ctx.Clock)
	ctx.Spawner.CullOutside(Droplet, ctx.Arena)
}

// Collide squishes sprayed hazards, applies hazard contact unless the mask
// is on and picks up health packs.
func (r *Rules) Collide(ctx *level.Context) {
	shield := ctx.Abilities.KindActive(Mask)
	if shield && !r.masked {
		ctx.World.SetPlayerSprite(ctx.Sprites.MustLoad(maskedSprite))
		r.masked = true
	}

	hazards := append(ctx.World.Colliders(Cell), ctx.World.Colliders(Spreader)...)
	ctx.Resolver.ManyToMany(hazards, ctx.World.Colliders(Droplet), func(_, _ sim.Collider) sim.Outcome {
		ctx.Audio.PlayOnce(audio.CovidSquish)
		return sim.RemoveBoth
	})

	player, ok := ctx.PlayerCollider()
	if !ok {
		return
	}
	if !shield {
		hit := func(_, _ sim.Collider) sim.Outcome {
			r.damage(ctx)
			return sim.RemoveOther
		}
		ctx.Resolver.OneToMany(player, ctx.World.Colliders(Cell), hit)
		ctx.Resolver.OneToMany(player, ctx.World.Colliders(Spreader), hit)
	}
	ctx.Resolver.OneToMany(player, ctx.World.Colliders(HealthPack), func(_, _ sim.Collider) sim.Outcome {
		ctx.State.Heal(r.cfg.Health.Heal)
		ctx.Audio.PlayOnce(audio.Heal)
		return sim.RemoveOther
	})
}

func (r *Rules) damage(ctx *level.Context) {
	if ctx.State.Health == 0 {
		return
	}
	ctx.State.Damage(r.cfg.Health.Damage)
	if ctx.State.Health == 0 {
		ctx.Audio.PlayOnce(audio.CovidDie)
		return
	}
	ctx.Audio.PlayOnce(audio.Cough)
}

// AbilityExpired takes the mask off.
func (r *Rules) AbilityExpired(ctx *level.Context, i int) {
	if ctx.Abilities.Spec(i).Kind != Mask {
		return
	}
	ctx.World.SetPlayerSprite(ctx.Sprites.MustLoad(playerSprite))
	r.masked = false
}

// Over ends the level when health runs out.
func (r *Rules) Over(ctx *level.Context) bool {
	return ctx.State.Health == 0
}

func (r *Rules) Status(ctx *level.Context) string {
	return fmt.Sprintf("%d HP / %d MAX HEALTH - %ds", ctx.State.Health, ctx.State.MaxHealth, ctx.State.Seconds())
}
