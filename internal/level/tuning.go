package level

import (
	"github.com/vovakirdan/survive2020/internal/ability"
	"github.com/vovakirdan/survive2020/internal/config"
	"github.com/vovakirdan/survive2020/internal/sim"
)

// AbilitySpecs converts a configured roster, keeping its order.
func AbilitySpecs(cfgs []config.AbilityConfig) []ability.Spec {
	specs := make([]ability.Spec, 0, len(cfgs))
	for _, c := range cfgs {
		icon := '?'
		if r := []rune(c.Icon); len(r) > 0 {
			icon = r[0]
		}
		specs = append(specs, ability.Spec{
			Kind:            ability.Kind(c.Kind),
			Name:            c.Name,
			Icon:            icon,
			ChargeSeconds:   c.ChargeSeconds,
			DurationSeconds: c.DurationSeconds,
			MaxUses:         c.MaxUses,
			StartCharged:    c.StartCharged,
		})
	}
	return specs
}

// SpawnPolicy converts a configured spawn block. The expiry basis follows
// which limit is set: frame range first, then seconds alive.
func SpawnPolicy(kind sim.Kind, sprite string, z float64, c config.SpawnConfig) sim.Policy {
	p := sim.Policy{
		Kind:            kind,
		Sprite:          sprite,
		Interval:        c.IntervalSeconds,
		MinCount:        c.MinCount,
		MaxCount:        c.MaxCount,
		Growth:          c.GrowthSeconds,
		Area:            sim.Area{MinX: c.Area.MinX, MinY: c.Area.MinY, MaxX: c.Area.MaxX, MaxY: c.Area.MaxY},
		HalfExtent:      c.Size / 2,
		Z:               z,
		Exclusion:       c.Exclusion,
		Capacity:        c.Capacity,
		Speed:           c.Speed,
		Jitter:          c.Jitter,
		ExpireFramesMin: c.ExpireFramesMin,
		ExpireFramesMax: c.ExpireFramesMax,
		MaxSecondsAlive: c.MaxSecondsAlive,
	}
	if p.Area == (sim.Area{}) {
		p.Area = sim.FullArea
	}
	switch {
	case c.ExpireFramesMax > 0 || c.ExpireFramesMin > 0:
		p.Expiry = sim.ExpireFrames
	case c.MaxSecondsAlive > 0:
		p.Expiry = sim.ExpireSeconds
	default:
		p.Expiry = sim.ExpireNever
	}
	return p
}

// PlayerFrom builds the player spec of a level.
func PlayerFrom(sprite string, c config.PlayerConfig) *PlayerSpec {
	return &PlayerSpec{
		Sprite: sprite,
		Size:   c.Size,
		Controller: sim.Controller{
			Speed:         c.Speed,
			RotationSpeed: c.RotationSpeed,
			HalfExtent:    c.Size / 2,
		},
	}
}
