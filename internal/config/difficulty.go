package config

import (
	"github.com/vovakirdan/survive2020/internal/core"
)

// Difficulty turns a level's progress into a 0..1 difficulty level that
// starts at the configured initial level and reaches 1 at max_at.
type Difficulty struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficulty creates the curve of a level.
func NewDifficulty(cfg DifficultyConfig) *Difficulty {
	return &Difficulty{cfg: cfg, start: core.ClampF(cfg.InitialLevel, 0, 1)}
}

// IsEnabled reports whether the level rises over time.
func (d *Difficulty) IsEnabled() bool {
	switch d.cfg.Progression.Type {
	case "score", "time":
		return d.cfg.Enabled
	}
	return false
}

// Progress is how far along the curve a run is, in 0..1. "time" curves
// count frames.
func (d *Difficulty) Progress(score, frames uint64) float64 {
	if !d.IsEnabled() {
		return 0
	}
	x := float64(frames)
	if d.cfg.Progression.Type == "score" {
		x = float64(score)
	}
	return core.ClampF(x/float64(max(d.cfg.Progression.MaxAt, 1)), 0, 1)
}

// Level is the current difficulty level.
func (d *Difficulty) Level(score, frames uint64) float64 {
	return d.start + (1-d.start)*d.Progress(score, frames)
}

// Speed scales a hazard speed: base at level 0, base*(1+speed_multiplier)
// at level 1.
func (d *Difficulty) Speed(base float64, score, frames uint64) float64 {
	return base * (1 + d.Level(score, frames)*d.cfg.Scaling.SpeedMultiplier)
}

// Lerp moves from `from` (easiest) to `to` (hardest) with the level.
func (d *Difficulty) Lerp(from, to float64, score, frames uint64) float64 {
	return from + (to-from)*d.Level(score, frames)
}
