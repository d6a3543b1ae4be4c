// Package config provides YAML-based level configuration loading and
// difficulty management.
package config

import "fmt"

// WildfiresConfig contains all configuration for the Wildfires level.
type WildfiresConfig struct {
	Player       PlayerConfig     `yaml:"player"`
	Fires        SpawnConfig      `yaml:"fires"`
	Droplets     SpawnConfig      `yaml:"droplets"`
	HoseEvery    int              `yaml:"hose_every_frames"` // frames between droplets while spraying
	FireCap      FireCapConfig    `yaml:"fire_cap"`
	BucketRadius float64          `yaml:"bucket_radius"`
	Abilities    []AbilityConfig  `yaml:"abilities"`
	Difficulty   DifficultyConfig `yaml:"difficulty"`
}

// FireCapConfig is the number of fires that ends the level. It shrinks from
// Start to End as difficulty rises.
type FireCapConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// HornetsConfig contains all configuration for the Hornets level.
type HornetsConfig struct {
	MaxSeconds  float64          `yaml:"max_seconds"`
	Bees        SpawnConfig      `yaml:"bees"`
	Hornets     SpawnConfig      `yaml:"hornets"`
	PointerSize float64          `yaml:"pointer_size"`
	SwatterSize float64          `yaml:"swatter_size"`
	TrapRadius  float64          `yaml:"trap_radius"`
	Abilities   []AbilityConfig  `yaml:"abilities"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// CovidConfig contains all configuration for the Covid level.
type CovidConfig struct {
	Player      PlayerConfig     `yaml:"player"`
	Health      HealthConfig     `yaml:"health"`
	Covid       SpawnConfig      `yaml:"covid"`
	Spreaders   SpawnConfig      `yaml:"spreaders"`
	HealthPacks SpawnConfig      `yaml:"health_packs"`
	Droplets    SpawnConfig      `yaml:"droplets"`
	Abilities   []AbilityConfig  `yaml:"abilities"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// HealthConfig defines the player's health pool.
type HealthConfig struct {
	Max    uint64 `yaml:"max"`
	Damage uint64 `yaml:"damage"`
	Heal   uint64 `yaml:"heal"`
}

// PlayerConfig defines the player entity and its controller.
type PlayerConfig struct {
	Size          float64 `yaml:"size"`
	Speed         float64 `yaml:"speed"`          // pixels per second
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per second
}

// SpawnConfig defines how one kind of entity is spawned and expires.
type SpawnConfig struct {
	IntervalSeconds float64    `yaml:"interval_seconds"`
	MinCount        int        `yaml:"min_count"`
	MaxCount        int        `yaml:"max_count"`
	GrowthSeconds   float64    `yaml:"growth_seconds"` // max_count grows by one every growth_seconds
	Area            AreaConfig `yaml:"area"`
	Size            float64    `yaml:"size"`
	Exclusion       float64    `yaml:"exclusion"`
	Capacity        int        `yaml:"capacity"`
	Speed           float64    `yaml:"speed"`
	Jitter          float64    `yaml:"jitter"`
	ExpireFramesMin uint64     `yaml:"expire_frames_min"`
	ExpireFramesMax uint64     `yaml:"expire_frames_max"`
	MaxSecondsAlive float64    `yaml:"max_seconds_alive"`
}

// AreaConfig is a spawn rectangle as fractions of the arena.
type AreaConfig struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// AbilityConfig defines one ability of a level roster.
type AbilityConfig struct {
	Kind            string  `yaml:"kind"`
	Name            string  `yaml:"name"`
	Icon            string  `yaml:"icon"`
	ChargeSeconds   float64 `yaml:"charge_seconds"`
	DurationSeconds float64 `yaml:"duration_seconds"`
	MaxUses         uint32  `yaml:"max_uses"`
	StartCharged    bool    `yaml:"start_charged"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
// Normal returns -1: the level keeps the value from its config file.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyHard:
		return 0.5
	default:
		return -1
	}
}

// ApplyPreset modifies a difficulty block based on a preset.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Enabled = false
		return
	}
	cfg.Enabled = true
	if lvl := InitialLevelForPreset(preset); lvl >= 0 {
		cfg.InitialLevel = lvl
	}
	if preset == DifficultyEasy {
		cfg.Scaling.SpeedMultiplier *= 0.5
	}
}
