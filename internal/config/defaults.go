package config

import (
	_ "embed"
)

//go:embed defaults/wildfires.yaml
var defaultWildfiresYAML []byte

//go:embed defaults/hornets.yaml
var defaultHornetsYAML []byte

//go:embed defaults/covid.yaml
var defaultCovidYAML []byte

// DefaultWildfiresConfig returns the default Wildfires configuration.
func DefaultWildfiresConfig() WildfiresConfig {
	return WildfiresConfig{
		Player: PlayerConfig{Size: 80, Speed: 140, RotationSpeed: 4.2},
		Fires: SpawnConfig{
			IntervalSeconds: 1,
			MinCount:        1,
			MaxCount:        3,
			Area:            AreaConfig{MinX: 0.05, MinY: 0.05, MaxX: 0.95, MaxY: 0.95},
			Size:            40,
			Exclusion:       120,
			ExpireFramesMin: 600,
			ExpireFramesMax: 1200,
		},
		Droplets: SpawnConfig{
			Size:            10,
			Speed:           320,
			Jitter:          3,
			MaxSecondsAlive: 1.2,
		},
		HoseEvery:    3,
		FireCap:      FireCapConfig{Start: 30, End: 10},
		BucketRadius: 160,
		Abilities: []AbilityConfig{
			{Kind: "bucket", Name: "Bucket", Icon: "u", ChargeSeconds: 10},
			{Kind: "retardant", Name: "Retardant", Icon: "r", ChargeSeconds: 12, DurationSeconds: 4, MaxUses: 3},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "time", MaxAt: 7200},
			Scaling:      ScalingConfig{SpeedMultiplier: 0},
		},
	}
}

// DefaultHornetsConfig returns the default Hornets configuration.
func DefaultHornetsConfig() HornetsConfig {
	return HornetsConfig{
		MaxSeconds: 150,
		Bees: SpawnConfig{
			IntervalSeconds: 0.5,
			MinCount:        1,
			MaxCount:        1,
			Area:            AreaConfig{MinX: 0.1667, MinY: 0.1667, MaxX: 0.8333, MaxY: 0.8333},
			Size:            16,
			ExpireFramesMin: 50,
			ExpireFramesMax: 180,
		},
		Hornets: SpawnConfig{
			IntervalSeconds: 1,
			MinCount:        1,
			MaxCount:        2,
			GrowthSeconds:   30,
			Size:            24,
			Speed:           60,
			ExpireFramesMin: 240,
			ExpireFramesMax: 420,
		},
		PointerSize: 8,
		SwatterSize: 40,
		TrapRadius:  150,
		Abilities: []AbilityConfig{
			{Kind: "bug_spray", Name: "Bug Spray", Icon: "s", ChargeSeconds: 20, StartCharged: true},
			{Kind: "fly_swatter", Name: "Fly Swatter", Icon: "w", ChargeSeconds: 15, DurationSeconds: 4, StartCharged: true},
			{Kind: "hive_trap", Name: "Hive Trap", Icon: "t", ChargeSeconds: 7, DurationSeconds: 4, StartCharged: true},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "time", MaxAt: 9000},
			Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultCovidConfig returns the default Covid configuration.
func DefaultCovidConfig() CovidConfig {
	return CovidConfig{
		Player: PlayerConfig{Size: 80, Speed: 140, RotationSpeed: 4.2},
		Health: HealthConfig{Max: 100, Damage: 10, Heal: 10},
		Covid: SpawnConfig{
			IntervalSeconds: 1,
			MinCount:        1,
			MaxCount:        1,
			Size:            40,
			Speed:           40,
		},
		Spreaders: SpawnConfig{
			IntervalSeconds: 2,
			MinCount:        1,
			MaxCount:        1,
			GrowthSeconds:   40,
			Area:            AreaConfig{MinX: 0.1, MinY: 0.1, MaxX: 0.9, MaxY: 0.9},
			Size:            170,
			Exclusion:       200,
			ExpireFramesMin: 60,
			ExpireFramesMax: 640,
		},
		HealthPacks: SpawnConfig{
			IntervalSeconds: 6.5,
			MinCount:        1,
			MaxCount:        1,
			Area:            AreaConfig{MinX: 0.1, MinY: 0.1, MaxX: 0.9, MaxY: 0.9},
			Size:            40,
			Exclusion:       60,
			Capacity:        3,
		},
		Droplets: SpawnConfig{
			Size:            10,
			Speed:           300,
			Jitter:          6,
			MaxSecondsAlive: 1.5,
		},
		Abilities: []AbilityConfig{
			{Kind: "mask", Name: "Mask", Icon: "m", ChargeSeconds: 17, DurationSeconds: 5, StartCharged: true},
			{Kind: "spray_bottle", Name: "Spray Bottle", Icon: "b", ChargeSeconds: 17, DurationSeconds: 7, StartCharged: true},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "time", MaxAt: 10800},
			Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a level.
func GetDefaultYAML(levelID string) []byte {
	switch levelID {
	case "wildfires":
		return defaultWildfiresYAML
	case "hornets":
		return defaultHornetsYAML
	case "covid":
		return defaultCovidYAML
	default:
		return nil
	}
}
