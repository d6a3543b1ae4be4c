package core

// RuntimeConfig contains configuration passed to levels at initialization.
// Levels use this for the fixed frame rate and deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// DT returns the fixed simulation step in seconds.
func (c RuntimeConfig) DT() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a level.
// Returned by State() to communicate status to the platform.
type GameState struct {
	Score    uint64 // Current score
	GameOver bool   // Whether the level has ended
	Paused   bool   // Whether the level is paused
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
}
