package level

import "math"

// State is the mutable per-level resource. Counters saturate instead of
// wrapping.
type State struct {
	Score     uint64
	Health    uint64
	MaxHealth uint64
	Elapsed   float64 // seconds of unpaused play
	Hits      uint64  // damage events taken, shielded ones excluded
}

// AddScore adds n points.
func (s *State) AddScore(n uint64) {
	s.Score = addSat(s.Score, n)
}

// SetScore overwrites the score.
func (s *State) SetScore(n uint64) {
	s.Score = n
}

// Damage subtracts n health, stopping at zero.
func (s *State) Damage(n uint64) {
	s.Hits = addSat(s.Hits, 1)
	if n >= s.Health {
		s.Health = 0
		return
	}
	s.Health -= n
}

// Heal adds n health, capped at MaxHealth when it is set.
func (s *State) Heal(n uint64) {
	s.Health = addSat(s.Health, n)
	if s.MaxHealth > 0 && s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
}

// Seconds returns the whole seconds played.
func (s *State) Seconds() uint64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return uint64(s.Elapsed)
}

func addSat(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
