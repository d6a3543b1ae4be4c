package sim

import "github.com/vovakirdan/survive2020/internal/core"

// Controller moves the player from digital input. Each axis is stepped on
// its own, so diagonal movement is faster than straight movement.
type Controller struct {
	Speed         float64 // pixels per second
	RotationSpeed float64 // radians per second
	HalfExtent    float64
}

// Apply steps the player for one frame and clamps it inside the arena.
func (c Controller) Apply(in core.InputFrame, dt float64, pos *Position, m *Motion, arenaW, arenaH float64) {
	step := c.Speed * dt
	if in.Has(core.ActionUp) {
		pos.Y += step
	}
	if in.Has(core.ActionDown) {
		pos.Y -= step
	}
	if in.Has(core.ActionLeft) {
		pos.X -= step
	}
	if in.Has(core.ActionRight) {
		pos.X += step
	}

	turn := c.RotationSpeed * dt
	if in.Has(core.ActionRotateLeft) {
		m.Rotation += turn
	}
	if in.Has(core.ActionRotateRight) {
		m.Rotation -= turn
	}

	pos.X = clampAxis(pos.X, c.HalfExtent, arenaW)
	pos.Y = clampAxis(pos.Y, c.HalfExtent, arenaH)
}

func clampAxis(v, half, dim float64) float64 {
	if dim < 2*half {
		return dim / 2
	}
	return core.ClampF(v, half, dim-half)
}
