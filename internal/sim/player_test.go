package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/survive2020/internal/core"
)

func held(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestControllerDiagonalNotNormalized(t *testing.T) {
	c := Controller{Speed: 10, RotationSpeed: 1, HalfExtent: 5}
	pos := Position{X: 100, Y: 100}
	var m Motion

	c.Apply(held(core.ActionUp, core.ActionRight), 1, &pos, &m, 600, 600)
	if pos.X != 110 || pos.Y != 110 {
		t.Fatalf("pos = (%f, %f), expected (110, 110)", pos.X, pos.Y)
	}
	if d := math.Hypot(10, 10); d <= 10 {
		t.Fatalf("diagonal distance %f should exceed the straight speed", d)
	}

	c.Apply(held(core.ActionDown, core.ActionLeft), 2, &pos, &m, 600, 600)
	if pos.X != 90 || pos.Y != 90 {
		t.Errorf("pos = (%f, %f), expected (90, 90)", pos.X, pos.Y)
	}
}

func TestControllerClampsToArena(t *testing.T) {
	c := Controller{Speed: 1000, HalfExtent: 40}
	pos := Position{X: 50, Y: 50}
	var m Motion

	c.Apply(held(core.ActionLeft, core.ActionDown), 1, &pos, &m, 600, 400)
	if pos.X != 40 || pos.Y != 40 {
		t.Errorf("pos = (%f, %f), expected clamp at (40, 40)", pos.X, pos.Y)
	}

	c.Apply(held(core.ActionRight, core.ActionUp), 1, &pos, &m, 600, 400)
	if pos.X != 560 || pos.Y != 360 {
		t.Errorf("pos = (%f, %f), expected clamp at (560, 360)", pos.X, pos.Y)
	}
}

func TestControllerRotationUnclamped(t *testing.T) {
	c := Controller{RotationSpeed: 4, HalfExtent: 1}
	pos := Position{X: 10, Y: 10}
	var m Motion

	for i := 0; i < 10; i++ {
		c.Apply(held(core.ActionRotateLeft), 0.5, &pos, &m, 100, 100)
	}
	if m.Rotation != 20 {
		t.Errorf("rotation = %f, expected 20 (no wrap)", m.Rotation)
	}
	c.Apply(held(core.ActionRotateRight), 0.25, &pos, &m, 100, 100)
	if m.Rotation != 19 {
		t.Errorf("rotation = %f, expected 19", m.Rotation)
	}
	if pos.X != 10 || pos.Y != 10 {
		t.Error("rotation must not move the player")
	}
}

func TestControllerNoInput(t *testing.T) {
	c := Controller{Speed: 140, RotationSpeed: 4.2, HalfExtent: 40}
	pos := Position{X: 300, Y: 300}
	var m Motion
	c.Apply(core.NewInputFrame(), 1.0/60, &pos, &m, 600, 600)
	if pos.X != 300 || pos.Y != 300 || m.Rotation != 0 {
		t.Errorf("idle frame moved the player: %+v %+v", pos, m)
	}
}
