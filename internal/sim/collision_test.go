package sim

import (
	"testing"

	"github.com/vovakirdan/survive2020/internal/core"
)

func TestCollidesUsesSumOfHalfExtents(t *testing.T) {
	player := Collider{Pos: core.Vec{X: 0, Y: 0}, HalfExtent: 10}

	tests := []struct {
		name     string
		at       float64
		expected bool
	}{
		{"overlapping", 15, true},
		{"touching", 20, true},
		{"apart", 25, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hazard := Collider{Pos: core.Vec{X: tc.at}, HalfExtent: 10}
			if got := Collides(player, hazard); got != tc.expected {
				t.Errorf("Collides = %v, expected %v", got, tc.expected)
			}
			if got := Collides(hazard, player); got != tc.expected {
				t.Errorf("Collides (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestOneToMany(t *testing.T) {
	w := NewWorld("covid")
	w.SpawnPlayer(core.Vec{}, 10, readySprite("player"))
	near := w.Spawn(Transient{Kind: "covid", Pos: core.Vec{X: 15}, HalfExtent: 10})
	w.Spawn(Transient{Kind: "covid", Pos: core.Vec{X: 25}, HalfExtent: 10})

	player, _ := w.PlayerCollider()
	var seen []Collider
	hits := NewResolver(w).OneToMany(player, w.Colliders("covid"), func(_, other Collider) Outcome {
		seen = append(seen, other)
		return RemoveOther
	})

	if hits != 1 || len(seen) != 1 || seen[0].Entity != near {
		t.Fatalf("hits = %d, seen = %v", hits, seen)
	}
	if !w.Marked(near) {
		t.Error("hit hazard should be marked")
	}
	if _, ok := w.Player(); !ok || w.Marked(player.Entity) {
		t.Error("player must not be removed")
	}
}

func TestManyToManyHandlesEachEntityOnce(t *testing.T) {
	w := NewWorld("covid")
	cell := w.Spawn(Transient{Kind: "covid", Pos: core.Vec{X: 100, Y: 100}, HalfExtent: 20})
	w.Spawn(Transient{Kind: "droplet", Pos: core.Vec{X: 100, Y: 105}, HalfExtent: 5})
	w.Spawn(Transient{Kind: "droplet", Pos: core.Vec{X: 105, Y: 100}, HalfExtent: 5})
	w.Spawn(Transient{Kind: "droplet", Pos: core.Vec{X: 400, Y: 400}, HalfExtent: 5})

	calls := 0
	hits := NewResolver(w).ManyToMany(w.Colliders("covid"), w.Colliders("droplet"), func(subject, _ Collider) Outcome {
		calls++
		if subject.Entity != cell {
			t.Errorf("unexpected subject %v", subject.Entity)
		}
		return RemoveBoth
	})

	if hits != 1 || calls != 1 {
		t.Errorf("hits = %d, calls = %d, expected one pair", hits, calls)
	}
	w.Flush()
	if w.Count("covid") != 0 || w.Count("droplet") != 2 {
		t.Errorf("after flush: %d cells, %d droplets", w.Count("covid"), w.Count("droplet"))
	}
}

func TestVirtualColliderIsNeverRemoved(t *testing.T) {
	w := NewWorld("hornets")
	w.Spawn(Transient{Kind: "hornet", Pos: core.Vec{X: 50, Y: 50}, HalfExtent: 8})
	w.Spawn(Transient{Kind: "hornet", Pos: core.Vec{X: 52, Y: 50}, HalfExtent: 8})

	pointer := Collider{Pos: core.Vec{X: 51, Y: 50}, HalfExtent: 4, Virtual: true}
	hits := NewResolver(w).OneToMany(pointer, w.Colliders("hornet"), func(_, _ Collider) Outcome {
		return RemoveBoth
	})
	if hits != 2 {
		t.Errorf("hits = %d, expected 2", hits)
	}
	if w.Count("hornet") != 0 {
		t.Errorf("%d hornets left", w.Count("hornet"))
	}
}

func TestKeepOutcome(t *testing.T) {
	w := NewWorld("covid")
	w.Spawn(Transient{Kind: "spreader", Pos: core.Vec{X: 0}, HalfExtent: 85})
	subject := Collider{Pos: core.Vec{X: 10}, HalfExtent: 40, Virtual: true}

	for frame := 0; frame < 3; frame++ {
		hits := NewResolver(w).OneToMany(subject, w.Colliders("spreader"), func(_, _ Collider) Outcome { return Keep })
		if hits != 1 {
			t.Fatalf("frame %d: hits = %d, expected a hit every frame", frame, hits)
		}
	}
}
