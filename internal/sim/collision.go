package sim

import "github.com/vovakirdan/survive2020/internal/core"

// Outcome tells the resolver which entities of a colliding pair to delete.
type Outcome uint8

const (
	Keep          Outcome = 0
	RemoveSubject Outcome = 1 << iota
	RemoveOther
	RemoveBoth = RemoveSubject | RemoveOther
)

// Handler reacts to a collision. It may change level state or play a sound
// and returns which entities to delete.
type Handler func(subject, other Collider) Outcome

// Collides reports whether two colliders overlap: the distance between their
// centres is at most the sum of their half extents.
func Collides(a, b Collider) bool {
	return core.Distance(a.Pos, b.Pos) <= a.HalfExtent+b.HalfExtent
}

// Resolver runs collision sweeps over a world. Deletions go through the
// world's deferred removal, so an entity deleted by one pair is skipped by
// every later pair of the same frame.
type Resolver struct {
	world *World
}

// NewResolver creates a resolver for the world.
func NewResolver(w *World) *Resolver {
	return &Resolver{world: w}
}

// OneToMany tests one subject (usually the player) against others and
// returns the number of collisions handled.
func (r *Resolver) OneToMany(subject Collider, others []Collider, h Handler) int {
	hits := 0
	for _, other := range others {
		if r.gone(subject) {
			break
		}
		if r.gone(other) || !Collides(subject, other) {
			continue
		}
		hits++
		r.apply(subject, other, h(subject, other))
	}
	return hits
}

// ManyToMany tests every subject against every mover (for example hazards
// against projectiles) and returns the number of collisions handled.
func (r *Resolver) ManyToMany(subjects, movers []Collider, h Handler) int {
	hits := 0
	for _, subject := range subjects {
		for _, mover := range movers {
			if r.gone(subject) {
				break
			}
			if r.gone(mover) || !Collides(subject, mover) {
				continue
			}
			hits++
			r.apply(subject, mover, h(subject, mover))
		}
	}
	return hits
}

func (r *Resolver) gone(c Collider) bool {
	return !c.Virtual && r.world.Marked(c.Entity)
}

func (r *Resolver) apply(subject, other Collider, out Outcome) {
	if out&RemoveSubject != 0 && !subject.Virtual {
		r.world.Remove(subject.Entity)
	}
	if out&RemoveOther != 0 && !other.Virtual {
		r.world.Remove(other.Entity)
	}
}
