// Package ability implements timed player abilities: a charge that fills
// while the ability recharges, an optional duration that drains while it is
// in effect, and an optional limit on the number of uses.
package ability

import "fmt"

// Kind identifies an ability independent of its slot.
type Kind string

// Spec describes one ability of a level roster. The slot of an ability is
// its position in the roster.
type Spec struct {
	Kind            Kind
	Name            string
	Icon            rune
	ChargeSeconds   float64 // time to go from 0 to fully charged
	DurationSeconds float64 // 0 for instant abilities
	MaxUses         uint32  // 0 for unlimited
	StartCharged    bool
}

// HasDuration reports whether the ability stays in effect for a while.
func (s Spec) HasDuration() bool {
	return s.DurationSeconds > 0
}

// State is the runtime state of one ability.
type State struct {
	Percentage float64
	Uses       uint32
}

// Widget receives every percentage change of the ability it is bound to.
type Widget interface {
	SetProgress(pct float64)
}

// Engine owns a roster of abilities and the set of abilities in effect.
type Engine struct {
	specs   []Spec
	states  []State
	widgets []Widget
	active  []int
}

// NewEngine creates an engine for the given roster.
func NewEngine(specs []Spec) *Engine {
	e := &Engine{
		specs:   append([]Spec(nil), specs...),
		states:  make([]State, len(specs)),
		widgets: make([]Widget, len(specs)),
	}
	for i, s := range specs {
		if s.StartCharged {
			e.states[i].Percentage = 1
		}
	}
	return e
}

// Len returns the roster size.
func (e *Engine) Len() int {
	return len(e.specs)
}

// Spec returns the definition of ability i.
func (e *Engine) Spec(i int) Spec {
	e.mustIndex(i)
	return e.specs[i]
}

// State returns the runtime state of ability i.
func (e *Engine) State(i int) State {
	e.mustIndex(i)
	return e.states[i]
}

// Percentage returns the charge (or remaining duration) of ability i.
func (e *Engine) Percentage(i int) float64 {
	e.mustIndex(i)
	return e.states[i].Percentage
}

// IndexOf finds the slot of the ability with the given kind.
func (e *Engine) IndexOf(k Kind) (int, bool) {
	for i, s := range e.specs {
		if s.Kind == k {
			return i, true
		}
	}
	return 0, false
}

// Bind attaches a widget to ability i and syncs it immediately.
func (e *Engine) Bind(i int, w Widget) {
	e.mustIndex(i)
	e.widgets[i] = w
	e.sync(i)
}

// IsActive reports whether ability i is in effect.
func (e *Engine) IsActive(i int) bool {
	e.mustIndex(i)
	for _, a := range e.active {
		if a == i {
			return true
		}
	}
	return false
}

// KindActive is IsActive by kind; unknown kinds are never active.
func (e *Engine) KindActive(k Kind) bool {
	i, ok := e.IndexOf(k)
	return ok && e.IsActive(i)
}

// Active returns the slots in effect in activation order.
func (e *Engine) Active() []int {
	return append([]int(nil), e.active...)
}

// Use triggers ability i. It does nothing unless the ability is fully
// charged and not already in effect.
func (e *Engine) Use(i int) bool {
	e.mustIndex(i)
	st := &e.states[i]
	if st.Percentage != 1 || e.IsActive(i) {
		return false
	}

	st.Uses++
	if !e.specs[i].HasDuration() {
		st.Percentage = 0
		e.sync(i)
	}
	e.active = append(e.active, i)
	return true
}

// Deactivate takes ability i out of effect. Levels call it once an instant
// ability has applied its effect.
func (e *Engine) Deactivate(i int) {
	e.mustIndex(i)
	for n, a := range e.active {
		if a == i {
			e.active = append(e.active[:n], e.active[n+1:]...)
			return
		}
	}
}

// Tick advances every ability by dt seconds and returns the slots whose
// duration ran out on this tick.
func (e *Engine) Tick(dt float64) []int {
	var expired []int
	for i := range e.specs {
		if e.tickOne(i, dt) {
			expired = append(expired, i)
		}
	}
	return expired
}

// Update is one frame of the ability bar: requested slots are used instead
// of ticked on this frame, every other slot is ticked.
func (e *Engine) Update(dt float64, requested []int) []int {
	var expired []int
	for i := range e.specs {
		if containsInt(requested, i) {
			e.Use(i)
			continue
		}
		if e.tickOne(i, dt) {
			expired = append(expired, i)
		}
	}
	return expired
}

func (e *Engine) tickOne(i int, dt float64) (expired bool) {
	spec := e.specs[i]
	st := &e.states[i]

	if spec.HasDuration() && e.IsActive(i) {
		st.Percentage -= dt / spec.DurationSeconds
		if st.Percentage <= 0 {
			st.Percentage = 0
			e.Deactivate(i)
			expired = true
		}
		e.sync(i)
		return expired
	}

	if spec.ChargeSeconds > 0 {
		st.Percentage += dt / spec.ChargeSeconds
	} else {
		st.Percentage = 1
	}
	if st.Percentage > 1 {
		st.Percentage = 1
	}
	if spec.MaxUses > 0 && st.Uses >= spec.MaxUses {
		st.Percentage = 0
	}
	e.sync(i)
	return false
}

func (e *Engine) sync(i int) {
	if w := e.widgets[i]; w != nil {
		w.SetProgress(e.states[i].Percentage)
	}
}

func (e *Engine) mustIndex(i int) {
	if i < 0 || i >= len(e.specs) {
		panic(fmt.Sprintf("ability: index %d out of range [0,%d)", i, len(e.specs)))
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
