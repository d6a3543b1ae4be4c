// Package sim is the per-frame simulation layer shared by every level:
// the entity world, timed spawning and expiry, proximity collisions and
// the player controller.
package sim

import (
	"fmt"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/survive2020/internal/assets"
	"github.com/vovakirdan/survive2020/internal/core"
)

// Kind tags transient entities (hazards, pickups, projectiles, decoration).
type Kind string

// Direction is the drift direction of an edge-spawned entity.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Vec returns the unit vector of the direction.
func (d Direction) Vec() core.Vec {
	switch d {
	case DirUp:
		return core.Vec{Y: 1}
	case DirDown:
		return core.Vec{Y: -1}
	case DirLeft:
		return core.Vec{X: -1}
	case DirRight:
		return core.Vec{X: 1}
	}
	return core.Vec{}
}

// Position is the location of an entity in logical pixels. Z orders drawing.
type Position struct {
	X, Y, Z float64
}

// Vec returns the planar position.
func (p Position) Vec() core.Vec {
	return core.Vec{X: p.X, Y: p.Y}
}

// Body is the collision extent of an entity.
type Body struct {
	HalfExtent float64
}

// Motion is the velocity and facing of an entity.
type Motion struct {
	Velocity core.Vec
	Rotation float64
}

// Lifetime is the payload of a transient entity.
type Lifetime struct {
	Kind         Kind
	ExpireFrame  uint64
	SecondsAlive float64
	Direction    Direction
}

// LevelScoped marks entities owned by a level.
type LevelScoped struct {
	Level string
}

// Player marks the player entity.
type Player struct {
	Variant string
}

// Transient describes a transient entity to create.
type Transient struct {
	Kind        Kind
	Pos         core.Vec
	Z           float64
	HalfExtent  float64
	Velocity    core.Vec
	Rotation    float64
	Sprite      assets.Sprite
	ExpireFrame uint64
	Direction   Direction
}

// Collider is an entity snapshot for collision tests. Virtual colliders
// (such as the mouse pointer) have no entity behind them.
type Collider struct {
	Entity     ecs.Entity
	Pos        core.Vec
	HalfExtent float64
	Virtual    bool
}

// Drawable is an entity snapshot for rendering.
type Drawable struct {
	Pos        core.Vec
	Z          float64
	HalfExtent float64
	Sprite     assets.Sprite
}

// World stores the entities of one level. Removal is deferred: Remove marks
// an entity, queries skip marked entities and Flush deletes them.
type World struct {
	level string
	ecs   *ecs.World

	transients *ecs.Map6[Position, Body, Motion, assets.Sprite, Lifetime, LevelScoped]
	players    *ecs.Map6[Position, Body, Motion, assets.Sprite, Player, LevelScoped]

	transientFilter *ecs.Filter3[Position, Body, Lifetime]
	playerFilter    *ecs.Filter1[Player]
	scopedFilter    *ecs.Filter1[LevelScoped]
	drawFilter      *ecs.Filter3[Position, Body, assets.Sprite]

	posMap    *ecs.Map1[Position]
	bodyMap   *ecs.Map1[Body]
	motionMap *ecs.Map1[Motion]
	spriteMap *ecs.Map1[assets.Sprite]
	lifeMap   *ecs.Map1[Lifetime]
	playerMap *ecs.Map1[Player]

	marked map[ecs.Entity]struct{}
	order  []ecs.Entity
}

// NewWorld creates an empty world for the given level key.
func NewWorld(level string) *World {
	world := ecs.NewWorld()
	return &World{
		level:           level,
		ecs:             world,
		transients:      ecs.NewMap6[Position, Body, Motion, assets.Sprite, Lifetime, LevelScoped](world),
		players:         ecs.NewMap6[Position, Body, Motion, assets.Sprite, Player, LevelScoped](world),
		transientFilter: ecs.NewFilter3[Position, Body, Lifetime](world),
		playerFilter:    ecs.NewFilter1[Player](world),
		scopedFilter:    ecs.NewFilter1[LevelScoped](world),
		drawFilter:      ecs.NewFilter3[Position, Body, assets.Sprite](world),
		posMap:          ecs.NewMap1[Position](world),
		bodyMap:         ecs.NewMap1[Body](world),
		motionMap:       ecs.NewMap1[Motion](world),
		spriteMap:       ecs.NewMap1[assets.Sprite](world),
		lifeMap:         ecs.NewMap1[Lifetime](world),
		playerMap:       ecs.NewMap1[Player](world),
		marked:          make(map[ecs.Entity]struct{}),
	}
}

// Level returns the key of the owning level.
func (w *World) Level() string {
	return w.level
}

// Spawn creates a transient entity.
func (w *World) Spawn(t Transient) ecs.Entity {
	pos := Position{X: t.Pos.X, Y: t.Pos.Y, Z: t.Z}
	body := Body{HalfExtent: t.HalfExtent}
	motion := Motion{Velocity: t.Velocity, Rotation: t.Rotation}
	sprite := t.Sprite
	life := Lifetime{Kind: t.Kind, ExpireFrame: t.ExpireFrame, Direction: t.Direction}
	scope := LevelScoped{Level: w.level}
	return w.transients.NewEntity(&pos, &body, &motion, &sprite, &life, &scope)
}

// SpawnPlayer creates the player entity. A level has at most one player.
func (w *World) SpawnPlayer(pos core.Vec, halfExtent float64, sprite assets.Sprite) ecs.Entity {
	if _, ok := w.Player(); ok {
		panic(fmt.Sprintf("sim: level %q already has a player", w.level))
	}
	p := Position{X: pos.X, Y: pos.Y, Z: 1}
	body := Body{HalfExtent: halfExtent}
	motion := Motion{}
	tag := Player{Variant: sprite.Name}
	scope := LevelScoped{Level: w.level}
	return w.players.NewEntity(&p, &body, &motion, &sprite, &tag, &scope)
}

// Player returns the player entity if it exists.
func (w *World) Player() (ecs.Entity, bool) {
	var (
		found  ecs.Entity
		ok     bool
		extras int
	)
	query := w.playerFilter.Query()
	for query.Next() {
		if ok {
			extras++
			continue
		}
		found, ok = query.Entity(), true
	}
	if extras > 0 {
		panic(fmt.Sprintf("sim: level %q has %d player entities", w.level, extras+1))
	}
	return found, ok
}

// PlayerCollider returns the player as a collider.
func (w *World) PlayerCollider() (Collider, bool) {
	e, ok := w.Player()
	if !ok {
		return Collider{}, false
	}
	return w.collider(e), true
}

// Position returns the position component of e.
func (w *World) Position(e ecs.Entity) *Position { return w.posMap.Get(e) }

// Motion returns the motion component of e.
func (w *World) Motion(e ecs.Entity) *Motion { return w.motionMap.Get(e) }

// Sprite returns the visual handle of e.
func (w *World) Sprite(e ecs.Entity) *assets.Sprite { return w.spriteMap.Get(e) }

// Lifetime returns the transient payload of e.
func (w *World) Lifetime(e ecs.Entity) *Lifetime { return w.lifeMap.Get(e) }

// SetPlayerSprite switches the player to another sprite variant.
func (w *World) SetPlayerSprite(s assets.Sprite) {
	e, ok := w.Player()
	if !ok {
		return
	}
	*w.spriteMap.Get(e) = s
	w.playerMap.Get(e).Variant = s.Name
}

// Entities returns the live, unmarked entities of a kind.
func (w *World) Entities(kind Kind) []ecs.Entity {
	var out []ecs.Entity
	query := w.transientFilter.Query()
	for query.Next() {
		_, _, life := query.Get()
		e := query.Entity()
		if life.Kind != kind || w.Marked(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Colliders returns collision snapshots of the live, unmarked entities of a kind.
func (w *World) Colliders(kind Kind) []Collider {
	var out []Collider
	query := w.transientFilter.Query()
	for query.Next() {
		pos, body, life := query.Get()
		e := query.Entity()
		if life.Kind != kind || w.Marked(e) {
			continue
		}
		out = append(out, Collider{Entity: e, Pos: pos.Vec(), HalfExtent: body.HalfExtent})
	}
	return out
}

// Count returns the number of live, unmarked entities of a kind.
func (w *World) Count(kind Kind) int {
	n := 0
	query := w.transientFilter.Query()
	for query.Next() {
		_, _, life := query.Get()
		if life.Kind == kind && !w.Marked(query.Entity()) {
			n++
		}
	}
	return n
}

// Remove marks e for deletion at the next Flush. It reports whether the
// entity was newly marked.
func (w *World) Remove(e ecs.Entity) bool {
	if _, ok := w.marked[e]; ok {
		return false
	}
	if !w.ecs.Alive(e) {
		return false
	}
	w.marked[e] = struct{}{}
	w.order = append(w.order, e)
	return true
}

// Marked reports whether e is waiting for deletion.
func (w *World) Marked(e ecs.Entity) bool {
	_, ok := w.marked[e]
	return ok
}

// Flush deletes every marked entity and returns how many were deleted.
func (w *World) Flush() int {
	n := 0
	for _, e := range w.order {
		if w.ecs.Alive(e) {
			w.ecs.RemoveEntity(e)
			n++
		}
	}
	w.order = w.order[:0]
	clear(w.marked)
	return n
}

// Clear deletes every level-scoped entity, including the player.
func (w *World) Clear() int {
	var doomed []ecs.Entity
	query := w.scopedFilter.Query()
	for query.Next() {
		doomed = append(doomed, query.Entity())
	}
	for _, e := range doomed {
		w.ecs.RemoveEntity(e)
	}
	w.order = w.order[:0]
	clear(w.marked)
	return len(doomed)
}

// Len returns the number of level-scoped entities, marked ones included.
func (w *World) Len() int {
	n := 0
	query := w.scopedFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// DrawList returns every unmarked entity ordered by Z.
func (w *World) DrawList() []Drawable {
	var out []Drawable
	query := w.drawFilter.Query()
	for query.Next() {
		pos, body, sprite := query.Get()
		if w.Marked(query.Entity()) {
			continue
		}
		out = append(out, Drawable{Pos: pos.Vec(), Z: pos.Z, HalfExtent: body.HalfExtent, Sprite: *sprite})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

func (w *World) collider(e ecs.Entity) Collider {
	return Collider{Entity: e, Pos: w.posMap.Get(e).Vec(), HalfExtent: w.bodyMap.Get(e).HalfExtent}
}
