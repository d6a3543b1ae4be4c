package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/survive2020/internal/assets"
	"github.com/vovakirdan/survive2020/internal/core"
)

// DefaultMaxRetries bounds rejection sampling around the player.
const DefaultMaxRetries = 20

// Clock is the frame timing of a level tick.
type Clock struct {
	Frame     uint64  // starts at 1 on the first tick
	FrameRate int     // ticks per second
	DT        float64 // seconds per tick
	Elapsed   float64 // seconds since the level started
}

// EveryNSeconds reports whether a whole number of intervals has elapsed at
// this frame. It is frame based, so it follows the configured frame rate.
func EveryNSeconds(frame uint64, frameRate int, seconds float64) bool {
	n := uint64(math.Round(float64(frameRate) * seconds))
	if n == 0 {
		return true
	}
	return frame%n == 0
}

// ExpiryBasis selects how transient entities of a kind age.
type ExpiryBasis int

const (
	ExpireNever   ExpiryBasis = iota
	ExpireFrames              // delete once the frame counter reaches ExpireFrame
	ExpireSeconds             // delete once SecondsAlive reaches MaxSecondsAlive
)

// Area is a spawn rectangle expressed as fractions of the arena.
type Area struct {
	MinX, MinY, MaxX, MaxY float64
}

// FullArea covers the whole arena.
var FullArea = Area{MaxX: 1, MaxY: 1}

// In returns the area scaled to the arena.
func (a Area) In(arena core.FRect) core.FRect {
	return core.FRect{
		MinX: arena.MinX + a.MinX*arena.Width(),
		MinY: arena.MinY + a.MinY*arena.Height(),
		MaxX: arena.MinX + a.MaxX*arena.Width(),
		MaxY: arena.MinY + a.MaxY*arena.Height(),
	}
}

// Placement picks a spawn position and drift direction inside the arena.
type Placement func(rng *rand.Rand, arena core.FRect) (core.Vec, Direction)

// Policy is the spawn and expiry rule for one kind.
type Policy struct {
	Kind       Kind
	Sprite     string
	Interval   float64 // seconds between spawn batches, 0 for emit-only kinds
	MinCount   int
	MaxCount   int     // inclusive
	Growth     float64 // MaxCount grows by one every Growth seconds, 0 disables
	Area       Area
	Place      Placement // overrides Area when set
	HalfExtent float64
	Z          float64
	Exclusion  float64 // minimum distance from the player, 0 disables
	Capacity   int     // maximum live entities of the kind, 0 for no limit
	Speed      float64 // drift speed along the spawn direction
	Jitter     float64 // random sideways step per frame

	Expiry          ExpiryBasis
	ExpireFramesMin uint64
	ExpireFramesMax uint64 // exclusive
	MaxSecondsAlive float64
}

// SpriteSource is the part of the sprite runtime the spawner needs.
type SpriteSource interface {
	Load(name string) (assets.Sprite, bool)
}

// Spawner creates, moves and expires transient entities by policy.
type Spawner struct {
	world      *World
	sprites    SpriteSource
	policies   map[Kind]*Policy
	MaxRetries int
}

// NewSpawner creates a spawner for the world.
func NewSpawner(w *World, sprites SpriteSource) *Spawner {
	return &Spawner{
		world:      w,
		sprites:    sprites,
		policies:   make(map[Kind]*Policy),
		MaxRetries: DefaultMaxRetries,
	}
}

// Register adds or replaces the policy of a kind.
func (s *Spawner) Register(p Policy) {
	s.policies[p.Kind] = &p
}

// Policy returns the policy of a kind. Unknown kinds are a programming error.
func (s *Spawner) Policy(kind Kind) *Policy {
	p, ok := s.policies[kind]
	if !ok {
		panic(fmt.Sprintf("sim: no spawn policy for %q", kind))
	}
	return p
}

// Due reports whether a spawn batch of the kind is due on this frame.
func (s *Spawner) Due(kind Kind, clock Clock) bool {
	p := s.Policy(kind)
	return p.Interval > 0 && EveryNSeconds(clock.Frame, clock.FrameRate, p.Interval)
}

// MaybeSpawn creates a batch of the kind when its interval is due. player is
// the player position used for the exclusion radius, or nil. It returns the
// created entities.
func (s *Spawner) MaybeSpawn(kind Kind, clock Clock, rng *rand.Rand, arena core.FRect, player *core.Vec) []ecs.Entity {
	if !s.Due(kind, clock) {
		return nil
	}
	return s.SpawnBatch(kind, clock, rng, arena, player)
}

// SpawnBatch creates a batch of the kind regardless of the interval.
func (s *Spawner) SpawnBatch(kind Kind, clock Clock, rng *rand.Rand, arena core.FRect, player *core.Vec) []ecs.Entity {
	p := s.Policy(kind)
	sprite, ok := s.sprites.Load(p.Sprite)
	if !ok {
		return nil
	}

	count := p.count(rng, clock.Elapsed)
	if p.Capacity > 0 {
		count = min(count, p.Capacity-s.world.Count(kind))
	}

	var created []ecs.Entity
	for i := 0; i < count; i++ {
		pos, dir := s.sample(p, rng, arena, player)
		created = append(created, s.world.Spawn(Transient{
			Kind:        kind,
			Pos:         pos,
			Z:           p.Z,
			HalfExtent:  p.HalfExtent,
			Velocity:    core.Scale(dir.Vec(), p.Speed),
			Sprite:      sprite,
			ExpireFrame: p.expireFrame(rng, clock.Frame),
			Direction:   dir,
		}))
	}
	return created
}

// Emit creates one entity of the kind at pos travelling along heading. It
// returns false while the sprite is not loaded.
func (s *Spawner) Emit(kind Kind, clock Clock, rng *rand.Rand, pos core.Vec, rotation float64) (ecs.Entity, bool) {
	p := s.Policy(kind)
	sprite, ok := s.sprites.Load(p.Sprite)
	if !ok {
		return ecs.Entity{}, false
	}
	return s.world.Spawn(Transient{
		Kind:        kind,
		Pos:         pos,
		Z:           p.Z,
		HalfExtent:  p.HalfExtent,
		Velocity:    core.Scale(core.Heading(rotation), p.Speed),
		Rotation:    rotation,
		Sprite:      sprite,
		ExpireFrame: p.expireFrame(rng, clock.Frame),
	}), true
}

// AgeAndExpire ages the entities of the kind and marks the expired ones for
// deletion. It returns how many expired.
func (s *Spawner) AgeAndExpire(kind Kind, clock Clock) int {
	p := s.Policy(kind)
	if p.Expiry == ExpireNever {
		return 0
	}

	expired := 0
	for _, e := range s.world.Entities(kind) {
		life := s.world.Lifetime(e)
		switch p.Expiry {
		case ExpireFrames:
			if clock.Frame >= life.ExpireFrame {
				s.world.Remove(e)
				expired++
			}
		case ExpireSeconds:
			life.SecondsAlive += clock.DT
			if life.SecondsAlive >= p.MaxSecondsAlive {
				s.world.Remove(e)
				expired++
			}
		}
	}
	return expired
}

// Drift moves the entities of the kind along their velocity, adding the
// policy's sideways jitter.
func (s *Spawner) Drift(kind Kind, dt float64, rng *rand.Rand) {
	p := s.Policy(kind)
	for _, e := range s.world.Entities(kind) {
		pos := s.world.Position(e)
		m := s.world.Motion(e)
		pos.X += m.Velocity.X * dt
		pos.Y += m.Velocity.Y * dt
		if p.Jitter > 0 {
			pos.X += (rng.Float64()*2 - 1) * p.Jitter
		}
	}
}

// CullOutside marks entities of the kind that left the arena.
func (s *Spawner) CullOutside(kind Kind, arena core.FRect) int {
	culled := 0
	for _, e := range s.world.Entities(kind) {
		if !arena.Contains(s.world.Position(e).Vec()) {
			s.world.Remove(e)
			culled++
		}
	}
	return culled
}

func (s *Spawner) sample(p *Policy, rng *rand.Rand, arena core.FRect, player *core.Vec) (core.Vec, Direction) {
	retries := max(s.MaxRetries, 1)
	var (
		pos core.Vec
		dir Direction
	)
	for attempt := 0; attempt < retries; attempt++ {
		pos, dir = p.place(rng, arena)
		if player == nil || p.Exclusion <= 0 || core.Distance(pos, *player) >= p.Exclusion {
			return pos, dir
		}
	}
	// Out of retries: keep the last sample.
	return pos, dir
}

func (p *Policy) place(rng *rand.Rand, arena core.FRect) (core.Vec, Direction) {
	if p.Place != nil {
		return p.Place(rng, arena)
	}
	r := p.Area.In(arena)
	return core.Vec{
		X: r.MinX + rng.Float64()*r.Width(),
		Y: r.MinY + rng.Float64()*r.Height(),
	}, DirNone
}

func (p *Policy) count(rng *rand.Rand, elapsed float64) int {
	hi := p.MaxCount
	if p.Growth > 0 {
		hi += int(elapsed / p.Growth)
	}
	if hi <= p.MinCount {
		return p.MinCount
	}
	return p.MinCount + rng.Intn(hi-p.MinCount+1)
}

func (p *Policy) expireFrame(rng *rand.Rand, frame uint64) uint64 {
	if p.Expiry != ExpireFrames {
		return 0
	}
	offset := p.ExpireFramesMin
	if p.ExpireFramesMax > p.ExpireFramesMin {
		offset += uint64(rng.Int63n(int64(p.ExpireFramesMax - p.ExpireFramesMin)))
	}
	return frame + offset
}
