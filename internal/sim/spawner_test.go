package sim

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/survive2020/internal/core"
)

var arena = core.FRect{MaxX: 600, MaxY: 600}

func clockAt(frame uint64) Clock {
	return Clock{Frame: frame, FrameRate: 60, DT: 1.0 / 60, Elapsed: float64(frame) / 60}
}

func TestEveryNSeconds(t *testing.T) {
	tests := []struct {
		frame    uint64
		seconds  float64
		expected bool
	}{
		{1, 0.5, false},
		{29, 0.5, false},
		{30, 0.5, true},
		{60, 0.5, true},
		{390, 6.5, true},
		{391, 6.5, false},
		{7, 0, true},
	}
	for _, tc := range tests {
		if got := EveryNSeconds(tc.frame, 60, tc.seconds); got != tc.expected {
			t.Errorf("EveryNSeconds(%d, 60, %v) = %v, expected %v", tc.frame, tc.seconds, got, tc.expected)
		}
	}
}

func TestSpawnScenario(t *testing.T) {
	w := NewWorld("test")
	s := NewSpawner(w, readySprites{})
	s.Register(Policy{
		Kind:            "hazard",
		Sprite:          "hazard",
		Interval:        0.5,
		MinCount:        2,
		MaxCount:        4,
		Area:            FullArea,
		HalfExtent:      10,
		Expiry:          ExpireFrames,
		ExpireFramesMin: 10,
		ExpireFramesMax: 20,
	})
	rng := rand.New(rand.NewSource(7))

	for frame := uint64(1); frame < 30; frame++ {
		if got := s.MaybeSpawn("hazard", clockAt(frame), rng, arena, nil); len(got) != 0 {
			t.Fatalf("frame %d: spawned %d before the interval elapsed", frame, len(got))
		}
	}

	batch := s.MaybeSpawn("hazard", clockAt(30), rng, arena, nil)
	if len(batch) < 2 || len(batch) > 4 {
		t.Fatalf("frame 30: batch of %d, expected 2..4", len(batch))
	}
	for _, e := range batch {
		life := w.Lifetime(e)
		if life.ExpireFrame < 40 || life.ExpireFrame >= 50 {
			t.Errorf("expire frame %d outside [40, 50)", life.ExpireFrame)
		}
		if !arena.Contains(w.Position(e).Vec()) {
			t.Errorf("spawned outside the arena: %+v", w.Position(e))
		}
	}

	if n := s.AgeAndExpire("hazard", clockAt(39)); n != 0 {
		t.Errorf("frame 39: %d expired early", n)
	}
	if n := s.AgeAndExpire("hazard", clockAt(50)); n != len(batch) {
		t.Errorf("frame 50: %d expired, expected %d", n, len(batch))
	}
	w.Flush()
	if w.Count("hazard") != 0 {
		t.Errorf("%d hazards left after expiry", w.Count("hazard"))
	}
}

func TestSecondsExpiry(t *testing.T) {
	w := NewWorld("test")
	s := NewSpawner(w, readySprites{})
	s.Register(Policy{Kind: "droplet", Sprite: "droplet", Speed: 100, Expiry: ExpireSeconds, MaxSecondsAlive: 1})
	clock := Clock{Frame: 1, FrameRate: 4, DT: 0.25}
	rng := rand.New(rand.NewSource(1))

	if _, ok := s.Emit("droplet", clock, rng, core.Vec{X: 10, Y: 10}, 0); !ok {
		t.Fatal("Emit failed")
	}
	for i := 0; i < 3; i++ {
		if n := s.AgeAndExpire("droplet", clock); n != 0 {
			t.Fatalf("step %d: expired early", i)
		}
	}
	if n := s.AgeAndExpire("droplet", clock); n != 1 {
		t.Errorf("expected expiry after one second, got %d", n)
	}
}

func TestExclusionRadius(t *testing.T) {
	w := NewWorld("test")
	s := NewSpawner(w, readySprites{})
	s.Register(Policy{Kind: "fire", Sprite: "fire", Interval: 1, MinCount: 50, MaxCount: 50, Area: FullArea, Exclusion: 100})
	player := core.Vec{X: 300, Y: 300}
	rng := rand.New(rand.NewSource(3))

	s.MaybeSpawn("fire", clockAt(60), rng, arena, &player)
	for _, c := range w.Colliders("fire") {
		if core.Distance(c.Pos, player) < 100 {
			t.Errorf("fire at %v is inside the exclusion radius", c.Pos)
		}
	}
}

func TestExclusionRetryBudget(t *testing.T) {
	w := NewWorld("test")
	s := NewSpawner(w, readySprites{})
	// Every sample is rejected; the spawner must still make progress.
	s.Register(Policy{Kind: "fire", Sprite: "fire", Interval: 1, MinCount: 3, MaxCount: 3, Area: FullArea, Exclusion: 1e6})
	player := core.Vec{X: 300, Y: 300}

	got := s.MaybeSpawn("fire", clockAt(60), rand.New(rand.NewSource(1)), arena, &player)
	if len(got) != 3 {
		t.Errorf("spawned %d, expected 3 after exhausting retries", len(got))
	}
}

func TestCapacityAndGrowth(t *testing.T) {
	w := NewWorld("test")
	s := NewSpawner(w, readySprites{})
	s.Register(Policy{Kind: "bee", Sprite: "bee", Interval: 1, MinCount: 5, MaxCount: 5, Area: FullArea, Capacity: 7})
	rng := rand.New(rand.NewSource(1))

	s.MaybeSpawn("bee", clockAt(60), rng, arena, nil)
	s.MaybeSpawn("bee", clockAt(120), rng, arena, nil)
	if w.Count("bee") != 7 {
		t.Errorf("count = %d, expected capacity 7", w.Count("bee"))
	}

	p := Policy{MinCount: 1, MaxCount: 1, Growth: 40}
	if n := p.count(rng, 39); n != 1 {
		t.Errorf("count before growth = %d, expected 1", n)
	}
	for i := 0; i < 50; i++ {
		if n := p.count(rng, 85); n < 1 || n > 3 {
			t.Fatalf("count after 85s = %d, expected 1..3", n)
		}
	}
}

func TestSpawnWaitsForSprite(t *testing.T) {
	w := NewWorld("test")
	s := NewSpawner(w, noSprites{})
	s.Register(Policy{Kind: "bee", Sprite: "bee", Interval: 1, MinCount: 1, MaxCount: 1, Area: FullArea})

	if got := s.MaybeSpawn("bee", clockAt(60), rand.New(rand.NewSource(1)), arena, nil); got != nil {
		t.Error("nothing should spawn before the sprite is loaded")
	}
}

func TestDriftAndCull(t *testing.T) {
	w := NewWorld("test")
	s := NewSpawner(w, readySprites{})
	lane := func(*rand.Rand, core.FRect) (core.Vec, Direction) {
		return core.Vec{X: 590, Y: 300}, DirRight
	}
	s.Register(Policy{Kind: "covid", Sprite: "covid", Interval: 1, MinCount: 1, MaxCount: 1, Place: lane, Speed: 40})
	rng := rand.New(rand.NewSource(1))

	got := s.MaybeSpawn("covid", clockAt(60), rng, arena, nil)
	if len(got) != 1 || w.Lifetime(got[0]).Direction != DirRight {
		t.Fatalf("lane spawn failed: %v", got)
	}

	s.Drift("covid", 0.125, rng)
	if x := w.Position(got[0]).X; x != 595 {
		t.Errorf("x = %f after drift, expected 595", x)
	}
	if n := s.CullOutside("covid", arena); n != 0 {
		t.Errorf("culled %d inside the arena", n)
	}
	s.Drift("covid", 0.25, rng)
	if n := s.CullOutside("covid", arena); n != 1 {
		t.Errorf("culled %d, expected 1 after leaving the arena", n)
	}
}

func TestSpawnDeterministic(t *testing.T) {
	run := func() []core.Vec {
		w := NewWorld("test")
		s := NewSpawner(w, readySprites{})
		s.Register(Policy{Kind: "bee", Sprite: "bee", Interval: 0.5, MinCount: 1, MaxCount: 3, Area: Area{MinX: 0.2, MinY: 0.2, MaxX: 0.8, MaxY: 0.8}})
		rng := rand.New(rand.NewSource(42))
		for f := uint64(1); f <= 300; f++ {
			s.MaybeSpawn("bee", clockAt(f), rng, arena, nil)
		}
		var out []core.Vec
		for _, c := range w.Colliders("bee") {
			out = append(out, c.Pos)
		}
		return out
	}

	a, b := run(), run()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("runs differ in size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestUnknownPolicyPanics(t *testing.T) {
	s := NewSpawner(NewWorld("test"), readySprites{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an unregistered kind")
		}
	}()
	s.AgeAndExpire("ghost", clockAt(1))
}
