// Package audio plays the short synthesized cues triggered by gameplay.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Sound names one cue.
type Sound string

const (
	BeeTap      Sound = "bee_tap"
	BugSpray    Sound = "bug_spray"
	FlySwat     Sound = "fly_swat"
	HiveTrap    Sound = "hive_trap"
	Bucket      Sound = "bucket"
	Fire        Sound = "fire"
	FireOut     Sound = "fire_out"
	Cough       Sound = "cough"
	Heal        Sound = "heal"
	CovidSquish Sound = "covid_squish"
	CovidDie    Sound = "covid_die"
)

const sampleRate = beep.SampleRate(44100)

// Output plays cues. Implementations must not block the caller.
type Output interface {
	PlayOnce(s Sound)
}

// Nop discards every cue.
type Nop struct{}

// PlayOnce does nothing.
func (Nop) PlayOnce(Sound) {}

type note struct {
	freq float64
	dur  time.Duration
}

var cues = map[Sound][]note{
	BeeTap:      {{880, 40 * time.Millisecond}},
	BugSpray:    {{300, 60 * time.Millisecond}, {240, 60 * time.Millisecond}, {180, 120 * time.Millisecond}},
	FlySwat:     {{660, 50 * time.Millisecond}, {990, 80 * time.Millisecond}},
	HiveTrap:    {{440, 80 * time.Millisecond}, {550, 80 * time.Millisecond}, {660, 80 * time.Millisecond}},
	Bucket:      {{200, 150 * time.Millisecond}, {150, 150 * time.Millisecond}},
	Fire:        {{120, 60 * time.Millisecond}},
	FireOut:     {{520, 50 * time.Millisecond}, {390, 70 * time.Millisecond}},
	Cough:       {{140, 90 * time.Millisecond}, {110, 90 * time.Millisecond}},
	Heal:        {{523, 70 * time.Millisecond}, {784, 110 * time.Millisecond}},
	CovidSquish: {{330, 45 * time.Millisecond}},
	CovidDie:    {{392, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {262, 300 * time.Millisecond}},
}

// Duration returns how long a cue plays, or 0 for unknown cues.
func Duration(s Sound) time.Duration {
	var d time.Duration
	for _, n := range cues[s] {
		d += n.dur
	}
	return d
}

// Streamer builds the finite stream for a cue.
func Streamer(s Sound, sr beep.SampleRate) (beep.Streamer, error) {
	notes, ok := cues[s]
	if !ok {
		return nil, fmt.Errorf("audio: unknown sound %q", s)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("audio: cannot build %q: %w", s, err)
		}
		parts = append(parts, beep.Take(sr.N(n.dur), tone))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: -2}, nil
}

// Speaker plays cues on the default audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	logger *log.Logger
	warned map[Sound]bool
}

// NewSpeaker opens the audio device.
func NewSpeaker(logger *log.Logger) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	s := &Speaker{
		mixer:  &beep.Mixer{},
		logger: logger,
		warned: make(map[Sound]bool),
	}
	speaker.Play(s.mixer)
	return s, nil
}

// PlayOnce queues a cue on the mixer.
func (s *Speaker) PlayOnce(snd Sound) {
	st, err := Streamer(snd, sampleRate)
	if err != nil {
		s.mu.Lock()
		first := !s.warned[snd]
		s.warned[snd] = true
		s.mu.Unlock()
		if first && s.logger != nil {
			s.logger.Warn("cannot play sound", "sound", snd, "err", err)
		}
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences the mixer.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

// Open returns the speaker, or Nop when muted or when no device is available.
func Open(muted bool, logger *log.Logger) Output {
	if muted {
		return Nop{}
	}
	s, err := NewSpeaker(logger)
	if err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return Nop{}
	}
	return s
}
