package audio

import "sync"

// Recorder remembers played cues instead of sounding them.
type Recorder struct {
	mu     sync.Mutex
	played []Sound
}

// PlayOnce records the cue.
func (r *Recorder) PlayOnce(s Sound) {
	r.mu.Lock()
	r.played = append(r.played, s)
	r.mu.Unlock()
}

// Played returns the cues in order.
func (r *Recorder) Played() []Sound {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sound(nil), r.played...)
}

// Count returns how many times s was played.
func (r *Recorder) Count(s Sound) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

// Reset forgets every recorded cue.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.played = nil
	r.mu.Unlock()
}
