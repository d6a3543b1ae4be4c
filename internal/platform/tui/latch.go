package tui

import (
	"github.com/vovakirdan/survive2020/internal/core"
)

// KeyLatch turns terminal key presses into held keys. Terminals only report
// key-down (and auto-repeat), so a key counts as held for a number of ticks
// after its last report.
type KeyLatch struct {
	hold  int
	tick  int
	until map[core.Action]int
	fresh map[core.Action]bool
}

// NewKeyLatch creates a latch that holds keys for hold ticks.
func NewKeyLatch(hold int) *KeyLatch {
	if hold < 1 {
		hold = 1
	}
	return &KeyLatch{
		hold:  hold,
		until: make(map[core.Action]int),
		fresh: make(map[core.Action]bool),
	}
}

// Press records a key report. A key that was not held becomes a fresh press.
func (l *KeyLatch) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if _, held := l.until[a]; !held {
		l.fresh[a] = true
	}
	l.until[a] = l.tick + l.hold
}

// Frame fills in the held and freshly pressed keys for this tick and then
// advances the latch.
func (l *KeyLatch) Frame(dst *core.InputFrame) {
	for a := range l.until {
		dst.Set(a)
	}
	for a := range l.fresh {
		dst.Press(a)
		delete(l.fresh, a)
	}

	l.tick++
	for a, until := range l.until {
		if until <= l.tick {
			delete(l.until, a)
		}
	}
}

// Held reports whether the action is currently latched.
func (l *KeyLatch) Held(a core.Action) bool {
	_, ok := l.until[a]
	return ok
}

// Release drops every latched key.
func (l *KeyLatch) Release() {
	clear(l.until)
	clear(l.fresh)
}
