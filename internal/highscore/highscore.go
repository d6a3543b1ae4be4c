// Package highscore keeps the best score of every level. The table only
// moves upwards and is written back whenever a level sets a new best.
package highscore

import (
	"maps"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Table maps a level key to its best score.
type Table map[string]uint64

// Get returns the best score for key, 0 if none.
func (t Table) Get(key string) uint64 {
	return t[key]
}

// UpdateIfGreater stores score when it beats the current best.
func (t Table) UpdateIfGreater(key string, score uint64) bool {
	if score <= t[key] {
		return false
	}
	t[key] = score
	return true
}

// Keys returns the level keys in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store is the durable home of the table. SaveHighScores replaces the
// whole table.
type Store interface {
	LoadHighScores() (Table, error)
	SaveHighScores(Table) error
}

// Book is the in-memory table of a session backed by a Store. One book may
// be shared by concurrent sessions.
type Book struct {
	mu     sync.Mutex
	saveMu sync.Mutex // serializes store round trips, taken before mu
	store  Store
	table  Table
	logger *log.Logger
}

// NewBook creates a book over store. A nil store keeps scores in memory only.
func NewBook(store Store, logger *log.Logger) *Book {
	return &Book{store: store, table: Table{}, logger: logger}
}

// Reload replaces the in-memory table with the stored one. On failure the
// current table is kept and the error is returned.
func (b *Book) Reload() error {
	if b.store == nil {
		return nil
	}
	b.saveMu.Lock()
	defer b.saveMu.Unlock()
	t, err := b.store.LoadHighScores()
	if err != nil {
		return err
	}
	if t == nil {
		t = Table{}
	}

	b.mu.Lock()
	b.table = t
	b.mu.Unlock()
	return nil
}

// Best returns the best score of a level.
func (b *Book) Best(key string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.table.Get(key)
}

// Snapshot returns a copy of the table.
func (b *Book) Snapshot() Table {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.table)
}

// Record applies a finished level's score. The table is persisted only when
// the score is a new best; a failed save is logged and play continues.
// Saves never overlap, so the stored table always carries every best
// recorded before it.
func (b *Book) Record(key string, score uint64) bool {
	b.saveMu.Lock()
	defer b.saveMu.Unlock()

	b.mu.Lock()
	updated := b.table.UpdateIfGreater(key, score)
	snapshot := maps.Clone(b.table)
	b.mu.Unlock()

	if !updated || b.store == nil {
		return updated
	}
	if err := b.store.SaveHighScores(snapshot); err != nil && b.logger != nil {
		b.logger.Error("cannot save high scores", "level", key, "score", score, "err", err)
	}
	return true
}
