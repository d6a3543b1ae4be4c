package highscore

import (
	"errors"
	"io"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type memStore struct {
	saved   Table
	saves   int
	failErr error
}

func (m *memStore) LoadHighScores() (Table, error) {
	out := Table{}
	for k, v := range m.saved {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SaveHighScores(t Table) error {
	m.saves++
	if m.failErr != nil {
		return m.failErr
	}
	m.saved = t
	return nil
}

// gateStore holds every save until the test releases it.
type gateStore struct {
	mu      sync.Mutex
	saved   Table
	entered chan struct{}
	release chan struct{}
}

func (g *gateStore) LoadHighScores() (Table, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return maps.Clone(g.saved), nil
}

func (g *gateStore) SaveHighScores(t Table) error {
	g.entered <- struct{}{}
	<-g.release
	g.mu.Lock()
	g.saved = maps.Clone(t)
	g.mu.Unlock()
	return nil
}

func TestTableUpdateIfGreater(t *testing.T) {
	tbl := Table{}
	if !tbl.UpdateIfGreater("covid", 10) {
		t.Error("first score should be a new best")
	}
	if tbl.UpdateIfGreater("covid", 10) {
		t.Error("equal score is not a new best")
	}
	if tbl.UpdateIfGreater("covid", 3) {
		t.Error("lower score is not a new best")
	}
	if tbl.Get("covid") != 10 || tbl.Get("hornets") != 0 {
		t.Errorf("table = %v", tbl)
	}
}

func TestBookMonotonicPersistence(t *testing.T) {
	store := &memStore{saved: Table{"hornets": 50}}
	book := NewBook(store, log.New(io.Discard))
	if err := book.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if !book.Record("hornets", 100) {
		t.Fatal("100 over 50 should be a new best")
	}
	if store.saves != 1 || store.saved.Get("hornets") != 100 {
		t.Fatalf("after new best: saves=%d stored=%d", store.saves, store.saved.Get("hornets"))
	}

	if book.Record("hornets", 30) {
		t.Fatal("30 under 100 must not update")
	}
	if store.saves != 1 {
		t.Errorf("a lower score must not be persisted, saves=%d", store.saves)
	}
	if book.Best("hornets") != 100 || store.saved.Get("hornets") != 100 {
		t.Errorf("best = %d, stored = %d, expected 100", book.Best("hornets"), store.saved.Get("hornets"))
	}
}

func TestBookSaveFailureIsNotFatal(t *testing.T) {
	store := &memStore{failErr: errors.New("disk full")}
	book := NewBook(store, log.New(io.Discard))

	if !book.Record("covid", 42) {
		t.Error("new best should be reported even when the save fails")
	}
	if book.Best("covid") != 42 {
		t.Errorf("best = %d, expected 42 kept in memory", book.Best("covid"))
	}
}

func TestBookWithoutStore(t *testing.T) {
	book := NewBook(nil, nil)
	if err := book.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	book.Record("wildfires", 7)
	snap := book.Snapshot()
	snap["wildfires"] = 0
	if book.Best("wildfires") != 7 {
		t.Error("Snapshot must be a copy")
	}
}

func TestSharedBookKeepsEveryBest(t *testing.T) {
	store := &gateStore{entered: make(chan struct{}), release: make(chan struct{})}
	book := NewBook(store, log.New(io.Discard))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		book.Record("hornets", 10)
	}()
	<-store.entered

	go func() {
		defer wg.Done()
		book.Record("covid", 50)
	}()
	select {
	case <-store.entered:
		store.release <- struct{}{}
		store.release <- struct{}{}
		wg.Wait()
		t.Fatal("second save started while the first was still running")
	case <-time.After(50 * time.Millisecond):
	}

	store.release <- struct{}{}
	<-store.entered
	store.release <- struct{}{}
	wg.Wait()

	stored, _ := store.LoadHighScores()
	if stored.Get("hornets") != 10 || stored.Get("covid") != 50 {
		t.Fatalf("stored = %v, want hornets 10 and covid 50", stored)
	}
	if err := book.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if book.Best("covid") != 50 {
		t.Errorf("covid best after reload = %d, want 50", book.Best("covid"))
	}
}

func TestTableKeysSorted(t *testing.T) {
	keys := Table{"wildfires": 1, "covid": 2, "hornets": 3}.Keys()
	if len(keys) != 3 || keys[0] != "covid" || keys[2] != "wildfires" {
		t.Errorf("Keys() = %v", keys)
	}
}
