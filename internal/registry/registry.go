// Package registry provides a global registry for level factories.
// Levels register themselves in init() functions, allowing the session
// and the CLI to discover and instantiate them without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/survive2020/internal/level"
)

// Info contains metadata about a registered level.
type Info struct {
	ID     string // high-score key and CLI name, e.g. "covid"
	Title  string // menu label, e.g. "Covid"
	Number int    // menu position and number key, starting at 1
}

// Factory creates fresh rules for one run of a level.
type Factory func() level.Rules

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// Typically called from a level's init() function.
// Panics if the ID or the menu number is already taken.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", info.ID))
	}
	for _, other := range infos {
		if other.Number == info.Number {
			panic(fmt.Sprintf("registry: level %q reuses menu number %d of %q", info.ID, info.Number, other.ID))
		}
	}

	if info.Title == "" {
		info.Title = f().Title()
	}
	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns information about all registered levels in menu order.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})

	return result
}

// Create instantiates new rules by level ID.
// Returns an error if the ID is not registered.
func Create(id string) (level.Rules, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}

	return f(), nil
}

// ByNumber returns the level shown under a menu number.
func ByNumber(n int) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	for _, info := range infos {
		if info.Number == n {
			return info, true
		}
	}
	return Info{}, false
}

// Lookup returns the info of a registered level.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// unregister removes a level. Tests only.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, id)
	delete(infos, id)
}
