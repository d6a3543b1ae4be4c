// Package assets resolves sprite names to terminal glyphs. Lookups are
// memoized and cooperative: a sprite requested for the first time becomes
// available after the next Poll, so callers treat "not loaded" as a
// condition to retry on a later frame.
package assets

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/survive2020/internal/core"
)

//go:embed sprites.yaml
var spritesYAML []byte

// Sprite is a loaded visual handle.
type Sprite struct {
	Name  string
	Glyph rune
	Color core.Color
}

type spriteDef struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// Catalog is the sprite runtime of one level.
type Catalog struct {
	mu      sync.Mutex
	defs    map[string]Sprite
	loaded  map[string]Sprite
	pending map[string]bool
	missing map[string]bool
	logger  *log.Logger
}

// ParseSprites decodes a sprite table.
func ParseSprites(data []byte) (map[string]Sprite, error) {
	var raw map[string]spriteDef
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("assets: cannot parse sprites: %w", err)
	}

	defs := make(map[string]Sprite, len(raw))
	for name, d := range raw {
		glyph := []rune(d.Glyph)
		if len(glyph) != 1 {
			return nil, fmt.Errorf("assets: sprite %q needs exactly one glyph, got %q", name, d.Glyph)
		}
		color, ok := core.ParseColor(d.Color)
		if !ok {
			return nil, fmt.Errorf("assets: sprite %q has unknown color %q", name, d.Color)
		}
		defs[name] = Sprite{Name: name, Glyph: glyph[0], Color: color}
	}
	return defs, nil
}

// NewCatalog creates a catalog over the embedded sprite table.
func NewCatalog(logger *log.Logger) *Catalog {
	defs, err := ParseSprites(spritesYAML)
	if err != nil {
		panic(err)
	}
	return NewCatalogFrom(defs, logger)
}

// NewCatalogFrom creates a catalog over an explicit sprite table.
func NewCatalogFrom(defs map[string]Sprite, logger *log.Logger) *Catalog {
	return &Catalog{
		defs:    defs,
		loaded:  make(map[string]Sprite),
		pending: make(map[string]bool),
		missing: make(map[string]bool),
		logger:  logger,
	}
}

// Load returns the sprite if it has been loaded. Otherwise the sprite is
// queued and ok is false.
func (c *Catalog) Load(name string) (Sprite, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.loaded[name]; ok {
		return s, true
	}
	if !c.missing[name] {
		c.pending[name] = true
	}
	return Sprite{}, false
}

// MustLoad returns a sprite that is known to be loaded.
func (c *Catalog) MustLoad(name string) Sprite {
	s, ok := c.Load(name)
	if !ok {
		panic(fmt.Sprintf("assets: sprite %q used before it finished loading", name))
	}
	return s
}

// Preload queues sprites so they are ready after the next Poll.
func (c *Catalog) Preload(names ...string) {
	for _, n := range names {
		c.Load(n)
	}
}

// Poll resolves queued sprites and returns how many became ready.
func (c *Catalog) Poll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	ready := 0
	for name := range c.pending {
		delete(c.pending, name)
		s, ok := c.defs[name]
		if !ok {
			c.missing[name] = true
			if c.logger != nil {
				c.logger.Warn("unknown sprite", "name", name)
			}
			continue
		}
		c.loaded[name] = s
		ready++
	}
	return ready
}
