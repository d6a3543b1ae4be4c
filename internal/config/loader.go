package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Level IDs with a config file.
const (
	WildfiresID = "wildfires"
	HornetsID   = "hornets"
	CovidID     = "covid"
)

// Loader resolves level configs and caches them until invalidated.
// Search order: custom path -> ~/.survive2020/configs/<id>.yaml ->
// ./configs/<id>.yaml -> embedded default -> hardcoded default.
type Loader struct {
	mu      sync.Mutex
	preset  DifficultyPreset
	custom  map[string]string
	userDir string
	dir     string
	cache   map[string]any
}

// NewLoader creates a loader applying preset to every level it loads.
func NewLoader(preset DifficultyPreset) *Loader {
	return &Loader{
		preset:  preset,
		custom:  make(map[string]string),
		userDir: userConfigDir(),
		dir:     "configs",
		cache:   make(map[string]any),
	}
}

// SetCustomPath makes levelID load from path only. Errors are not masked.
func (l *Loader) SetCustomPath(levelID, path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.custom[levelID] = path
	delete(l.cache, levelID)
}

// SetDir replaces the local configs directory.
func (l *Loader) SetDir(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dir = dir
	clear(l.cache)
}

// SetUserDir replaces the per-user configs directory.
func (l *Loader) SetUserDir(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.userDir = dir
	clear(l.cache)
}

// Dirs returns the existing directories a watcher should follow.
func (l *Loader) Dirs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var dirs []string
	for _, d := range []string{l.userDir, l.dir} {
		if d == "" {
			continue
		}
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Preset returns the difficulty preset applied on load.
func (l *Loader) Preset() DifficultyPreset {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.preset
}

// Invalidate drops the cached config of one level.
func (l *Loader) Invalidate(levelID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, levelID)
}

// InvalidateAll drops every cached config.
func (l *Loader) InvalidateAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.cache)
}

// Wildfires returns the Wildfires configuration.
func (l *Loader) Wildfires() (WildfiresConfig, error) {
	return cached(l, WildfiresID, DefaultWildfiresConfig, func(c *WildfiresConfig) *DifficultyConfig {
		return &c.Difficulty
	})
}

// Hornets returns the Hornets configuration.
func (l *Loader) Hornets() (HornetsConfig, error) {
	return cached(l, HornetsID, DefaultHornetsConfig, func(c *HornetsConfig) *DifficultyConfig {
		return &c.Difficulty
	})
}

// Covid returns the Covid configuration.
func (l *Loader) Covid() (CovidConfig, error) {
	return cached(l, CovidID, DefaultCovidConfig, func(c *CovidConfig) *DifficultyConfig {
		return &c.Difficulty
	})
}

func cached[T any](l *Loader, levelID string, fallback func() T, difficulty func(*T) *DifficultyConfig) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.cache[levelID].(T); ok {
		return v, nil
	}
	cfg, err := load(levelID, l.custom[levelID], l.userDir, l.dir, fallback)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(difficulty(&cfg), l.preset)
	l.cache[levelID] = cfg
	return cfg, nil
}

func load[T any](levelID, customPath, userDir, dir string, fallback func() T) (T, error) {
	var cfg T
	filename := levelID + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user and local config directories
	for _, d := range []string{userDir, dir} {
		if d == "" {
			continue
		}
		if data, err := os.ReadFile(filepath.Join(d, filename)); err == nil {
			var fromFile T
			if err := yaml.Unmarshal(data, &fromFile); err == nil {
				return fromFile, nil
			}
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(GetDefaultYAML(levelID), &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigDir returns ~/.survive2020/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".survive2020", "configs")
}
