package sim

import "github.com/vovakirdan/survive2020/internal/assets"

// readySprites resolves every sprite immediately.
type readySprites struct{}

func (readySprites) Load(name string) (assets.Sprite, bool) {
	return assets.Sprite{Name: name, Glyph: '*'}, true
}

// noSprites never finishes loading.
type noSprites struct{}

func (noSprites) Load(string) (assets.Sprite, bool) {
	return assets.Sprite{}, false
}

func readySprite(name string) assets.Sprite {
	s, _ := readySprites{}.Load(name)
	return s
}
