package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/survive2020/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	bindings map[string]core.Action
}

// NewKeyMapper creates a key mapper with the default bindings: WASD moves,
// the left and right arrows turn, space sprays and 1-5 trigger abilities.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{bindings: map[string]core.Action{
		"w": core.ActionUp, "up": core.ActionUp, "k": core.ActionUp,
		"s": core.ActionDown, "down": core.ActionDown, "j": core.ActionDown,
		"a": core.ActionLeft,
		"d": core.ActionRight,

		"left":  core.ActionRotateLeft,
		"right": core.ActionRotateRight,

		" ":     core.ActionFire,
		"space": core.ActionFire,
		"enter": core.ActionConfirm,
		"esc":   core.ActionBack,
		"p":     core.ActionPause,
		"q":     core.ActionQuit,
	}}
	for slot := 0; slot < core.MaxAbilitySlots; slot++ {
		km.bindings[string(rune('1'+slot))] = core.AbilityAction(slot)
	}
	return km
}

// MapKey translates a key message to an action. isQuit is set for ctrl+c,
// which ends the program from any screen.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return core.ActionQuit, true
	}
	if a, ok := km.bindings[key]; ok {
		return a, false
	}
	return core.ActionNone, false
}
