package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows levels to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W - move up, menu cursor up
	ActionDown               // S - move down, menu cursor down
	ActionLeft               // A - move left
	ActionRight              // D - move right
	ActionRotateLeft         // Left arrow - turn counter-clockwise
	ActionRotateRight        // Right arrow - turn clockwise
	ActionFire               // Space - spray
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // Escape - leave the level
	ActionQuit               // Q, Ctrl+C - exit
	ActionPause              // P - pause/unpause
	ActionAbility1           // 1..5 - trigger an ability by slot
	ActionAbility2
	ActionAbility3
	ActionAbility4
	ActionAbility5
)

// MaxAbilitySlots is the number of ability keys.
const MaxAbilitySlots = 5

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	}
	if slot, ok := a.AbilitySlot(); ok {
		return "Ability" + string(rune('1'+slot))
	}
	return "Unknown"
}

// AbilityAction returns the action bound to an ability slot (0-based).
func AbilityAction(slot int) Action {
	return ActionAbility1 + Action(slot)
}

// AbilitySlot returns the 0-based slot of an ability action.
func (a Action) AbilitySlot() (int, bool) {
	if a < ActionAbility1 || a > ActionAbility5 {
		return 0, false
	}
	return int(a - ActionAbility1), true
}

// Pointer is the mouse state in logical arena coordinates.
type Pointer struct {
	Pos   Vec
	Down  bool // left button pressed this frame
	Valid bool // pointer is over the arena
}

// InputFrame represents the input state for one simulation tick.
// Actions holds keys that are currently down; Pressed holds keys that went
// down since the previous tick.
type InputFrame struct {
	Actions map[Action]bool
	Pressed map[Action]bool
	Mouse   Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Pressed: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Press marks an action as newly pressed and held.
func (f *InputFrame) Press(a Action) {
	f.Set(a)
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
}

// Has returns true if the action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// JustPressed returns true if the action went down this frame.
func (f InputFrame) JustPressed(a Action) bool {
	if f.Pressed == nil {
		return false
	}
	return f.Pressed[a]
}

// MousePosition returns the pointer position and whether it is over the arena.
func (f InputFrame) MousePosition() (Vec, bool) {
	return f.Mouse.Pos, f.Mouse.Valid
}

// MouseDown reports whether the left button was pressed over the arena.
func (f InputFrame) MouseDown() bool {
	return f.Mouse.Valid && f.Mouse.Down
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Pressed {
		delete(f.Pressed, k)
	}
	f.Mouse = Pointer{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Pressed {
		clone.Pressed[k] = v
	}
	clone.Mouse = f.Mouse
	return clone
}
