package core

// Action represents a semantic game action, abstracted from physical key presses.
// Each action is an edge: it is set on the tick the control was pressed (or
// released, for ActionFireRelease) and cleared afterwards.
type Action int

const (
	ActionNone        Action = iota
	ActionFire               // Fire control pressed
	ActionFireRelease        // Fire control released
	ActionReload             // R - reload equipped gun
	ActionRoll               // Shift/Space - dodge-roll
	ActionRewind             // Q/Tab - rewind to the marker
	ActionInteract           // E - interact with nearest interactable
	ActionAdvance            // Enter - advance dialogue text
	ActionNextGun            // G - cycle to the next gun
	ActionPause              // P, Escape - pause/unpause game
	ActionRestart            // Restart after game over
	ActionQuit               // Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFire:
		return "Fire"
	case ActionFireRelease:
		return "FireRelease"
	case ActionReload:
		return "Reload"
	case ActionRoll:
		return "Roll"
	case ActionRewind:
		return "Rewind"
	case ActionInteract:
		return "Interact"
	case ActionAdvance:
		return "Advance"
	case ActionNextGun:
		return "NextGun"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input delivered to the simulation for one tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Move is the raw movement vector. Only meaningful when MoveChanged is set:
	// movement is delivered as a change event, like an engine input callback.
	Move        Vec2
	MoveChanged bool

	// PointerX/PointerY is the pointer cell on screen when HasPointer is set.
	PointerX, PointerY int
	HasPointer         bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetMove records a movement change for this frame.
func (f *InputFrame) SetMove(v Vec2) {
	f.Move = v
	f.MoveChanged = true
}

// SetPointer records the pointer cell for this frame.
func (f *InputFrame) SetPointer(x, y int) {
	f.PointerX, f.PointerY = x, y
	f.HasPointer = true
}

// Clear resets the frame for the next tick. The pointer position is sticky.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Move = Zero
	f.MoveChanged = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := f
	clone.Actions = make(map[Action]bool, len(f.Actions))
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
