package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rewind/internal/core"
)

// defaultHoldSeconds is how long a key counts as held after its last
// press or auto-repeat. Terminals report presses only, so a held key is a
// stream of repeats and a release is the stream stopping.
const defaultHoldSeconds = 0.3

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Fire     key.Binding
	Reload   key.Binding
	Roll     key.Binding
	Rewind   key.Binding
	Interact key.Binding
	Advance  key.Binding
	NextGun  key.Binding
	Pause    key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Fire, k.Roll, k.Rewind, k.Reload, k.Interact, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.Reload, k.NextGun},
		{k.Roll, k.Rewind, k.Interact, k.Advance},
		{k.Pause, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings. Shifted movement keys move
// and roll at once.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "W", "up", "shift+up"),
			key.WithHelp("wasd", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "S", "down", "shift+down"),
			key.WithHelp("s/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "A", "left", "shift+left"),
			key.WithHelp("a/left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "D", "right", "shift+right"),
			key.WithHelp("d/right", "move right"),
		),
		Fire: key.NewBinding(
			key.WithKeys("f", "j"),
			key.WithHelp("click/f", "fire"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Roll: key.NewBinding(
			key.WithKeys(" ", "W", "A", "S", "D", "shift+up", "shift+down", "shift+left", "shift+right"),
			key.WithHelp("space", "roll"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("q", "tab"),
			key.WithHelp("q", "rewind"),
		),
		Interact: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "interact"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next line"),
		),
		NextGun: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "next gun"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// direction indexes into Controls.dirs.
const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
)

// Controls turns key presses and mouse events into input frames. Movement
// and keyboard fire are latched for a number of ticks so held keys behave
// like held keys.
type Controls struct {
	keys KeyMap
	hold int

	dirs      [4]int // ticks left per direction
	fireKey   int    // ticks left on the keyboard fire latch
	mouseHeld bool
	clicked   bool // a press seen since the last tick
	move      core.Vec2
	firing    bool
}

// NewControls creates controls whose latches last holdSeconds at tickRate.
func NewControls(keys KeyMap, tickRate int, holdSeconds float64) *Controls {
	if holdSeconds <= 0 {
		holdSeconds = defaultHoldSeconds
	}
	hold := int(holdSeconds*float64(tickRate) + 0.5)
	if hold < 1 {
		hold = 1
	}
	return &Controls{keys: keys, hold: hold}
}

// Keys returns the bindings.
func (c *Controls) Keys() KeyMap { return c.keys }

// Key records a key press. It returns true for a quit request.
func (c *Controls) Key(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, c.keys.Quit):
		frame.Set(core.ActionQuit)
		return true
	case key.Matches(msg, c.keys.Fire):
		c.fireKey = c.hold
	case key.Matches(msg, c.keys.Reload):
		frame.Set(core.ActionReload)
	case key.Matches(msg, c.keys.Rewind):
		frame.Set(core.ActionRewind)
	case key.Matches(msg, c.keys.Interact):
		frame.Set(core.ActionInteract)
	case key.Matches(msg, c.keys.Advance):
		frame.Set(core.ActionAdvance)
	case key.Matches(msg, c.keys.NextGun):
		frame.Set(core.ActionNextGun)
	case key.Matches(msg, c.keys.Pause):
		frame.Set(core.ActionPause)
	}

	c.latch(msg, c.keys.Up, dirUp, dirDown)
	c.latch(msg, c.keys.Down, dirDown, dirUp)
	c.latch(msg, c.keys.Left, dirLeft, dirRight)
	c.latch(msg, c.keys.Right, dirRight, dirLeft)
	if key.Matches(msg, c.keys.Roll) {
		frame.Set(core.ActionRoll)
	}
	return false
}

// latch holds dir and drops its opposite.
func (c *Controls) latch(msg tea.KeyMsg, b key.Binding, dir, opposite int) {
	if key.Matches(msg, b) {
		c.dirs[dir] = c.hold
		c.dirs[opposite] = 0
	}
}

// Mouse records pointer motion and left button presses. top is the screen
// row where the play field starts.
func (c *Controls) Mouse(msg tea.MouseMsg, frame *core.InputFrame, top int) {
	frame.SetPointer(msg.X, msg.Y-top)
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		c.mouseHeld = true
		c.clicked = true
	case tea.MouseActionRelease:
		c.mouseHeld = false
	}
}

// Tick folds the held state into frame: a movement change when the held
// directions changed, and fire press/release edges. A click released
// before the tick still fires for one tick. Latches then age by one tick.
func (c *Controls) Tick(frame *core.InputFrame) {
	var v core.Vec2
	if c.dirs[dirUp] > 0 {
		v.Y++
	}
	if c.dirs[dirDown] > 0 {
		v.Y--
	}
	if c.dirs[dirLeft] > 0 {
		v.X--
	}
	if c.dirs[dirRight] > 0 {
		v.X++
	}
	if v != c.move {
		c.move = v
		frame.SetMove(v)
	}

	firing := c.mouseHeld || c.fireKey > 0 || c.clicked
	c.clicked = false
	switch {
	case firing && !c.firing:
		frame.Set(core.ActionFire)
	case !firing && c.firing:
		frame.Set(core.ActionFireRelease)
	}
	c.firing = firing

	for i := range c.dirs {
		if c.dirs[i] > 0 {
			c.dirs[i]--
		}
	}
	if c.fireKey > 0 {
		c.fireKey--
	}
}

// Release drops every latch, for pauses and restarts.
func (c *Controls) Release(frame *core.InputFrame) {
	c.dirs = [4]int{}
	c.fireKey = 0
	c.mouseHeld = false
	c.clicked = false
	c.Tick(frame)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
