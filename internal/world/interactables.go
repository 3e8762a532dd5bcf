package world

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/enemy"
	"github.com/vovakirdan/tui-rewind/internal/player"
)

// doorReach is how far from a door the player can still open it.
const doorReach = 1.0

// Trigger is an interactable with a proximity zone. The scene tracks the
// player entering and leaving each zone.
type Trigger interface {
	player.Interactable
	Toggle
	Area() core.Bounds // box holding every point Near can accept
	Near(p core.Vec2, r float64) bool
	OnPlayerEnter()
	OnPlayerExit()
}

// Door blocks a passage until opened. Opening also reveals its fog.
type Door struct {
	ID       string
	Box      core.Bounds
	Priority int

	fog    *Fog
	sounds audio.Player
	active bool
	solid  *resolv.Object
}

// NewDoor creates a closed door centred on pos. fog may be nil.
func NewDoor(id string, pos, size core.Vec2, fog *Fog, sounds audio.Player) *Door {
	if sounds == nil {
		sounds = audio.Nop{}
	}
	return &Door{ID: id, Box: core.BoundsAround(pos, size), fog: fog, sounds: sounds, active: true}
}

// Interact opens the door.
func (d *Door) Interact() {
	d.SetActive(false)
	if d.fog != nil {
		d.fog.SetActive(false)
	}
	d.sounds.Play(audio.SoundDoor)
}

func (d *Door) InteractionPriority() int { return d.Priority }
func (d *Door) Active() bool             { return d.active }
func (d *Door) SetActive(v bool)         { d.active = v }
func (d *Door) OnPlayerEnter()           {}
func (d *Door) OnPlayerExit()            {}

// Area returns the door box grown by its reach.
func (d *Door) Area() core.Bounds { return d.Box.Expand(doorReach) }

// Near reports whether a circle at p is within reach of the door.
func (d *Door) Near(p core.Vec2, r float64) bool {
	return circleHitsBox(p, r+doorReach, d.Box)
}

// zone is a circular trigger area.
type zone struct {
	pos    core.Vec2
	radius float64
	active bool
}

func (z *zone) Active() bool     { return z.active }
func (z *zone) SetActive(v bool) { z.active = v }
func (z *zone) Pos() core.Vec2   { return z.pos }
func (z *zone) OnPlayerEnter()   {}
func (z *zone) OnPlayerExit()    {}

func (z *zone) Area() core.Bounds {
	return core.BoundsAround(z.pos, core.V(2*z.radius, 2*z.radius))
}

func (z *zone) Near(p core.Vec2, r float64) bool {
	return core.Dist(p, z.pos) < z.radius+r
}

// EnemySpawner brings its linked enemies back when used.
type EnemySpawner struct {
	zone
	ID      string
	enemies []*enemy.Enemy
}

// NewEnemySpawner creates a spawner zone linked to enemies.
func NewEnemySpawner(id string, pos core.Vec2, radius float64, enemies []*enemy.Enemy) *EnemySpawner {
	return &EnemySpawner{zone: zone{pos: pos, radius: radius, active: true}, ID: id, enemies: enemies}
}

// Interact activates and re-initializes every inactive linked enemy.
func (s *EnemySpawner) Interact() {
	for _, e := range s.enemies {
		if !e.Body.Active() {
			e.Body.SetActive(true)
			e.Initialize()
		}
	}
}

func (s *EnemySpawner) InteractionPriority() int { return 1 }

// TextKind selects how a text source presents its lines.
type TextKind int

const (
	TextPopup TextKind = iota
	TextDialogue
)

// TextSource shows a popup or opens a dialogue when the player walks in or
// interacts with it.
type TextSource struct {
	zone
	ID         string
	Kind       TextKind
	Lines      []string
	TypeLine   bool
	Cooldown   float64
	OneTimeUse bool
	Priority   int
	OnEnd      func()

	dialogue *Dialogue
	popup    *Popup
	elapsed  float64
	used     bool
}

// NewTextSource creates a ready text source.
func NewTextSource(id string, kind TextKind, pos core.Vec2, radius float64, lines []string, dialogue *Dialogue, popup *Popup) *TextSource {
	return &TextSource{
		zone:     zone{pos: pos, radius: radius, active: true},
		ID:       id,
		Kind:     kind,
		Lines:    lines,
		dialogue: dialogue,
		popup:    popup,
	}
}

// Tick refills the cooldown. One-time sources never refill.
func (t *TextSource) Tick(dt float64) {
	if t.OneTimeUse {
		return
	}
	t.elapsed += dt
}

// Ready reports whether walking in will show the text.
func (t *TextSource) Ready() bool {
	if t.OneTimeUse && t.used {
		return false
	}
	return t.elapsed+timeEps >= t.Cooldown || !t.used
}

// OnPlayerEnter shows the text if the cooldown allows.
func (t *TextSource) OnPlayerEnter() {
	if t.Ready() {
		t.activate()
	}
}

// OnPlayerExit hides popup text.
func (t *TextSource) OnPlayerExit() {
	if t.Kind == TextPopup && t.popup != nil {
		t.popup.Show("", false)
	}
}

// Interact always shows the text.
func (t *TextSource) Interact() { t.activate() }

func (t *TextSource) InteractionPriority() int { return t.Priority }

func (t *TextSource) activate() {
	if len(t.Lines) == 0 {
		return
	}
	switch t.Kind {
	case TextPopup:
		if t.popup != nil {
			t.popup.Show(t.Lines[0], t.TypeLine)
		}
	case TextDialogue:
		if t.dialogue != nil {
			t.dialogue.Display(t.OnEnd, t.Lines...)
		}
	}
	t.elapsed = 0
	t.used = true
}

// LevelEnd requests a move to another level when used.
type LevelEnd struct {
	zone
	ID    string
	Level string

	request func(level string)
}

// NewLevelEnd creates an exit zone. request receives Level on interact.
func NewLevelEnd(id string, pos core.Vec2, radius float64, level string, request func(string)) *LevelEnd {
	return &LevelEnd{zone: zone{pos: pos, radius: radius, active: true}, ID: id, Level: level, request: request}
}

// Interact requests the level change.
func (l *LevelEnd) Interact() {
	if l.request != nil {
		l.request(l.Level)
	}
}

func (l *LevelEnd) InteractionPriority() int { return 0 }
