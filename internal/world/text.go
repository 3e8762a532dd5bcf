package world

import (
	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

const timeEps = 1e-9

// typeTask reveals line one rune every speed seconds, calling set with the
// visible prefix. A non-positive speed reveals the whole line at once.
func typeTask(line string, speed float64, set func(string)) sched.Task {
	runes := []rune(line)
	n := 0
	var acc float64
	return sched.TaskFunc(func(dt float64) bool {
		acc += dt
		for n < len(runes) && (speed <= 0 || acc+timeEps >= speed) {
			acc -= speed
			n++
		}
		set(string(runes[:n]))
		return n >= len(runes)
	})
}

// Dialogue shows lines one at a time in a blocking text box. While active
// the scene freezes the player and enemies.
type Dialogue struct {
	tasks  *sched.Scheduler
	sounds audio.Player
	speed  float64

	lines  []string
	index  int
	shown  string
	active bool
	typing *sched.Handle
	onEnd  func()
}

// NewDialogue creates a dialogue typing one character per speed seconds on
// tasks.
func NewDialogue(tasks *sched.Scheduler, speed float64, sounds audio.Player) *Dialogue {
	if sounds == nil {
		sounds = audio.Nop{}
	}
	return &Dialogue{tasks: tasks, speed: speed, sounds: sounds}
}

// Display replaces the current lines and starts typing the first one.
// onEnd runs when the last line is dismissed.
func (d *Dialogue) Display(onEnd func(), lines ...string) {
	if len(lines) == 0 {
		return
	}
	d.lines = append(d.lines[:0], lines...)
	d.index = 0
	d.onEnd = onEnd
	d.active = true
	d.sounds.Play(audio.SoundText)
	d.typeLine()
}

// Next finishes the line being typed, or moves to the next line once the
// current one is fully shown. Past the last line the box closes.
func (d *Dialogue) Next() {
	if !d.active {
		return
	}
	if d.Typing() {
		d.tasks.Stop(d.typing)
		d.typing = nil
		d.shown = d.lines[d.index]
		return
	}
	if d.index+1 < len(d.lines) {
		d.index++
		d.typeLine()
		return
	}
	d.close()
}

func (d *Dialogue) typeLine() {
	d.tasks.Stop(d.typing)
	d.shown = ""
	d.typing = d.tasks.Start(typeTask(d.lines[d.index], d.speed, func(s string) { d.shown = s }))
}

func (d *Dialogue) close() {
	d.active = false
	d.lines = d.lines[:0]
	d.index = 0
	d.shown = ""
	onEnd := d.onEnd
	d.onEnd = nil
	if onEnd != nil {
		onEnd()
	}
}

// Active reports whether the dialogue box is open.
func (d *Dialogue) Active() bool { return d.active }

// Typing reports whether the current line is still being revealed.
func (d *Dialogue) Typing() bool { return d.typing.Running() }

// Text returns the visible part of the current line.
func (d *Dialogue) Text() string { return d.shown }

// Line returns the current line index and the number of lines.
func (d *Dialogue) Line() (int, int) { return d.index, len(d.lines) }

// Popup is non-blocking text shown under the player.
type Popup struct {
	tasks  *sched.Scheduler
	speed  float64
	shown  string
	typing *sched.Handle
}

// NewPopup creates a popup typing one character per speed seconds.
func NewPopup(tasks *sched.Scheduler, speed float64) *Popup {
	return &Popup{tasks: tasks, speed: speed}
}

// Show replaces the popup text. With typeLine the text is revealed over
// time, otherwise at once. Show("") hides the popup.
func (p *Popup) Show(text string, typeLine bool) {
	p.tasks.Stop(p.typing)
	p.typing = nil
	if !typeLine || text == "" {
		p.shown = text
		return
	}
	p.shown = ""
	p.typing = p.tasks.Start(typeTask(text, p.speed, func(s string) { p.shown = s }))
}

// Text returns the visible popup text.
func (p *Popup) Text() string { return p.shown }

// Visible reports whether anything is shown.
func (p *Popup) Visible() bool { return p.shown != "" }
