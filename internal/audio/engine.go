package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Engine plays effects through the system speaker. Every effect is mixed
// into one long-lived mixer so Play never blocks the simulation.
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewEngine creates an engine at the given master volume in [0, 1].
func NewEngine(volume float64) *Engine {
	return &Engine{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker. A second call is a no-op.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(e.mixer)
	e.initialized = true
	return nil
}

// SetMuted silences or restores playback.
func (e *Engine) SetMuted(m bool) {
	e.mu.Lock()
	e.muted = m
	e.mu.Unlock()
}

// Play queues a one-shot effect. It is safe before Init and while muted.
func (e *Engine) Play(s Sound) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.muted {
		return
	}
	st := Effect(s, e.volume, sampleRate)
	if st == nil {
		return
	}
	speaker.Lock()
	e.mixer.Add(st)
	speaker.Unlock()
}

// Close stops every queued effect.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	e.initialized = false
}

// Open returns a speaker-backed player, or Nop when muted or when no audio
// device is available. Failure is logged and never fatal.
func Open(mute bool, volume float64) (Player, func()) {
	if mute {
		return Nop{}, func() {}
	}
	eng := NewEngine(volume)
	if err := eng.Init(); err != nil {
		log.Warn("audio disabled", "err", err)
		return Nop{}, func() {}
	}
	return eng, eng.Close
}
