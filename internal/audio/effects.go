package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	sweep    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite tone. sweep bends the pitch over time.
func NewOscillator(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		freq := math.Max(20, o.freq+o.sweep*t)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope fades a stream in over attack and out over release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is expressed as silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

type tone struct {
	freq     float64
	sweep    float64
	wave     WaveType
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

var tones = map[Sound][]tone{
	SoundShot:      {{freq: 900, sweep: -3000, wave: WaveSquare, duration: 60 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.25}},
	SoundFinalShot: {{freq: 600, sweep: -1500, wave: WaveSaw, duration: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 80 * time.Millisecond, gain: 0.35}},
	SoundEmpty:     {{freq: 180, wave: WaveSquare, duration: 40 * time.Millisecond, release: 20 * time.Millisecond, gain: 0.2}},
	SoundReload: {
		{freq: 440, wave: WaveSquare, duration: 50 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.2},
		{freq: 660, wave: WaveSquare, duration: 70 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.2},
	},
	SoundRoll:      {{wave: WaveNoise, duration: 150 * time.Millisecond, attack: 20 * time.Millisecond, release: 110 * time.Millisecond, gain: 0.15}},
	SoundRewind:    {{freq: 1200, sweep: -4000, wave: WaveSine, duration: 250 * time.Millisecond, attack: 10 * time.Millisecond, release: 120 * time.Millisecond, gain: 0.3}},
	SoundHit:       {{freq: 120, wave: WaveSaw, duration: 80 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.3}},
	SoundEnemyShot: {{freq: 500, sweep: -1200, wave: WaveSquare, duration: 70 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.15}},
	SoundDoor:      {{freq: 90, sweep: 200, wave: WaveSaw, duration: 300 * time.Millisecond, attack: 30 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.25}},
	SoundText:      {{freq: 1500, wave: WaveSine, duration: 15 * time.Millisecond, release: 10 * time.Millisecond, gain: 0.1}},
}

// Effect builds the streamer for a sound at the given volume. Unknown sounds
// return nil.
func Effect(s Sound, volume float64, rate beep.SampleRate) beep.Streamer {
	parts, ok := tones[s]
	if !ok {
		return nil
	}
	streams := make([]beep.Streamer, 0, len(parts))
	for _, p := range parts {
		osc := NewOscillator(p.freq, p.sweep, p.duration, p.wave, rate)
		shaped := NewEnvelope(osc, p.duration, p.attack, p.release, rate)
		streams = append(streams, newVolume(shaped, p.gain))
	}
	return newVolume(beep.Seq(streams...), volume)
}
