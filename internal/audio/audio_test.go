package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if v := smp[0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never ended")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	osc := NewOscillator(440, 0, 100*time.Millisecond, WaveSine, rate)
	n, peak := drain(t, osc)
	if n != 800 {
		t.Errorf("got %d samples, expected 800", n)
	}
	if peak > 1.0 {
		t.Errorf("peak %v exceeds unity", peak)
	}
}

func TestEnvelopeSilencesEdges(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 50 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, 0, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 1)
	env.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, expected 0 at start of attack", buf[0][0])
	}
}

func TestEveryEffectEnds(t *testing.T) {
	rate := beep.SampleRate(8000)
	for s := Sound(0); s < soundCount; s++ {
		t.Run(s.String(), func(t *testing.T) {
			st := Effect(s, 1, rate)
			if st == nil {
				t.Fatal("no effect registered")
			}
			if n, _ := drain(t, st); n == 0 {
				t.Error("effect produced no samples")
			}
		})
	}
	if Effect(soundCount, 1, rate) != nil {
		t.Error("unknown sound should have no effect")
	}
}

func TestEngineSafeBeforeInit(t *testing.T) {
	e := NewEngine(0.5)
	e.Play(SoundShot)
	e.SetMuted(true)
	e.Play(SoundShot)
	e.Close()
}

func TestOpenMuted(t *testing.T) {
	p, closeFn := Open(true, 1)
	defer closeFn()
	if _, ok := p.(Nop); !ok {
		t.Errorf("muted Open returned %T, expected Nop", p)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(SoundShot)
	r.Play(SoundShot)
	r.Play(SoundRoll)
	if r.Count(SoundShot) != 2 || r.Count(SoundRoll) != 1 || r.Count(SoundDoor) != 0 {
		t.Errorf("counts wrong: %v", r.Played)
	}
}
