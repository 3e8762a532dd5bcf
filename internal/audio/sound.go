// Package audio plays short synthesized sound effects for gameplay events.
package audio

// Sound identifies a one-shot effect.
type Sound int

const (
	SoundShot      Sound = iota // Player shot
	SoundFinalShot              // Last round in the magazine
	SoundEmpty                  // Trigger pulled on an empty gun
	SoundReload                 // Reload finished
	SoundRoll                   // Dodge-roll
	SoundRewind                 // Rewind activation
	SoundHit                    // Something took damage
	SoundEnemyShot              // Enemy burst round
	SoundDoor                   // Door opened
	SoundText                   // Dialogue line advanced
	soundCount
)

// String returns the effect name.
func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundFinalShot:
		return "final_shot"
	case SoundEmpty:
		return "empty"
	case SoundReload:
		return "reload"
	case SoundRoll:
		return "roll"
	case SoundRewind:
		return "rewind"
	case SoundHit:
		return "hit"
	case SoundEnemyShot:
		return "enemy_shot"
	case SoundDoor:
		return "door"
	case SoundText:
		return "text"
	default:
		return "unknown"
	}
}

// Player plays one-shot sounds. Implementations must not block the caller.
type Player interface {
	Play(s Sound)
}

// Nop is a Player that discards every sound.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Sound) {}

// Recorder is a Player that remembers what was played, for tests and replays.
type Recorder struct {
	Played []Sound
}

// Play appends s to the record.
func (r *Recorder) Play(s Sound) {
	r.Played = append(r.Played, s)
}

// Count returns how many times s was played.
func (r *Recorder) Count(s Sound) int {
	n := 0
	for _, p := range r.Played {
		if p == s {
			n++
		}
	}
	return n
}
