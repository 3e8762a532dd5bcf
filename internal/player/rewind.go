package player

import "github.com/vovakirdan/tui-rewind/internal/core"

// SavePoint is one rewind sample.
type SavePoint struct {
	Pos  core.Vec2
	Ammo int
}

// RewindBuffer is a fixed-capacity ring of save points indexed from the
// most recent sample. Pushing past capacity overwrites the oldest sample.
type RewindBuffer struct {
	slots []SavePoint
	head  int // index the next sample is written to
	count int
}

// NewRewindBuffer allocates a ring with the given capacity.
func NewRewindBuffer(capacity int) *RewindBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RewindBuffer{slots: make([]SavePoint, capacity)}
}

// Cap returns the capacity.
func (b *RewindBuffer) Cap() int { return len(b.slots) }

// Len returns the number of stored samples.
func (b *RewindBuffer) Len() int { return b.count }

// Push stores a new most-recent sample.
func (b *RewindBuffer) Push(sp SavePoint) {
	b.slots[b.head] = sp
	b.head = (b.head + 1) % len(b.slots)
	if b.count < len(b.slots) {
		b.count++
	}
}

// At returns the sample i steps back from the most recent (0 = newest).
func (b *RewindBuffer) At(i int) (SavePoint, bool) {
	if i < 0 || i >= b.count {
		return SavePoint{}, false
	}
	n := len(b.slots)
	return b.slots[(b.head-1-i+n)%n], true
}

// Discard drops the n most recent samples, so the sample that was at
// index n becomes the newest and the tail is left empty.
func (b *RewindBuffer) Discard(n int) {
	if n <= 0 {
		return
	}
	if n > b.count {
		n = b.count
	}
	size := len(b.slots)
	b.head = (b.head - n + size) % size
	b.count -= n
}

// Snapshot returns the stored samples, most recent first.
func (b *RewindBuffer) Snapshot() []SavePoint {
	out := make([]SavePoint, b.count)
	for i := range out {
		out[i], _ = b.At(i)
	}
	return out
}

// Reset empties the buffer.
func (b *RewindBuffer) Reset() {
	b.head = 0
	b.count = 0
}
