package player

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/tui-rewind/internal/core"
)

func TestRewindBufferWraps(t *testing.T) {
	b := NewRewindBuffer(3)
	for i := 1; i <= 5; i++ {
		b.Push(SavePoint{Ammo: i})
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", b.Len())
	}
	for i, want := range []int{5, 4, 3} {
		sp, ok := b.At(i)
		if !ok || sp.Ammo != want {
			t.Errorf("At(%d) = %v,%v expected ammo %d", i, sp, ok, want)
		}
	}
	if _, ok := b.At(3); ok {
		t.Error("At past Len should be empty")
	}
}

func TestRewindBufferDiscard(t *testing.T) {
	b := NewRewindBuffer(4)
	for i := 1; i <= 4; i++ {
		b.Push(SavePoint{Ammo: i})
	}
	b.Discard(2)
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", b.Len())
	}
	if sp, _ := b.At(0); sp.Ammo != 2 {
		t.Errorf("newest after discard = %d, expected 2", sp.Ammo)
	}

	b.Push(SavePoint{Ammo: 9})
	if sp, _ := b.At(0); sp.Ammo != 9 {
		t.Errorf("push after discard: newest = %d", sp.Ammo)
	}
	if sp, _ := b.At(1); sp.Ammo != 2 {
		t.Errorf("push after discard: second = %d", sp.Ammo)
	}

	b.Discard(10)
	if b.Len() != 0 {
		t.Error("over-discard should empty the buffer")
	}
}

// The ring must agree with a naive shifting array, the obvious model of
// "insert at front, drop the tail".
func TestRewindBufferMatchesShiftingModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 30).Draw(t, "capacity")
		b := NewRewindBuffer(capacity)
		var model []SavePoint

		ops := rapid.SliceOfN(rapid.IntRange(-8, 100), 1, 200).Draw(t, "ops")
		for _, op := range ops {
			if op < 0 {
				n := -op
				b.Discard(n)
				if n > len(model) {
					n = len(model)
				}
				model = model[n:]
				continue
			}
			sp := SavePoint{Pos: core.V(float64(op), 0), Ammo: op}
			b.Push(sp)
			model = append([]SavePoint{sp}, model...)
			if len(model) > capacity {
				model = model[:capacity]
			}
		}

		got := b.Snapshot()
		if len(got) != len(model) {
			t.Fatalf("len %d, model %d", len(got), len(model))
		}
		for i := range model {
			if got[i] != model[i] {
				t.Fatalf("slot %d = %v, model %v", i, got[i], model[i])
			}
		}
	})
}
