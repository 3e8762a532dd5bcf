package entity

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/tui-rewind/internal/core"
)

func TestApplyDamageKillsAtZero(t *testing.T) {
	tests := []struct {
		name       string
		health     float64
		damage     float64
		wantActive bool
		wantHealth float64
	}{
		{"partial", 10, 3, true, 7},
		{"exact", 10, 10, false, 0},
		{"overkill", 10, 25, false, -15},
		{"negative heals past max", 10, -5, true, 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New("e", TagEnemy, tc.health, core.V(1, 1))
			e.ApplyDamage(tc.damage)
			if e.Active() != tc.wantActive {
				t.Errorf("Active() = %v, expected %v", e.Active(), tc.wantActive)
			}
			if e.Health() != tc.wantHealth {
				t.Errorf("Health() = %v, expected %v", e.Health(), tc.wantHealth)
			}
		})
	}
}

func TestApplyDamageProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		health := rapid.Float64Range(0.1, 1000).Draw(t, "health")
		amount := rapid.Float64Range(0, 2000).Draw(t, "amount")

		e := New("e", TagEnemy, health, core.Zero)
		e.ApplyDamage(amount)

		if amount >= health {
			if e.Active() {
				t.Fatalf("damage %v >= health %v left entity active", amount, health)
			}
			return
		}
		if !e.Active() {
			t.Fatalf("damage %v < health %v deactivated entity", amount, health)
		}
		if e.Health() != health-amount {
			t.Fatalf("health = %v, expected %v", e.Health(), health-amount)
		}
	})
}

func TestInvulnerableIgnoresDamage(t *testing.T) {
	e := New("p", TagPlayer, 5, core.Zero)
	e.SetInvulnerable(true)
	e.ApplyDamage(100)
	if !e.Active() || e.Health() != 5 {
		t.Errorf("invulnerable entity took damage: active=%v health=%v", e.Active(), e.Health())
	}
}

func TestInactiveIgnoresDamage(t *testing.T) {
	e := New("e", TagEnemy, 5, core.Zero)
	e.SetActive(false)
	e.ApplyDamage(1)
	if e.Health() != 5 {
		t.Errorf("inactive entity took damage: health=%v", e.Health())
	}
}

func TestActivationHooksFireOnTransition(t *testing.T) {
	e := New("e", TagEnemy, 1, core.Zero)
	enabled, disabled := 0, 0
	e.OnEnable(func(*Entity) { enabled++ })
	e.OnDisable(func(*Entity) { disabled++ })

	e.SetActive(true) // already active
	e.ApplyDamage(1)
	e.SetActive(false)
	e.SetActive(true)

	if enabled != 1 || disabled != 1 {
		t.Errorf("enabled=%d disabled=%d, expected 1 and 1", enabled, disabled)
	}
}

func TestDamagePushesToHealthbar(t *testing.T) {
	e := New("e", TagEnemy, 10, core.Zero)
	bar := NewHealthbar(5)
	e.AttachHealthbar(bar)

	if bar.Visible() {
		t.Fatal("bar should start hidden")
	}
	e.ApplyDamage(4)
	if !bar.Visible() || bar.Target() != 6 {
		t.Errorf("bar visible=%v target=%v, expected shown at 6", bar.Visible(), bar.Target())
	}

	e.Restore()
	if bar.Visible() || e.Health() != 10 {
		t.Errorf("Restore: visible=%v health=%v", bar.Visible(), e.Health())
	}
}

func TestOverlaps(t *testing.T) {
	a := New("a", TagPlayer, 1, core.Zero)
	b := New("b", TagEnemy, 1, core.Zero)
	b.Pos = core.V(0.9, 0)
	if !a.Overlaps(b) {
		t.Error("circles 0.9 apart with radius 0.5 should overlap")
	}
	b.Pos = core.V(1.0, 0)
	if a.Overlaps(b) {
		t.Error("touching circles should not overlap")
	}
}

func TestTagHas(t *testing.T) {
	mask := TagEnemy | TagObstacle
	if !mask.Has(TagEnemy) || !mask.Has(TagObstacle) {
		t.Error("mask should contain its members")
	}
	if mask.Has(TagPlayer) {
		t.Error("mask should not contain Player")
	}
	if mask.Has(0) {
		t.Error("empty tag is never contained")
	}
}
