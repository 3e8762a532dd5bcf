package player

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/entity"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

const dt = 0.1

type rig struct {
	c      *Controller
	tasks  *sched.Scheduler
	field  *combat.Field
	sounds *audio.Recorder
}

func testArmory(t *testing.T) *combat.Armory {
	t.Helper()
	spec := combat.ProjectileSpec{Damage: 1, Speed: 20, FinalShotDamage: 3, FinalShotSpeed: 30, Targets: entity.TagEnemy}
	a, err := combat.NewArmory(
		combat.Gun{ID: 0, Name: "revolver", MaxAmmo: 6, ReloadTime: 1, ShotsPerSecond: 2, Projectile: spec, PoolSize: 8},
		combat.Gun{ID: 1, Name: "smg", MaxAmmo: 20, ReloadTime: 1.5, ShotsPerSecond: 10, FireContinuously: true, Projectile: spec, PoolSize: 30},
	)
	if err != nil {
		t.Fatalf("NewArmory: %v", err)
	}
	return a
}

func newRig(t *testing.T) *rig {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Speed = core.V(2, 2)
	cfg.RollDuration = 0.5
	cfg.RollMultiplier = 3
	cfg.RollCooldown = 1

	tasks := sched.New()
	field := combat.NewField()
	rec := &audio.Recorder{}
	c := New(cfg, core.Zero, testArmory(t), field, tasks, rec)
	return &rig{c: c, tasks: tasks, field: field, sounds: rec}
}

// step advances one frame the way the scene does.
func (r *rig) step(n int) {
	for i := 0; i < n; i++ {
		r.c.Tick(dt)
		r.field.Tick(dt)
		r.tasks.Tick(dt)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestMovementAppliesSpeed(t *testing.T) {
	r := newRig(t)
	r.c.OnMove(core.V(1, 0))
	r.step(10)
	if !near(r.c.Pos().X, 2) || r.c.Pos().Y != 0 {
		t.Errorf("pos = %v, expected (2,0)", r.c.Pos())
	}
}

func TestCanMoveZeroesVelocity(t *testing.T) {
	r := newRig(t)
	r.c.OnMove(core.V(1, 0))
	r.c.SetCanMove(false)
	r.step(5)
	if r.c.Pos() != core.Zero {
		t.Errorf("moved while canMove=false: %v", r.c.Pos())
	}
	r.c.OnMove(core.V(0, 1))
	r.step(5)
	if r.c.Pos() != core.Zero {
		t.Errorf("moved while canMove=false after input: %v", r.c.Pos())
	}
	r.c.SetCanMove(true)
	if !r.c.Velocity().IsZero() {
		t.Error("SetCanMove should clear velocity")
	}
}

func TestRollInvulnerableForExactDuration(t *testing.T) {
	r := newRig(t)
	r.c.Roll()
	if !r.c.Rolling() || !r.c.Body.Invulnerable() {
		t.Fatal("roll should start immediately")
	}

	r.step(4)
	if !r.c.Body.Invulnerable() {
		t.Fatal("invulnerability ended before 0.5s")
	}
	r.step(1)
	if r.c.Body.Invulnerable() || r.c.Rolling() {
		t.Error("invulnerability should end at exactly 0.5s")
	}

	// Default direction is up: 0.5s * speed 2 * multiplier 3.
	if !near(r.c.Pos().Y, 3) || r.c.Pos().X != 0 {
		t.Errorf("roll ended at %v, expected (0,3)", r.c.Pos())
	}
}

func TestRollDuringCooldownIsNoop(t *testing.T) {
	r := newRig(t)
	r.c.OnMove(core.V(1, 0))
	r.c.Roll()
	r.step(5)
	after := r.c.Pos()

	r.c.Roll()
	if r.c.Rolling() {
		t.Fatal("roll during cooldown should be ignored")
	}
	r.step(1)
	if r.c.Pos() != after {
		t.Errorf("position changed from %v to %v", after, r.c.Pos())
	}

	r.step(10)
	r.c.Roll()
	if !r.c.Rolling() {
		t.Error("roll should be available after cooldown")
	}
}

func TestRollBuffersInput(t *testing.T) {
	r := newRig(t)
	r.c.OnMove(core.V(1, 0))
	r.c.Roll()
	r.c.OnMove(core.V(0, -1))
	if r.c.Velocity() != core.V(1, 0) {
		t.Error("input during roll must not change velocity")
	}
	r.step(5)
	if r.c.Velocity() != core.V(0, -1) {
		t.Errorf("velocity after roll = %v, expected buffered (0,-1)", r.c.Velocity())
	}
}

func TestRollEndsStillWithoutNewInput(t *testing.T) {
	r := newRig(t)
	r.c.OnMove(core.V(1, 0))
	r.c.Roll()
	r.step(5)
	if r.c.Rolling() {
		t.Fatal("roll should be over")
	}
	if !r.c.Velocity().IsZero() {
		t.Errorf("velocity after roll = %v, expected zero", r.c.Velocity())
	}
	end := r.c.Pos()
	r.step(3)
	if r.c.Pos() != end {
		t.Errorf("player drifted from %v to %v after the roll", end, r.c.Pos())
	}
}

func TestRewindBufferFillsMostRecentFirst(t *testing.T) {
	r := newRig(t)
	r.c.OnMove(core.V(1, 0))

	// 2 frames per 0.2s sample.
	r.step(14)
	hist := r.c.RewindHistory().Snapshot()
	if len(hist) != 7 {
		t.Fatalf("history has %d samples, expected 7", len(hist))
	}
	for i := 1; i < len(hist); i++ {
		if hist[i].Pos.X >= hist[i-1].Pos.X {
			t.Fatalf("history not most-recent-first at %d: %v", i, hist)
		}
	}
}

func TestRewindTeleportsAndShiftsHistory(t *testing.T) {
	r := newRig(t)
	r.c.OnMove(core.V(1, 0))
	r.step(30)

	before := r.c.RewindHistory().Snapshot()
	target := before[5]
	r.c.OnMove(core.Zero)
	// Let the marker settle on slot 5.
	for i := 0; i < 200; i++ {
		r.c.Tick(dt)
	}
	r.c.Rewind()

	if !near(r.c.Pos().X, target.Pos.X) {
		t.Errorf("rewound to %v, expected %v", r.c.Pos(), target.Pos)
	}
	after := r.c.RewindHistory().Snapshot()
	if len(after) != len(before)-5 {
		t.Fatalf("history len = %d, expected %d", len(after), len(before)-5)
	}
	for i := range after {
		if after[i] != before[i+5] {
			t.Errorf("after[%d] = %v, expected before[%d] = %v", i, after[i], i+5, before[i+5])
		}
	}
	if r.c.RewindCooldown() <= 0 {
		t.Error("rewind should start its cooldown")
	}
	if r.sounds.Count(audio.SoundRewind) != 1 {
		t.Error("rewind sound not played")
	}
}

func TestRewindNeedsHistoryAndCooldown(t *testing.T) {
	r := newRig(t)
	r.step(4) // two samples
	r.c.Rewind()
	if r.c.RewindCooldown() != 0 {
		t.Fatal("rewind without slot 5 should be a no-op")
	}

	r.step(20)
	r.c.Rewind()
	n := r.c.RewindHistory().Len()
	r.c.Rewind()
	if r.c.RewindHistory().Len() != n {
		t.Error("second rewind during cooldown should be a no-op")
	}
}

func TestRewindRestoresAmmoAndCancelsReload(t *testing.T) {
	r := newRig(t)
	r.step(12) // 6 samples with full ammo
	r.c.ammo = 3
	r.c.Reload()
	if !r.c.Reloading() {
		t.Fatal("reload should start below max ammo")
	}

	r.c.Rewind()
	if r.c.Reloading() || r.c.ReloadProgress() != 0 {
		t.Error("rewind should cancel the reload")
	}
	if r.c.Ammo() != 6 {
		t.Errorf("ammo = %d, expected restored 6", r.c.Ammo())
	}
	r.step(20)
	if r.c.Ammo() != 6 {
		t.Errorf("cancelled reload must not fire later, ammo = %d", r.c.Ammo())
	}
}

func TestReloadAtFullAmmoIsNoop(t *testing.T) {
	r := newRig(t)
	tasks := r.tasks.Len()
	r.c.Reload()
	if r.c.Reloading() || r.tasks.Len() != tasks {
		t.Error("reload at full ammo started a task")
	}
}

func TestReloadProgressThenRefill(t *testing.T) {
	r := newRig(t)
	r.c.FirePressed()
	r.c.FireReleased()
	r.c.Reload()

	r.step(9)
	if !near(r.c.ReloadProgress(), 0.9) {
		t.Errorf("progress = %v, expected 0.9", r.c.ReloadProgress())
	}
	if !near(r.c.ReloadFraction(), 0.9) {
		t.Errorf("fraction = %v, expected 0.9", r.c.ReloadFraction())
	}
	r.step(1)
	if r.c.Ammo() != 6 || r.c.ReloadProgress() != 0 || r.c.Reloading() {
		t.Errorf("after reloadTime: ammo=%d progress=%v reloading=%v", r.c.Ammo(), r.c.ReloadProgress(), r.c.Reloading())
	}
}

func TestSixShotsThenAutoReload(t *testing.T) {
	r := newRig(t)

	// shotsPerSecond=2 means one shot per 0.5s, i.e. every 5 frames.
	for i := 0; i < 6; i++ {
		r.c.FirePressed()
		r.c.FireReleased()
		if i < 5 {
			r.step(5)
		}
	}
	if r.c.ShotsFired() != 6 {
		t.Fatalf("fired %d shots, expected 6", r.c.ShotsFired())
	}
	if r.c.Ammo() != 0 {
		t.Fatalf("ammo = %d, expected 0", r.c.Ammo())
	}
	if !r.c.Reloading() {
		t.Fatal("reload should start automatically on the last shot")
	}

	r.step(10)
	if r.c.Ammo() != 6 {
		t.Errorf("ammo after reloadTime = %d, expected 6", r.c.Ammo())
	}
}

func TestFireRateLimit(t *testing.T) {
	r := newRig(t)
	r.c.FirePressed()
	r.c.FireReleased()
	r.step(2)
	r.c.FirePressed()
	if r.c.Ammo() != 5 {
		t.Errorf("second shot within 0.5s should be dropped, ammo=%d", r.c.Ammo())
	}
}

func TestFinalShotVariant(t *testing.T) {
	r := newRig(t)
	var last *combat.Projectile
	for i := 0; i < 6; i++ {
		r.c.FirePressed()
		r.c.FireReleased()
		r.step(5)
	}
	r.field.Each(func(p *combat.Projectile) {
		if p.Final {
			last = p
		}
	})
	if last == nil {
		t.Fatal("no final-shot projectile in flight")
	}
	if last.Damage != 3 || last.Tint != core.TintFinalShot {
		t.Errorf("final shot damage=%v tint=%v", last.Damage, last.Tint)
	}
	if r.sounds.Count(audio.SoundFinalShot) != 1 {
		t.Error("final shot sound not played once")
	}
}

func TestFireAtZeroAmmoStartsReload(t *testing.T) {
	r := newRig(t)
	r.c.ammo = 0
	r.c.FirePressed()
	if !r.c.Reloading() {
		t.Error("firing with no ammo should start a reload")
	}
	if r.c.ShotsFired() != 0 {
		t.Error("no projectile should launch with no ammo")
	}
}

func TestContinuousFireWhileHeld(t *testing.T) {
	r := newRig(t)
	r.c.NextGun()
	if r.c.Gun().Name != "smg" {
		t.Fatalf("NextGun equipped %s", r.c.Gun().Name)
	}

	r.c.FirePressed()
	r.step(10) // one second at 10 shots/sec
	if r.c.ShotsFired() < 10 {
		t.Errorf("held continuous gun fired %d shots in 1s", r.c.ShotsFired())
	}

	r.c.FireReleased()
	shots := r.c.ShotsFired()
	r.step(5)
	if r.c.ShotsFired() != shots {
		t.Error("released gun kept firing")
	}
}

func TestSingleFireOnlyOnPressEdge(t *testing.T) {
	r := newRig(t)
	r.c.FirePressed()
	r.step(20)
	if r.c.ShotsFired() != 1 {
		t.Errorf("held single-fire gun fired %d shots", r.c.ShotsFired())
	}
}

func TestNextGunResetsAmmoAndCancelsReload(t *testing.T) {
	r := newRig(t)
	r.c.FirePressed()
	r.c.Reload()
	r.c.NextGun()
	if r.c.Reloading() {
		t.Error("switching guns should cancel reload")
	}
	if r.c.Ammo() != 20 {
		t.Errorf("ammo = %d, expected smg max 20", r.c.Ammo())
	}
	r.c.NextGun()
	if r.c.Gun().Name != "revolver" || r.c.Ammo() != 6 {
		t.Errorf("cycle back: gun=%s ammo=%d", r.c.Gun().Name, r.c.Ammo())
	}
}

func TestShotAimsAtPointer(t *testing.T) {
	r := newRig(t)
	r.c.SetAim(core.V(10, 0))
	r.c.FirePressed()
	var dir core.Vec2
	r.field.Each(func(p *combat.Projectile) { dir = p.Direction })
	if dir != core.V(1, 0) {
		t.Errorf("shot direction = %v, expected (1,0)", dir)
	}
}

type sign struct {
	name     string
	priority int
	calls    int
	onUse    func()
}

func (s *sign) Interact() {
	s.calls++
	if s.onUse != nil {
		s.onUse()
	}
}

func (s *sign) InteractionPriority() int { return s.priority }

func TestInteractionOrder(t *testing.T) {
	r := newRig(t)
	low := &sign{name: "low", priority: 0}
	high := &sign{name: "high", priority: 5}
	low2 := &sign{name: "low2", priority: 0}

	r.c.EnterInteractable(low)
	r.c.EnterInteractable(high)
	r.c.EnterInteractable(low2)
	r.c.EnterInteractable(low)

	got := r.c.Interactables()
	want := []string{"high", "low", "low2"}
	if len(got) != len(want) {
		t.Fatalf("list len = %d, expected %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].(*sign).name != w {
			t.Errorf("list[%d] = %s, expected %s", i, got[i].(*sign).name, w)
		}
	}

	r.c.Interact()
	if high.calls != 1 || len(r.c.Interactables()) != 2 {
		t.Errorf("interact should use and remove head: calls=%d len=%d", high.calls, len(r.c.Interactables()))
	}

	r.c.ExitInteractable(low2)
	r.c.ExitInteractable(low2)
	if len(r.c.Interactables()) != 1 {
		t.Errorf("exit should remove once, len=%d", len(r.c.Interactables()))
	}
}

func TestInteractSurvivesSelfRemoval(t *testing.T) {
	r := newRig(t)
	door := &sign{name: "door"}
	door.onUse = func() { r.c.ExitInteractable(door) }
	other := &sign{name: "other"}
	r.c.EnterInteractable(door)
	r.c.EnterInteractable(other)

	r.c.Interact()
	list := r.c.Interactables()
	if len(list) != 1 || list[0] != other {
		t.Errorf("list after self-removing interact = %v", list)
	}
	r.c.Interact()
	r.c.Interact() // empty list
	if other.calls != 1 {
		t.Errorf("other.calls = %d", other.calls)
	}
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	r := newRig(t)
	r.c.Body.ApplyDamage(100)
	r.c.OnMove(core.V(1, 0))
	r.c.Roll()
	r.c.FirePressed()
	r.step(5)
	if r.c.Pos() != core.Zero || r.c.Rolling() || r.c.ShotsFired() != 0 {
		t.Error("inactive player should not act")
	}
}
