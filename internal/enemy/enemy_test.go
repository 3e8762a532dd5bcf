package enemy

import (
	"testing"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

const dt = 0.05

type fakeWorld struct {
	player   core.Vec2
	damage   float64
	shots    []core.Vec2
	dialogue bool
	sounds   audio.Recorder
	active   map[*Enemy]int
}

func newFakeWorld(player core.Vec2) *fakeWorld {
	return &fakeWorld{player: player, active: make(map[*Enemy]int)}
}

func (w *fakeWorld) PlayerPos() core.Vec2       { return w.player }
func (w *fakeWorld) DamagePlayer(amount float64) { w.damage += amount }
func (w *fakeWorld) DialogueActive() bool        { return w.dialogue }
func (w *fakeWorld) Play(s audio.Sound)          { w.sounds.Play(s) }

func (w *fakeWorld) SpawnProjectile(_ combat.ProjectileSpec, _, dir core.Vec2) {
	w.shots = append(w.shots, dir)
}

func (w *fakeWorld) RegisterEnemy(e *Enemy)   { w.active[e]++ }
func (w *fakeWorld) UnregisterEnemy(e *Enemy) { delete(w.active, e) }

// run advances n frames: enemy tick then scheduler tick, like the scene.
func run(e *Enemy, w *fakeWorld, tasks *sched.Scheduler, n int) {
	for i := 0; i < n; i++ {
		tasks.SetPaused(w.dialogue)
		e.Tick(w, dt)
		tasks.Tick(dt)
	}
}

func TestMeleeApproachesThenAttacks(t *testing.T) {
	w := newFakeWorld(core.V(10, 0))
	tasks := sched.New()
	cfg := DefaultConfig(KindMelee)
	cfg.MoveSpeed = 4
	e := New("m", cfg, core.Zero, tasks, w)

	run(e, w, tasks, 10)
	if e.State() != StateMoving {
		t.Fatalf("state = %v, expected Moving while far", e.State())
	}
	if e.Body.Pos.X <= 0 {
		t.Fatal("enemy should move toward the player")
	}

	run(e, w, tasks, 40)
	if e.State() != StateAttacking {
		t.Fatalf("state = %v, expected Attacking inside swing range", e.State())
	}
	if d := core.Dist(e.Body.Pos, w.player); d > cfg.SwingRange+1e-9 {
		t.Errorf("stopped at distance %v, outside swing range", d)
	}
}

func TestMeleeMissAtOnePointFiveStaysAttacking(t *testing.T) {
	w := newFakeWorld(core.V(1.5, 0))
	tasks := sched.New()
	cfg := DefaultConfig(KindMelee)
	cfg.SwingRange = 2
	cfg.HitRange = 1
	cfg.Windup = 0.5
	e := New("m", cfg, core.Zero, tasks, w)

	// First tick: Moving sees the player in swing range and switches.
	run(e, w, tasks, 1)
	w.player = core.V(1.5, 0).Add(e.Body.Pos)
	if e.State() != StateAttacking {
		t.Fatalf("state = %v, expected Attacking", e.State())
	}

	run(e, w, tasks, 1)
	if e.InProgress() != ActionAttack {
		t.Fatal("attack should be in progress")
	}
	run(e, w, tasks, 10)

	if e.Attacks() != 1 {
		t.Fatalf("attacks resolved = %d, expected 1", e.Attacks())
	}
	if e.Hits() != 0 || w.damage != 0 {
		t.Errorf("1.5 > hitRange must miss: hits=%d damage=%v", e.Hits(), w.damage)
	}
	if e.State() != StateAttacking {
		t.Errorf("1.5 <= swingRange must stay Attacking, got %v", e.State())
	}
}

func TestMeleeHitDamagesPlayer(t *testing.T) {
	w := newFakeWorld(core.V(0.5, 0))
	tasks := sched.New()
	cfg := DefaultConfig(KindMelee)
	cfg.Damage = 2
	e := New("m", cfg, core.Zero, tasks, w)

	run(e, w, tasks, 1)
	run(e, w, tasks, 11)
	if e.Hits() != 1 || w.damage != 2 {
		t.Errorf("hits=%d damage=%v, expected one hit for 2", e.Hits(), w.damage)
	}
	if w.sounds.Count(audio.SoundHit) != 1 {
		t.Error("hit sound not played")
	}
}

func TestMeleeRevertsWhenPlayerLeaves(t *testing.T) {
	w := newFakeWorld(core.V(1, 0))
	tasks := sched.New()
	e := New("m", DefaultConfig(KindMelee), core.Zero, tasks, w)

	run(e, w, tasks, 2)
	w.player = core.V(5, 0)
	run(e, w, tasks, 10)
	if e.State() != StateMoving {
		t.Errorf("state = %v, expected Moving after player left swing range", e.State())
	}
}

func TestAttackIsNotReentrant(t *testing.T) {
	w := newFakeWorld(core.V(1, 0))
	tasks := sched.New()
	e := New("m", DefaultConfig(KindMelee), core.Zero, tasks, w)

	run(e, w, tasks, 5)
	if tasks.Len() != 1 {
		t.Errorf("%d tasks running, expected a single attack", tasks.Len())
	}
}

func TestShooterBurstTiming(t *testing.T) {
	w := newFakeWorld(core.V(0, 10))
	tasks := sched.New()
	cfg := DefaultConfig(KindShooter)
	cfg.ShotCooldown = 1
	e := New("s", cfg, core.Zero, tasks, w)

	run(e, w, tasks, 1)
	if e.Shots() != 1 {
		t.Fatalf("first shot should fire immediately, shots=%d", e.Shots())
	}
	run(e, w, tasks, 3) // 0.15s
	if e.Shots() != 2 {
		t.Fatalf("second shot after 0.15s, shots=%d", e.Shots())
	}
	run(e, w, tasks, 3)
	if e.Shots() != 3 {
		t.Fatalf("third shot after 0.30s, shots=%d", e.Shots())
	}

	run(e, w, tasks, 19)
	if e.Shots() != 3 {
		t.Fatalf("cooldown should hold fire, shots=%d", e.Shots())
	}
	run(e, w, tasks, 2)
	if e.Shots() != 4 {
		t.Errorf("next burst after cooldown, shots=%d", e.Shots())
	}

	for _, dir := range w.shots {
		if dir.Normalize() != core.V(0, 1) {
			t.Errorf("shot aimed %v, expected toward the player", dir)
		}
	}
	if w.sounds.Count(audio.SoundEnemyShot) != e.Shots() {
		t.Error("every shot should play a sound")
	}
}

func TestShooterSilentDuringDialogue(t *testing.T) {
	w := newFakeWorld(core.V(0, 10))
	w.dialogue = true
	tasks := sched.New()
	e := New("s", DefaultConfig(KindShooter), core.Zero, tasks, w)

	run(e, w, tasks, 100)
	if e.Shots() != 0 {
		t.Errorf("fired %d shots during dialogue", e.Shots())
	}

	w.dialogue = false
	run(e, w, tasks, 1)
	if e.Shots() != 1 {
		t.Errorf("should fire once dialogue closes, shots=%d", e.Shots())
	}
}

func TestShooterIdlesOutOfAggro(t *testing.T) {
	w := newFakeWorld(core.V(0, 100))
	tasks := sched.New()
	cfg := DefaultConfig(KindShooter)
	cfg.AggroRange = 10
	cfg.ShotCooldown = 0.2
	e := New("s", cfg, core.Zero, tasks, w)

	run(e, w, tasks, 20)
	if e.State() != StateIdle {
		t.Fatalf("state = %v, expected Idle with player out of range", e.State())
	}
	shots := e.Shots()
	run(e, w, tasks, 40)
	if e.Shots() != shots {
		t.Error("idle shooter kept firing")
	}

	w.player = core.V(0, 5)
	run(e, w, tasks, 2)
	if e.State() != StateShooting || e.Shots() == shots {
		t.Errorf("state=%v shots=%d, expected to resume shooting", e.State(), e.Shots())
	}
}

func TestRegistrationFollowsActivation(t *testing.T) {
	w := newFakeWorld(core.V(0, 10))
	tasks := sched.New()
	e := New("s", DefaultConfig(KindShooter), core.Zero, tasks, w)
	if w.active[e] != 1 {
		t.Fatal("new enemy should register")
	}

	run(e, w, tasks, 1)
	e.Body.ApplyDamage(100)
	if _, ok := w.active[e]; ok {
		t.Error("dead enemy should unregister")
	}
	if e.InProgress() != ActionNone || tasks.Len() != 0 {
		t.Error("death should cancel the running action")
	}

	e.Body.SetActive(true)
	e.Initialize()
	if w.active[e] != 1 {
		t.Error("re-enabled enemy should register again")
	}
	if e.Body.Health() != e.Body.MaxHealth() || e.State() != StateShooting {
		t.Errorf("Initialize: health=%v state=%v", e.Body.Health(), e.State())
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"melee", KindMelee, true},
		{"demo", KindMelee, true},
		{"shooter", KindShooter, true},
		{"boss", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseKind(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseKind(%q) = %v,%v", tc.in, got, ok)
		}
	}
}
