// Package enemy implements enemies as a damageable body plus a per-kind
// state→action table. Multi-step actions are sched tasks guarded against
// re-entry; single-step actions run every tick.
package enemy

import (
	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/diag"
	"github.com/vovakirdan/tui-rewind/internal/entity"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

// Context is what an enemy needs from the world around it.
type Context interface {
	PlayerPos() core.Vec2
	DamagePlayer(amount float64)
	SpawnProjectile(spec combat.ProjectileSpec, pos, dir core.Vec2)
	DialogueActive() bool
	Play(s audio.Sound)
}

// Registry tracks active enemies.
type Registry interface {
	RegisterEnemy(e *Enemy)
	UnregisterEnemy(e *Enemy)
}

// Config holds per-enemy tuning.
type Config struct {
	Kind          Kind
	MaxHealth     float64
	MoveSpeed     float64
	Damage        float64
	SwingRange    float64
	HitRange      float64
	Windup        float64
	BurstCount    int
	BurstInterval float64
	ShotCooldown  float64
	AggroRange    float64 // zero means always aggressive
	Projectile    combat.ProjectileSpec
	HealthbarRate float64
}

// DefaultConfig returns stock tuning for a kind.
func DefaultConfig(k Kind) Config {
	cfg := Config{
		Kind:          k,
		MaxHealth:     3,
		MoveSpeed:     1,
		Damage:        1,
		SwingRange:    2,
		HitRange:      1,
		Windup:        0.5,
		BurstCount:    3,
		BurstInterval: 0.15,
		ShotCooldown:  2,
		HealthbarRate: 6,
		Projectile: combat.ProjectileSpec{
			Damage:          1,
			Speed:           8,
			FinalShotDamage: 1,
			FinalShotSpeed:  8,
			Targets:         entity.TagPlayer,
		},
	}
	if k == KindShooter {
		cfg.AggroRange = 30
	}
	return cfg
}

// Enemy is one enemy instance.
type Enemy struct {
	Body *entity.Entity

	cfg        Config
	beh        behavior
	tasks      *sched.Scheduler
	state      State
	inProgress Action
	task       *sched.Handle

	attacks int
	hits    int
	shots   int
}

// New creates an active enemy and registers it with reg. The enemy
// registers again whenever it is re-enabled and unregisters on disable.
func New(id string, cfg Config, pos core.Vec2, tasks *sched.Scheduler, reg Registry) *Enemy {
	beh, ok := behaviors[cfg.Kind]
	diag.Assert(ok, "unknown enemy kind", "kind", cfg.Kind)

	body := entity.New(id, entity.TagEnemy, cfg.MaxHealth, core.V(cfg.MoveSpeed, cfg.MoveSpeed))
	body.Pos = pos
	body.AttachHealthbar(entity.NewHealthbar(cfg.HealthbarRate))

	e := &Enemy{
		Body:  body,
		cfg:   cfg,
		beh:   beh,
		tasks: tasks,
		state: beh.initial,
	}
	body.OnDisable(func(*entity.Entity) {
		e.stopAction()
		if reg != nil {
			reg.UnregisterEnemy(e)
		}
	})
	body.OnEnable(func(*entity.Entity) {
		if reg != nil {
			reg.RegisterEnemy(e)
		}
	})
	if reg != nil {
		reg.RegisterEnemy(e)
	}
	return e
}

// ID returns the enemy id.
func (e *Enemy) ID() string { return e.Body.ID }

// Kind returns the behavior kind.
func (e *Enemy) Kind() Kind { return e.cfg.Kind }

// Config returns the tuning the enemy was built with.
func (e *Enemy) Config() Config { return e.cfg }

// State returns the current behavior state.
func (e *Enemy) State() State { return e.state }

// InProgress returns the guarded action currently running.
func (e *Enemy) InProgress() Action { return e.inProgress }

// Attacks returns the number of resolved melee attacks.
func (e *Enemy) Attacks() int { return e.attacks }

// Hits returns the number of melee attacks that connected.
func (e *Enemy) Hits() int { return e.hits }

// Shots returns the number of projectiles fired.
func (e *Enemy) Shots() int { return e.shots }

// PlayerInRange reports whether the player is within r.
func (e *Enemy) PlayerInRange(ctx Context, r float64) bool {
	return e.Body.InRange(ctx.PlayerPos(), r)
}

// Tick starts the action mapped to the current state unless that action is
// already in progress. Nothing happens while dialogue is on screen.
func (e *Enemy) Tick(ctx Context, dt float64) {
	if !e.Body.Active() {
		return
	}
	if bar := e.Body.Healthbar(); bar != nil {
		bar.Tick(dt)
	}
	if ctx.DialogueActive() {
		return
	}

	want := e.beh.table[e.state]
	if want == ActionNone || want == e.inProgress {
		return
	}
	spec := actions[want]
	if !spec.guarded {
		spec.step(e, ctx, dt)
		return
	}

	inner := spec.task(e, ctx)
	e.inProgress = want
	e.task = e.tasks.Start(sched.TaskFunc(func(dt float64) bool {
		if !inner.Step(dt) {
			return false
		}
		e.inProgress = ActionNone
		return true
	}))
}

// Initialize returns a respawned enemy to full health and its initial state.
func (e *Enemy) Initialize() {
	e.stopAction()
	e.Body.Restore()
	e.state = e.beh.initial
}

func (e *Enemy) stopAction() {
	e.tasks.Stop(e.task)
	e.task = nil
	e.inProgress = ActionNone
}
