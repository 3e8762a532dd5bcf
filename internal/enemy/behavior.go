package enemy

import (
	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

// Kind selects an enemy's behavior table.
type Kind int

const (
	KindMelee Kind = iota
	KindShooter
)

// String returns the kind name used in level files.
func (k Kind) String() string {
	switch k {
	case KindMelee:
		return "melee"
	case KindShooter:
		return "shooter"
	default:
		return "unknown"
	}
}

// ParseKind maps a level file name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "melee", "demo":
		return KindMelee, true
	case "shooter", "shooting":
		return KindShooter, true
	default:
		return 0, false
	}
}

// State is a behavior state. Each kind uses its own closed subset.
type State int

const (
	StateMoving State = iota
	StateAttacking
	StateShooting
	StateIdle
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMoving:
		return "Moving"
	case StateAttacking:
		return "Attacking"
	case StateShooting:
		return "Shooting"
	case StateIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Action is the work a state maps to.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionAttack
	ActionShoot
	ActionWatch
)

// actionSpec describes how an action runs. Guarded actions are multi-step
// tasks marked in progress until they finish; unguarded actions run one
// step every tick.
type actionSpec struct {
	guarded bool
	task    func(e *Enemy, ctx Context) sched.Task
	step    func(e *Enemy, ctx Context, dt float64)
}

type behavior struct {
	initial State
	table   map[State]Action
}

var behaviors = map[Kind]behavior{
	KindMelee: {
		initial: StateMoving,
		table: map[State]Action{
			StateMoving:    ActionMove,
			StateAttacking: ActionAttack,
		},
	},
	KindShooter: {
		initial: StateShooting,
		table: map[State]Action{
			StateShooting: ActionShoot,
			StateIdle:     ActionWatch,
		},
	},
}

var actions = map[Action]actionSpec{
	ActionMove:   {step: moveStep},
	ActionWatch:  {step: watchStep},
	ActionAttack: {guarded: true, task: attackTask},
	ActionShoot:  {guarded: true, task: burstTask},
}

// moveStep walks toward the player and switches to attacking in swing range.
func moveStep(e *Enemy, ctx Context, dt float64) {
	e.Body.Pos = core.MoveTowards(e.Body.Pos, ctx.PlayerPos(), e.cfg.MoveSpeed*dt)
	if e.PlayerInRange(ctx, e.cfg.SwingRange) {
		e.state = StateAttacking
	}
}

// attackTask winds up, then hits if the player is inside hit range. The
// enemy only goes back to moving once the player has left swing range.
func attackTask(e *Enemy, ctx Context) sched.Task {
	return sched.Seq(
		sched.Wait(e.cfg.Windup),
		sched.Do(func() {
			e.attacks++
			if e.PlayerInRange(ctx, e.cfg.HitRange) {
				e.hits++
				ctx.DamagePlayer(e.cfg.Damage)
				ctx.Play(audio.SoundHit)
			}
			if !e.PlayerInRange(ctx, e.cfg.SwingRange) {
				e.state = StateMoving
			}
		}),
	)
}

// burstTask fires a burst of one-off projectiles at the player's current
// position, then waits out the shot cooldown.
func burstTask(e *Enemy, ctx Context) sched.Task {
	steps := make([]sched.Step, 0, 2*e.cfg.BurstCount+2)
	for i := 0; i < e.cfg.BurstCount; i++ {
		if i > 0 {
			steps = append(steps, sched.Wait(e.cfg.BurstInterval))
		}
		steps = append(steps, sched.Do(func() { e.shoot(ctx) }))
	}
	steps = append(steps,
		sched.Wait(e.cfg.ShotCooldown),
		sched.Do(func() {
			if !e.inAggro(ctx) {
				e.state = StateIdle
			}
		}),
	)
	return sched.Seq(steps...)
}

// watchStep waits for the player to come within aggro range.
func watchStep(e *Enemy, ctx Context, _ float64) {
	if e.inAggro(ctx) {
		e.state = StateShooting
	}
}

func (e *Enemy) shoot(ctx Context) {
	dir := ctx.PlayerPos().Sub(e.Body.Pos)
	if dir.IsZero() {
		dir = core.Up
	}
	e.shots++
	ctx.SpawnProjectile(e.cfg.Projectile, e.Body.Pos, dir)
	ctx.Play(audio.SoundEnemyShot)
}

func (e *Enemy) inAggro(ctx Context) bool {
	return e.cfg.AggroRange <= 0 || e.PlayerInRange(ctx, e.cfg.AggroRange)
}
