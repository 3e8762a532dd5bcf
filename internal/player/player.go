// Package player implements the player controller: movement, dodge-roll,
// time rewind, the weapon/reload cycle and the interaction list.
//
// State is a set of orthogonal flags (rolling, reloading, canMove, fire held)
// rather than one enum. Multi-step actions run as sched tasks on the
// scheduler passed to New; the caller ticks that scheduler once per frame.
package player

import (
	"math"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/entity"
	"github.com/vovakirdan/tui-rewind/internal/sched"
)

// timeEps absorbs float drift when comparing accumulated time.
const timeEps = 1e-9

// Config holds tuning values for the player.
type Config struct {
	MaxHealth      float64
	Speed          core.Vec2
	RollDuration   float64
	RollMultiplier float64
	RollCooldown   float64
	RewindCooldown float64
	RewindPeriod   float64 // seconds between samples
	RewindCapacity int
	RewindDepth    int     // slot index used as the rewind target
	MarkerEase     float64 // marker smoothing rate per second
	HealthbarRate  float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MaxHealth:      10,
		Speed:          core.V(12, 6),
		RollDuration:   0.25,
		RollMultiplier: 2.5,
		RollCooldown:   0.6,
		RewindCooldown: 3,
		RewindPeriod:   0.2,
		RewindCapacity: 25,
		RewindDepth:    5,
		MarkerEase:     8,
		HealthbarRate:  6,
	}
}

// Interactable is something the player can act on while standing near it.
type Interactable interface {
	Interact()
	InteractionPriority() int
}

// Controller drives the player entity.
type Controller struct {
	Body *entity.Entity

	cfg    Config
	tasks  *sched.Scheduler
	sounds audio.Player

	velocity core.Vec2
	buffered core.Vec2
	canMove  bool

	rolling      bool
	rollCooldown float64
	rollTask     *sched.Handle

	rewind         *RewindBuffer
	marker         core.Vec2
	rewindCooldown float64
	sampler        *sched.Handle

	armory        *combat.Armory
	field         *combat.Field
	pools         map[int]*combat.Pool
	gun           *combat.Gun
	pool          *combat.Pool
	ammo          int
	reloading     bool
	reloadElapsed float64
	reloadTask    *sched.Handle
	fireHeld      bool
	sinceLastShot float64
	aim           core.Vec2
	shots         int

	interactables []Interactable
}

// New creates a controller at pos with the first gun of armory equipped.
// Pooled projectiles are registered with field.
func New(cfg Config, pos core.Vec2, armory *combat.Armory, field *combat.Field, tasks *sched.Scheduler, sounds audio.Player) *Controller {
	if sounds == nil {
		sounds = audio.Nop{}
	}
	body := entity.New("player", entity.TagPlayer, cfg.MaxHealth, cfg.Speed)
	body.Pos = pos
	body.AttachHealthbar(entity.NewHealthbar(cfg.HealthbarRate))

	c := &Controller{
		Body:          body,
		cfg:           cfg,
		tasks:         tasks,
		sounds:        sounds,
		canMove:       true,
		rewind:        NewRewindBuffer(cfg.RewindCapacity),
		marker:        pos,
		armory:        armory,
		field:         field,
		pools:         make(map[int]*combat.Pool),
		sinceLastShot: math.Inf(1),
		aim:           pos.Add(core.Up),
	}
	if armory != nil {
		c.Equip(armory.After(nil))
	}
	c.sampler = tasks.Every(cfg.RewindPeriod, c.sample)
	return c
}

// Pos returns the player position.
func (c *Controller) Pos() core.Vec2 { return c.Body.Pos }

// Velocity returns the current movement input.
func (c *Controller) Velocity() core.Vec2 { return c.velocity }

// CanMove reports whether movement and firing are enabled.
func (c *Controller) CanMove() bool { return c.canMove }

// SetCanMove enables or disables movement. Either way velocity is cleared.
func (c *Controller) SetCanMove(v bool) {
	c.canMove = v
	c.velocity = core.Zero
}

// Teleport moves the player without affecting the rewind history.
func (c *Controller) Teleport(pos core.Vec2) {
	c.Body.Pos = pos
}

// SetAim records the pointer position in world space.
func (c *Controller) SetAim(world core.Vec2) { c.aim = world }

// Aim returns the current aim point.
func (c *Controller) Aim() core.Vec2 { return c.aim }

// OnMove receives a movement input change. During a roll the input is
// buffered and applied once the roll ends.
func (c *Controller) OnMove(v core.Vec2) {
	if c.rolling {
		c.buffered = v
		return
	}
	c.velocity = v
}

// Tick advances per-frame state: cooldowns, movement, continuous fire and
// the rewind marker.
func (c *Controller) Tick(dt float64) {
	if !c.Body.Active() {
		return
	}
	c.rollCooldown = math.Max(0, c.rollCooldown-dt)
	c.rewindCooldown = math.Max(0, c.rewindCooldown-dt)
	c.sinceLastShot += dt

	if c.canMove && !c.rolling {
		c.Body.Pos = c.Body.Pos.Add(c.velocity.Mul(c.Body.Speed()).Scale(dt))
	}

	if c.fireHeld && c.gun != nil && c.gun.FireContinuously {
		c.fire()
	}

	if target, ok := c.rewind.At(c.cfg.RewindDepth); ok {
		c.marker = core.Lerp(c.marker, target.Pos, c.cfg.MarkerEase*dt)
	} else {
		c.marker = c.Body.Pos
	}

	if bar := c.Body.Healthbar(); bar != nil {
		bar.Tick(dt)
	}
}

// Stop cancels every running player task.
func (c *Controller) Stop() {
	c.tasks.Stop(c.sampler)
	c.tasks.Stop(c.rollTask)
	c.cancelReload()
}
