// Package entity implements the damageable base shared by the player,
// enemies and destructible obstacles, and the healthbar display adapter.
package entity

import "github.com/vovakirdan/tui-rewind/internal/core"

// Tag is the collision category of an object, used by triggers and by
// projectile target masks.
type Tag uint8

const (
	TagPlayer Tag = 1 << iota
	TagEnemy
	TagObstacle
	TagWall
	TagRoom
	TagInteractable
)

// String returns the category name.
func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "Player"
	case TagEnemy:
		return "Enemy"
	case TagObstacle:
		return "Obstacle"
	case TagWall:
		return "Wall"
	case TagRoom:
		return "Room"
	case TagInteractable:
		return "Interactable"
	default:
		return "Mixed"
	}
}

// Has reports whether every bit of o is set in t.
func (t Tag) Has(o Tag) bool {
	return t&o == o && o != 0
}

// Entity holds base attributes and the damage rule. Deactivation is the
// death signal: there is no separate dead state.
type Entity struct {
	ID     string
	Tag    Tag
	Pos    core.Vec2
	Radius float64

	health       float64
	maxHealth    float64
	invulnerable bool
	speed        core.Vec2
	active       bool

	bar       *Healthbar
	onEnable  []func(*Entity)
	onDisable []func(*Entity)
}

// New creates an active entity at full health.
func New(id string, tag Tag, maxHealth float64, speed core.Vec2) *Entity {
	return &Entity{
		ID:        id,
		Tag:       tag,
		Radius:    0.5,
		health:    maxHealth,
		maxHealth: maxHealth,
		speed:     speed,
		active:    true,
	}
}

// Health returns current health. It can exceed MaxHealth and go negative.
func (e *Entity) Health() float64 { return e.health }

// MaxHealth returns the configured maximum.
func (e *Entity) MaxHealth() float64 { return e.maxHealth }

// Invulnerable reports whether damage is currently ignored.
func (e *Entity) Invulnerable() bool { return e.invulnerable }

// SetInvulnerable toggles damage immunity.
func (e *Entity) SetInvulnerable(v bool) { e.invulnerable = v }

// Speed returns the per-axis movement speed.
func (e *Entity) Speed() core.Vec2 { return e.speed }

// SetSpeed replaces the per-axis movement speed.
func (e *Entity) SetSpeed(v core.Vec2) { e.speed = v }

// SetMaxHealth changes the maximum without touching current health.
func (e *Entity) SetMaxHealth(v float64) { e.maxHealth = v }

// Healthbar returns the attached bar, or nil.
func (e *Entity) Healthbar() *Healthbar { return e.bar }

// AttachHealthbar binds a display bar and initializes it from current health.
func (e *Entity) AttachHealthbar(bar *Healthbar) {
	e.bar = bar
	if bar != nil {
		bar.Initialize(e.maxHealth, e.health)
	}
}

// ApplyDamage subtracts amount from health, pushes the new value to the
// healthbar and deactivates the entity once health reaches zero.
// Negative amounts are not rejected and heal past the maximum.
func (e *Entity) ApplyDamage(amount float64) {
	if e.invulnerable || !e.active {
		return
	}
	e.health -= amount
	if e.bar != nil {
		e.bar.Update(e.health)
	}
	if e.health <= 0 {
		e.SetActive(false)
	}
}

// Restore returns the entity to full health and re-initializes its bar.
func (e *Entity) Restore() {
	e.health = e.maxHealth
	if e.bar != nil {
		e.bar.Initialize(e.maxHealth, e.health)
	}
}

// Active reports whether the entity takes part in the simulation.
func (e *Entity) Active() bool { return e.active }

// SetActive changes the active state, firing enable/disable hooks on transitions.
func (e *Entity) SetActive(active bool) {
	if e.active == active {
		return
	}
	e.active = active
	hooks := e.onDisable
	if active {
		hooks = e.onEnable
	}
	for _, fn := range hooks {
		fn(e)
	}
}

// OnEnable registers a hook run when the entity becomes active.
func (e *Entity) OnEnable(fn func(*Entity)) {
	e.onEnable = append(e.onEnable, fn)
}

// OnDisable registers a hook run when the entity becomes inactive.
func (e *Entity) OnDisable(fn func(*Entity)) {
	e.onDisable = append(e.onDisable, fn)
}

// InRange reports whether p lies within r of the entity.
func (e *Entity) InRange(p core.Vec2, r float64) bool {
	return core.Dist(e.Pos, p) <= r
}

// Overlaps reports whether two entities' circles intersect.
func (e *Entity) Overlaps(o *Entity) bool {
	return core.Dist(e.Pos, o.Pos) < e.Radius+o.Radius
}
