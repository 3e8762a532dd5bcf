package combat

import (
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/entity"
)

// Damageable is anything a projectile can hurt.
type Damageable interface {
	ApplyDamage(amount float64)
}

// Projectile is a reusable shot. Launching reactivates it with a new
// position and direction; deactivation either returns it to its pool or,
// when DestroyOnDeactivate is set, marks it for removal from the world.
type Projectile struct {
	Spec                ProjectileSpec
	DestroyOnDeactivate bool

	Pos       core.Vec2
	Prev      core.Vec2 // position before the last Tick
	Direction core.Vec2
	Rotation  float64
	Damage    float64
	Speed     float64
	Tint      core.Color
	Final     bool

	active    bool
	destroyed bool
}

// NewProjectile allocates an inactive projectile.
func NewProjectile(spec ProjectileSpec, destroyOnDeactivate bool) *Projectile {
	return &Projectile{Spec: spec, DestroyOnDeactivate: destroyOnDeactivate}
}

// Launch activates the projectile. The final flag selects the stronger,
// faster variant and its tint; both are fixed for the projectile's flight.
func (p *Projectile) Launch(pos, direction core.Vec2, final bool) {
	p.Pos = pos
	p.Prev = pos
	p.Direction = direction.Normalize()
	p.Rotation = p.Direction.Angle()
	p.Final = final
	if final {
		p.Damage = p.Spec.FinalShotDamage
		p.Speed = p.Spec.FinalShotSpeed
		p.Tint = core.TintFinalShot
	} else {
		p.Damage = p.Spec.Damage
		p.Speed = p.Spec.Speed
		p.Tint = core.TintNormalShot
	}
	p.active = true
}

// Active reports whether the projectile is in flight.
func (p *Projectile) Active() bool { return p.active }

// Destroyed reports whether the projectile should be removed from the world.
func (p *Projectile) Destroyed() bool { return p.destroyed }

// Deactivate ends the flight.
func (p *Projectile) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	if p.DestroyOnDeactivate {
		p.destroyed = true
	}
}

// Tick moves the projectile along its direction.
func (p *Projectile) Tick(dt float64) {
	if !p.active {
		return
	}
	p.Prev = p.Pos
	p.Pos = p.Pos.Add(p.Direction.Scale(p.Speed * dt))
}

// Collide applies the collision rules for an object of the given category.
// target may be nil for categories that cannot take damage. It reports
// whether the projectile was stopped.
func (p *Projectile) Collide(tag entity.Tag, target Damageable) bool {
	if !p.active {
		return false
	}
	switch {
	case p.Spec.Targets.Has(tag):
		if target != nil {
			target.ApplyDamage(p.Damage)
		}
	case tag == entity.TagWall, tag == entity.TagObstacle:
	default:
		return false
	}
	p.Deactivate()
	return true
}

// Radius returns the collision radius.
func (p *Projectile) Radius() float64 {
	if p.Spec.Radius <= 0 {
		return 0.25
	}
	return p.Spec.Radius
}
