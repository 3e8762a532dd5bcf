package world

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/entity"
)

// Toggle is anything a level script can switch on or off by id.
type Toggle interface {
	Active() bool
	SetActive(v bool)
}

// Obstacle is a solid box that blocks movement and projectiles. A
// destructible obstacle carries a Body and stops blocking once its health
// runs out.
type Obstacle struct {
	ID   string
	Box  core.Bounds
	Body *entity.Entity // nil when indestructible

	active bool
	solid  *resolv.Object
}

// NewObstacle creates an active, indestructible obstacle centred on pos.
func NewObstacle(id string, pos, size core.Vec2) *Obstacle {
	return &Obstacle{ID: id, Box: core.BoundsAround(pos, size), active: true}
}

// NewDestructibleObstacle creates an obstacle with health. A positive
// barRate attaches a healthbar smoothed at that rate.
func NewDestructibleObstacle(id string, pos, size core.Vec2, health, barRate float64) *Obstacle {
	o := NewObstacle(id, pos, size)
	o.Body = entity.New(id, entity.TagObstacle, health, core.Zero)
	o.Body.Pos = pos
	o.Body.Radius = math.Max(size.X, size.Y) / 2
	if barRate > 0 {
		o.Body.AttachHealthbar(entity.NewHealthbar(barRate))
	}
	return o
}

// Destructible reports whether projectiles can break the obstacle.
func (o *Obstacle) Destructible() bool { return o.Body != nil }

// Active reports whether the obstacle is solid.
func (o *Obstacle) Active() bool {
	if o.Body != nil {
		return o.Body.Active()
	}
	return o.active
}

// SetActive enables or removes the obstacle. Bringing back a broken
// obstacle restores its health.
func (o *Obstacle) SetActive(v bool) {
	if o.Body == nil {
		o.active = v
		return
	}
	if v && !o.Body.Active() {
		o.Body.Restore()
	}
	o.Body.SetActive(v)
}

// target is what a projectile striking the obstacle damages.
func (o *Obstacle) target() combat.Damageable {
	if o.Body == nil {
		return nil
	}
	return o.Body
}

// Fog hides an unexplored area until revealed.
type Fog struct {
	ID     string
	Box    core.Bounds
	active bool
}

// NewFog creates an active fog region centred on pos.
func NewFog(id string, pos, size core.Vec2) *Fog {
	return &Fog{ID: id, Box: core.BoundsAround(pos, size), active: true}
}

// Active reports whether the fog still covers its area.
func (f *Fog) Active() bool { return f.active }

// SetActive covers or reveals the area.
func (f *Fog) SetActive(v bool) { f.active = v }

// Covers reports whether p is hidden by the fog.
func (f *Fog) Covers(p core.Vec2) bool {
	return f.active && f.Box.Contains(p)
}

// circleHitsBox tests a circle against an axis-aligned box using the
// closest point on the box. Touching does not count.
func circleHitsBox(p core.Vec2, r float64, b core.Bounds) bool {
	closest := b.Clip(p)
	return core.Dist(p, closest) < r || (r == 0 && b.Contains(p))
}
