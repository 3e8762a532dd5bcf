package world

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/combat"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/entity"
)

const (
	spaceCell   = 2 // collision cell side in world units
	spaceMargin = 4 // padding around the level so edge queries still land in cells
)

// Collision tags, named after the entity categories.
var (
	tagPlayer       = entity.TagPlayer.String()
	tagEnemy        = entity.TagEnemy.String()
	tagObstacle     = entity.TagObstacle.String()
	tagWall         = entity.TagWall.String()
	tagInteractable = entity.TagInteractable.String()
)

// space indexes a level's solids, bodies and trigger zones. resolv cells
// start at zero, so world points are shifted by origin.
type space struct {
	space  *resolv.Space
	origin core.Vec2
	query  *resolv.Object
	bodies map[*entity.Entity]*resolv.Object
}

func newSpace(area core.Bounds) *space {
	area = area.Expand(spaceMargin)
	size := area.Size()
	sp := &space{
		space:  resolv.NewSpace(int(math.Ceil(size.X)), int(math.Ceil(size.Y)), spaceCell, spaceCell),
		origin: core.V(area.MinX, area.MinY),
		bodies: make(map[*entity.Entity]*resolv.Object),
	}
	// The query object has no tags, so no lookup ever returns it.
	sp.query = sp.add(core.Bounds{MaxX: 1, MaxY: 1}, nil)
	return sp
}

// add creates an object covering b and puts it in the space.
func (sp *space) add(b core.Bounds, data any, tags ...string) *resolv.Object {
	obj := resolv.NewObject(0, 0, 0, 0, tags...)
	obj.Data = data
	sp.space.Add(obj)
	sp.place(obj, b)
	return obj
}

// place moves and resizes obj to cover b.
func (sp *space) place(obj *resolv.Object, b core.Bounds) {
	size := b.Size()
	if obj.Shape == nil || obj.W != size.X || obj.H != size.Y {
		obj.W, obj.H = size.X, size.Y
		obj.SetShape(resolv.NewRectangle(0, 0, size.X, size.Y))
	}
	obj.X, obj.Y = b.MinX-sp.origin.X, b.MinY-sp.origin.Y
	obj.Update()
}

// setPresent adds or removes obj so it only collides while present.
func (sp *space) setPresent(obj *resolv.Object, present bool) {
	switch {
	case present && obj.Space == nil:
		sp.space.Add(obj)
	case !present && obj.Space != nil:
		sp.space.Remove(obj)
	}
}

// overlapping returns the objects carrying any of tags whose shapes
// overlap b, in cell order.
func (sp *space) overlapping(b core.Bounds, tags ...string) []*resolv.Object {
	sp.place(sp.query, b)
	c := sp.query.Check(0, 0, tags...)
	if c == nil {
		return nil
	}
	var out []*resolv.Object
	for _, obj := range c.Objects {
		if obj.Shape != nil && sp.query.Shape.Intersection(0, 0, obj.Shape) != nil {
			out = append(out, obj)
		}
	}
	return out
}

// track mirrors a body into the space: present while active, at its
// current position.
func (sp *space) track(e *entity.Entity) {
	obj, ok := sp.bodies[e]
	if !ok {
		obj = sp.add(bodyBox(e.Pos, e.Radius), e, e.Tag.String())
		sp.bodies[e] = obj
	}
	sp.setPresent(obj, e.Active())
	if e.Active() {
		sp.place(obj, bodyBox(e.Pos, e.Radius))
	}
}

// bodyBox is the collision box of a body of radius r at p.
func bodyBox(p core.Vec2, r float64) core.Bounds {
	return core.BoundsAround(p, core.V(2*r, 2*r))
}

// buildSpace sizes the space to everything placed so far and indexes it.
func (s *Scene) buildSpace() {
	area := bodyBox(s.Player.Pos(), s.Player.Body.Radius)
	for _, r := range s.Manager.Rooms() {
		area = area.Union(r.Area())
	}
	for _, o := range s.obstacles {
		area = area.Union(o.Box)
	}
	for _, t := range s.triggers {
		area = area.Union(t.Area())
	}
	s.space = newSpace(area)
	for _, o := range s.obstacles {
		s.indexObstacle(o)
	}
	for _, d := range s.doors {
		s.indexDoor(d)
	}
	for _, t := range s.triggers {
		s.indexTrigger(t)
	}
	s.syncSpace()
}

func (s *Scene) indexObstacle(o *Obstacle) {
	o.solid = s.space.add(o.Box, o, tagObstacle)
	s.space.setPresent(o.solid, o.Active())
}

func (s *Scene) indexDoor(d *Door) {
	d.solid = s.space.add(d.Box, d, tagWall)
	s.space.setPresent(d.solid, d.Active())
}

func (s *Scene) indexTrigger(t Trigger) {
	s.zones[t] = s.space.add(t.Area(), t, tagInteractable)
}

// syncSpace makes the space match the scene: solids and zones follow their
// owners' active state, bodies follow their entities.
func (s *Scene) syncSpace() {
	for _, o := range s.obstacles {
		s.space.setPresent(o.solid, o.Active())
	}
	for _, d := range s.doors {
		s.space.setPresent(d.solid, d.Active())
	}
	for t, obj := range s.zones {
		s.space.setPresent(obj, t.Active())
	}
	s.trackBodies()
}

func (s *Scene) trackBodies() {
	s.space.track(s.Player.Body)
	for _, e := range s.enemies {
		s.space.track(e.Body)
	}
}

// Blocked reports whether a body of radius r cannot stand at p: off every
// room floor, or overlapping an obstacle or a closed door.
func (s *Scene) Blocked(p core.Vec2, r float64) bool {
	if s.Manager.RoomAt(p) == nil {
		return true
	}
	if s.space == nil {
		return false
	}
	return len(s.space.overlapping(bodyBox(p, r), tagObstacle, tagWall)) > 0
}

// resolve undoes a move into solid space one axis at a time, so bodies
// slide along walls instead of sticking to them.
func (s *Scene) resolve(from, to core.Vec2, r float64) core.Vec2 {
	if to == from || !s.Blocked(to, r) {
		return to
	}
	if x := core.V(to.X, from.Y); !s.Blocked(x, r) {
		return x
	}
	if y := core.V(from.X, to.Y); !s.Blocked(y, r) {
		return y
	}
	return from
}

// sweepStep is the spacing of the points tested along a projectile's
// last move, so fast shots cannot pass through thin geometry.
const sweepStep = 0.25

// collideProjectiles reports overlaps to every active projectile along the
// path it travelled this frame. The first contact stops the sweep.
func (s *Scene) collideProjectiles() {
	room := s.Manager.CurrentRoom()
	s.Field.Each(func(p *combat.Projectile) {
		from, to := p.Prev, p.Pos
		steps := max(int(math.Ceil(core.Dist(from, to)/sweepStep)), 1)
		for i := 1; i <= steps; i++ {
			pt := core.Lerp(from, to, float64(i)/float64(steps))
			if s.collideAt(p, pt, room) {
				p.Pos = pt
				return
			}
		}
	})
}

// collideAt tests one point: the room floor first, then solids, then the
// player, then enemies.
func (s *Scene) collideAt(p *combat.Projectile, pt core.Vec2, room *Room) bool {
	if room != nil && !room.Contains(pt) {
		return p.Collide(entity.TagWall, nil)
	}
	box := bodyBox(pt, p.Radius())
	for _, obj := range s.space.overlapping(box, tagObstacle, tagWall) {
		switch solid := obj.Data.(type) {
		case *Obstacle:
			if solid.Active() {
				return s.strike(p, solid)
			}
		case *Door:
			if solid.Active() {
				return p.Collide(entity.TagWall, nil)
			}
		}
	}
	for _, tag := range []string{tagPlayer, tagEnemy} {
		for _, obj := range s.space.overlapping(box, tag) {
			body, ok := obj.Data.(*entity.Entity)
			if !ok || !body.Active() || !p.Collide(body.Tag, body) {
				continue
			}
			if body.Tag == entity.TagEnemy {
				s.sounds.Play(audio.SoundHit)
			}
			return true
		}
	}
	return false
}

// strike stops p on o. A destructible obstacle broken by the hit leaves
// the space at once so later shots this frame pass through.
func (s *Scene) strike(p *combat.Projectile, o *Obstacle) bool {
	hp := 0.0
	if o.Body != nil {
		hp = o.Body.Health()
	}
	if !p.Collide(entity.TagObstacle, o.target()) {
		return false
	}
	if o.Body != nil && o.Body.Health() < hp {
		s.sounds.Play(audio.SoundHit)
	}
	if !o.Active() {
		s.space.setPresent(o.solid, false)
	}
	return true
}

// updateTriggers tracks the player entering and leaving interactable
// zones. A dead player leaves every zone.
func (s *Scene) updateTriggers() {
	body := s.Player.Body
	reach := make(map[Trigger]bool)
	if body.Active() {
		for _, obj := range s.space.overlapping(bodyBox(body.Pos, body.Radius), tagInteractable) {
			if t, ok := obj.Data.(Trigger); ok {
				reach[t] = true
			}
		}
	}
	for _, t := range s.triggers {
		in := reach[t] && t.Active() && t.Near(body.Pos, body.Radius)
		was := s.inside[t]
		switch {
		case in && !was:
			s.inside[t] = true
			s.Player.EnterInteractable(t)
			t.OnPlayerEnter()
		case !in && was:
			delete(s.inside, t)
			s.Player.ExitInteractable(t)
			t.OnPlayerExit()
		}
	}
}

// updateRoom switches the current room when the player walks into another.
func (s *Scene) updateRoom() {
	r := s.Manager.RoomAt(s.Player.Pos())
	if r != nil && r != s.Manager.CurrentRoom() {
		s.Manager.EnterRoom(r)
	}
}
