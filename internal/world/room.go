package world

import (
	"github.com/vovakirdan/tui-rewind/internal/core"
)

// Room is a rectangular area of a level. Bounds limit where the camera
// viewport may travel while the player is inside the room.
type Room struct {
	ID          string
	Pos         core.Vec2
	Size        core.Vec2
	Bounds      core.Bounds
	PlayerStart core.Vec2
	CameraStart core.Vec2
}

// NewRoom creates a room centred on pos.
func NewRoom(id string, pos, size core.Vec2) *Room {
	return &Room{ID: id, Pos: pos, Size: size}
}

// Init fills unset fields. All-zero bounds are derived from the room
// extent. Zero start positions default to the room centre.
func (r *Room) Init() {
	if r.Bounds.IsAllZero() {
		r.Bounds = r.Area()
	}
	if r.CameraStart.IsZero() {
		r.CameraStart = r.Pos
	}
	if r.PlayerStart.IsZero() {
		r.PlayerStart = r.Pos
	}
}

// Area returns the floor of the room.
func (r *Room) Area() core.Bounds {
	return core.BoundsAround(r.Pos, r.Size)
}

// Contains reports whether p is on the room floor.
func (r *Room) Contains(p core.Vec2) bool {
	return r.Area().Contains(p)
}

// Camera tracks the viewport centre in world space.
type Camera struct {
	Pos      core.Vec2
	Viewport core.Vec2
}

// Follow moves the camera to target, clamped so the viewport stays inside
// b. An axis where b is narrower than the current viewport is pinned to the
// middle of b, so a resize can pin or unpin a room.
func (c *Camera) Follow(target core.Vec2, b core.Bounds) {
	c.Pos = core.V(
		followAxis(target.X, b.MinX, b.MaxX, c.Viewport.X),
		followAxis(target.Y, b.MinY, b.MaxY, c.Viewport.Y),
	)
}

func followAxis(t, lo, hi, view float64) float64 {
	if hi-lo <= view {
		return (lo + hi) / 2
	}
	return core.ClampF(t, lo+view/2, hi-view/2)
}
