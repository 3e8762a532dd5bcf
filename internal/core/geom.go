// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It has no external dependencies (in
// particular no Bubble Tea) so gameplay stays pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units. Y grows upward.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Zero is the zero vector.
var Zero = Vec2{}

// Up is the unit vector pointing up in world space.
var Up = Vec2{X: 0, Y: 1}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Dist returns the distance between two points.
func Dist(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// MoveTowards moves current toward target by at most maxDelta without overshooting.
func MoveTowards(current, target Vec2, maxDelta float64) Vec2 {
	d := target.Sub(current)
	l := d.Len()
	if l <= maxDelta || l == 0 {
		return target
	}
	return current.Add(d.Scale(maxDelta / l))
}

// Lerp interpolates between a and b by t, with t clamped to [0, 1].
func Lerp(a, b Vec2, t float64) Vec2 {
	t = ClampF(t, 0, 1)
	return a.Add(b.Sub(a).Scale(t))
}

// LerpF interpolates between two scalars by t, with t clamped to [0, 1].
func LerpF(a, b, t float64) float64 {
	t = ClampF(t, 0, 1)
	return a + (b-a)*t
}

// Angle returns the direction of v in degrees, counter-clockwise from +X.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// Bounds is an axis-aligned box in world space.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// BoundsAround builds bounds centred on pos with the given full size.
func BoundsAround(pos, size Vec2) Bounds {
	return Bounds{
		MinX: pos.X - size.X/2,
		MaxX: pos.X + size.X/2,
		MinY: pos.Y - size.Y/2,
		MaxY: pos.Y + size.Y/2,
	}
}

// IsAllZero reports whether the bounds were left unset.
func (b Bounds) IsAllZero() bool {
	return b.MinX == 0 && b.MaxX == 0 && b.MinY == 0 && b.MaxY == 0
}

// Contains reports whether p lies inside the bounds (edges inclusive).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Vec2 {
	return Vec2{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Size returns the full extent along each axis.
func (b Bounds) Size() Vec2 {
	return Vec2{X: b.MaxX - b.MinX, Y: b.MaxY - b.MinY}
}

// Expand grows the bounds by d on every side.
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{MinX: b.MinX - d, MaxX: b.MaxX + d, MinY: b.MinY - d, MaxY: b.MaxY + d}
}

// Union returns the smallest bounds holding both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, o.MinX),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Clip clamps p into the bounds.
func (b Bounds) Clip(p Vec2) Vec2 {
	return Vec2{X: ClampF(p.X, b.MinX, b.MaxX), Y: ClampF(p.Y, b.MinY, b.MaxY)}
}

// Rect represents an integer axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
