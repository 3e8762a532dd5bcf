package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVecArithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("Add() = %v, expected (4,-2)", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Errorf("Sub() = %v, expected (-2,6)", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale() = %v, expected (2,4)", got)
	}
	if got := a.Mul(b); got != V(3, -8) {
		t.Errorf("Mul() = %v, expected (3,-8)", got)
	}
	if got := b.Len(); !near(got, 5) {
		t.Errorf("Len() = %f, expected 5", got)
	}
}

func TestVecNormalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if !near(n.X, 0.6) || !near(n.Y, 0.8) {
		t.Errorf("Normalize() = %v, expected (0.6,0.8)", n)
	}
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Normalize(zero) = %v, expected zero", got)
	}
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec2
		delta    float64
		expected Vec2
	}{
		{"partial step", V(0, 0), V(10, 0), 2, V(2, 0)},
		{"exact arrival", V(0, 0), V(0, 3), 3, V(0, 3)},
		{"no overshoot", V(0, 0), V(1, 0), 5, V(1, 0)},
		{"already there", V(2, 2), V(2, 2), 1, V(2, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MoveTowards(tc.from, tc.to, tc.delta)
			if !near(got.X, tc.expected.X) || !near(got.Y, tc.expected.Y) {
				t.Errorf("MoveTowards() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestLerpClampsT(t *testing.T) {
	if got := Lerp(V(0, 0), V(10, 10), 2); got != V(10, 10) {
		t.Errorf("Lerp(t=2) = %v, expected (10,10)", got)
	}
	if got := LerpF(4, 8, 0.5); !near(got, 6) {
		t.Errorf("LerpF(0.5) = %f, expected 6", got)
	}
}

func TestBounds(t *testing.T) {
	b := BoundsAround(V(10, 5), V(20, 10))
	if b.MinX != 0 || b.MaxX != 20 || b.MinY != 0 || b.MaxY != 10 {
		t.Fatalf("BoundsAround() = %+v", b)
	}
	if !b.Contains(V(0, 10)) {
		t.Error("edges should be inside")
	}
	if b.Contains(V(-0.1, 5)) {
		t.Error("point left of MinX should be outside")
	}
	if got := b.Clip(V(30, -3)); got != V(20, 0) {
		t.Errorf("Clip() = %v, expected (20,0)", got)
	}
	if !(Bounds{}).IsAllZero() {
		t.Error("zero bounds should report IsAllZero")
	}
	if got := b.Expand(1); got != (Bounds{MinX: -1, MaxX: 21, MinY: -1, MaxY: 11}) {
		t.Errorf("Expand() = %+v", got)
	}
	if got := b.Union(BoundsAround(V(-5, 0), V(2, 2))); got != (Bounds{MinX: -6, MaxX: 20, MinY: -1, MaxY: 10}) {
		t.Errorf("Union() = %+v", got)
	}
	if b.Size() != V(20, 10) {
		t.Errorf("Size() = %v", b.Size())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(5, 5, 10, 10)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{5, 5, true},   // Top-left corner
		{14, 14, true}, // Bottom-right (inside)
		{15, 15, false},
		{4, 5, false},
		{10, 10, true},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-3, 0, 10) != 0 || Clamp(13, 0, 10) != 10 || Clamp(4, 0, 10) != 4 {
		t.Error("Clamp() returned unexpected value")
	}
	if ClampF(1.5, 0, 1) != 1 || ClampF(-0.5, 0, 1) != 0 {
		t.Error("ClampF() returned unexpected value")
	}
}
