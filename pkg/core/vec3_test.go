package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"unit X", NewVec3(1, 0, 0), NewVec3(1, 0, 0)},
		{"scaled", NewVec3(0, 0, -2), NewVec3(0, 0, -1)},
		{"diagonal", NewVec3(-1, -1, 0), NewVec3(-1/math.Sqrt2, -1/math.Sqrt2, 0)},
		{"zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
		{"tiny", NewVec3(1e-200, 0, 0), NewVec3(1, 0, 0)},
		{"huge", NewVec3(1e200, 0, 0), NewVec3(1, 0, 0)},
		{"tiny diagonal", NewVec3(1e-170, 1e-170, 0), NewVec3(1/math.Sqrt2, 1/math.Sqrt2, 0)},
		{"huge diagonal", NewVec3(0, -1e300, 1e300), NewVec3(0, -1/math.Sqrt2, 1/math.Sqrt2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			const tolerance = 1e-12
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_IsFinite(t *testing.T) {
	tests := []struct {
		vector   Vec3
		expected bool
	}{
		{NewVec3(1, -2, 3), true},
		{NewVec3(1e308, 0, 0), true},
		{NewVec3(math.NaN(), 0, 1), false},
		{NewVec3(0, math.Inf(-1), 0), false},
		{NewVec3(0, 0, math.Inf(1)), false},
	}

	for _, tt := range tests {
		if got := tt.vector.IsFinite(); got != tt.expected {
			t.Errorf("IsFinite(%v): expected %v, got %v", tt.vector, tt.expected, got)
		}
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	if z := x.Cross(y); z != NewVec3(0, 0, 1) {
		t.Errorf("x cross y: got %v", z)
	}
	if z := y.Cross(x); z != NewVec3(0, 0, -1) {
		t.Errorf("y cross x: got %v", z)
	}
}

func TestAABB_BoundingSphere(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, 0), NewVec3(1, 1, 0))
	if !box.IsValid() {
		t.Fatal("box from points should be valid")
	}

	sphere := box.BoundingSphere()
	if sphere.Center != NewVec3(0, 0, 0) {
		t.Errorf("center: got %v", sphere.Center)
	}
	if math.Abs(sphere.Radius-math.Sqrt2) > 1e-12 {
		t.Errorf("radius: got %f, expected %f", sphere.Radius, math.Sqrt2)
	}
}

func TestAABB_Empty(t *testing.T) {
	empty := EmptyAABB()
	if empty.IsValid() {
		t.Error("empty AABB must be invalid")
	}
	if !empty.BoundingSphere().IsEmpty() {
		t.Error("empty AABB must have an empty bounding sphere")
	}

	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	if empty.Union(box) != box {
		t.Errorf("empty should be the identity for Union, got %v", empty.Union(box))
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	if !box.Hit(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, math.Inf(1)) {
		t.Error("expected hit along -Z")
	}
	if box.Hit(NewRay(NewVec3(3, 0, 5), NewVec3(0, 0, -1)), 0, math.Inf(1)) {
		t.Error("expected miss for offset ray")
	}
}
