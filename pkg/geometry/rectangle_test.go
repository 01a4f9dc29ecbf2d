package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/material"
)

func TestRectangle_Hit(t *testing.T) {
	rect := NewRectangle("", core.IdentityTransform(), material.NewDiffuse(0.5))

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		hit       bool
		front     bool
	}{
		{"center from above", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), true, true},
		{"corner from below", core.NewVec3(0.99, -0.99, -1), core.NewVec3(0, 0, 1), true, false},
		{"outside", core.NewVec3(1.5, 0, 1), core.NewVec3(0, 0, -1), false, false},
		{"parallel", core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), false, false},
		{"behind origin", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			si, ok := rect.Hit(core.NewRay(tt.origin, tt.direction), 0.001, math.Inf(1))
			if ok != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(si.P.Z) > 1e-12 {
				t.Errorf("Expected hit on z=0, got %v", si.P)
			}
			if si.ShapeID != rect.ID() {
				t.Errorf("Expected shape id %s, got %s", rect.ID(), si.ShapeID)
			}
			if si.FrontFace != tt.front {
				t.Errorf("Expected FrontFace=%v, got %v", tt.front, si.FrontFace)
			}
		})
	}
}

func TestRectangle_Transformed(t *testing.T) {
	// 4x2 rectangle in the y=3 plane facing +Y
	toWorld := core.Translate(core.NewVec3(0, 3, 0)).
		Mul(core.Rotate(core.NewVec3(1, 0, 0), -90)).
		Mul(core.Scale(core.NewVec3(2, 1, 1)))
	rect := NewRectangle("wall", toWorld, nil)

	if math.Abs(rect.Area()-8) > 1e-9 {
		t.Errorf("Expected area 8, got %f", rect.Area())
	}
	if !rect.Normal().ApproxEqual(core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected normal +Y, got %v", rect.Normal())
	}

	si, ok := rect.Hit(core.NewRay(core.NewVec3(1.9, 10, 0.9), core.NewVec3(0, -1, 0)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(si.T-7) > 1e-9 {
		t.Errorf("Expected t=7, got %f", si.T)
	}

	box := rect.BoundingBox()
	if !box.IsValid() || box.Size().Y <= 0 {
		t.Errorf("Expected padded valid box, got %+v", box)
	}
	if math.Abs(box.Size().X-4) > 1e-3 || math.Abs(box.Size().Z-2) > 1e-3 {
		t.Errorf("Unexpected box extent %v", box.Size())
	}

	ps := rect.SampleSurface(core.NewVec2(1, 0.5))
	if !ps.P.ApproxEqual(core.NewVec3(2, 3, 0), 1e-9) {
		t.Errorf("Expected sample at (2,3,0), got %v", ps.P)
	}
	if math.Abs(ps.PDF-1.0/8) > 1e-12 {
		t.Errorf("Expected pdf 1/8, got %f", ps.PDF)
	}
}
