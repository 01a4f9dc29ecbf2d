package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the degenerate box (min = +Inf, max = -Inf).
// It is the identity for Union and is never valid.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.Expand(point)
	}
	return box
}

// Expand returns an AABB grown to contain the point
func (aabb AABB) Expand(point Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(aabb.Min.X, point.X), math.Min(aabb.Min.Y, point.Y), math.Min(aabb.Min.Z, point.Z)},
		Max: Vec3{math.Max(aabb.Max.X, point.X), math.Max(aabb.Max.Y, point.Y), math.Max(aabb.Max.Z, point.Z)},
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// BoundingSphere returns the smallest sphere centered on the box that contains it
func (aabb AABB) BoundingSphere() BoundingSphere {
	if !aabb.IsValid() {
		return BoundingSphere{}
	}
	center := aabb.Center()
	return BoundingSphere{Center: center, Radius: aabb.Max.Subtract(center).Length()}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Component(axis)
		max := aabb.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		// Ray parallel to the slab
		if math.Abs(direction) < 1e-12 {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// BoundingSphere is a sphere enclosing scene geometry
type BoundingSphere struct {
	Center Vec3
	Radius float64
}

// UnitBoundingSphere is used when no scene-specific bounds are known
func UnitBoundingSphere() BoundingSphere {
	return BoundingSphere{Center: Vec3{}, Radius: 1}
}

// Contains reports whether the point lies inside or on the sphere
func (s BoundingSphere) Contains(p Vec3) bool {
	return p.Subtract(s.Center).LengthSquared() <= s.Radius*s.Radius
}

// IsEmpty reports a zero-radius sphere
func (s BoundingSphere) IsEmpty() bool {
	return s.Radius <= 0
}

// LongestAxis returns 0, 1 or 2 for the box's longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X >= size.Y && size.X >= size.Z {
		return 0
	}
	if size.Y >= size.Z {
		return 1
	}
	return 2
}
