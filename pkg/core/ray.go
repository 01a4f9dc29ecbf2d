package core

import "math"

// Ray represents a ray with an origin, direction and the spectral samples it carries
type Ray struct {
	Origin      Vec3
	Direction   Vec3
	Time        float64
	Wavelengths Wavelength
	MaxT        float64 // Upper bound of the valid segment, +Inf for unbounded rays
}

// NewRay creates a new unbounded ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MaxT: math.Inf(1)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// RayDifferential carries a ray plus its offsets for neighbouring pixel footprints
type RayDifferential struct {
	Ray
	OriginX, OriginY       Vec3
	DirectionX, DirectionY Vec3
	HasDifferentials       bool
}

// NewRayDifferential wraps a ray with no differential information
func NewRayDifferential(ray Ray) RayDifferential {
	return RayDifferential{Ray: ray}
}
