package geometry

import (
	"math"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/material"
	"github.com/df07/go-radiometer/pkg/sensor"
)

// Sphere represents a sphere shape
type Sphere struct {
	shapeBase
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere. An empty id is replaced by a generated one.
func NewSphere(id string, center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		shapeBase: newShapeBase(id, mat),
		Center:    center,
		Radius:    radius,
	}
}

// AttachIrradianceMeter creates an irradiance meter measuring on this sphere's surface
func (s *Sphere) AttachIrradianceMeter(cfg sensor.IrradianceMeterConfig) (*sensor.IrradianceMeter, error) {
	return s.attach(s, cfg)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	si := &core.SurfaceInteraction{
		T:           root,
		P:           ray.At(root),
		Time:        ray.Time,
		Wavelengths: ray.Wavelengths,
		ShapeID:     s.id,
	}
	outwardNormal := si.P.Subtract(s.Center).Multiply(1.0 / s.Radius)
	setFaceNormal(si, ray, outwardNormal)

	return si, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// SampleSurface picks a point uniformly by area
func (s *Sphere) SampleSurface(sample core.Vec2) core.PositionSample {
	n := core.SquareToUniformSphere(sample)
	return core.PositionSample{
		P:   s.Center.Add(n.Multiply(s.Radius)),
		N:   n,
		PDF: 1.0 / s.Area(),
	}
}

// Area returns the surface area
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}
