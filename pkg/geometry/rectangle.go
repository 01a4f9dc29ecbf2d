package geometry

import (
	"math"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/material"
	"github.com/df07/go-radiometer/pkg/sensor"
)

// Rectangle is the square [-1,1]² in the local z=0 plane, placed in the world
// by an affine transform. Its outward normal is the image of local +Z.
type Rectangle struct {
	shapeBase
	toWorld core.Transform
	toLocal core.Transform
	normal  core.Vec3
	area    float64
}

// NewRectangle creates a rectangle from its object-to-world transform
func NewRectangle(id string, toWorld core.Transform, mat material.Material) *Rectangle {
	du := toWorld.TransformVector(core.NewVec3(1, 0, 0))
	dv := toWorld.TransformVector(core.NewVec3(0, 1, 0))
	return &Rectangle{
		shapeBase: newShapeBase(id, mat),
		toWorld:   toWorld,
		toLocal:   toWorld.Inverse(),
		normal:    toWorld.TransformNormal(core.NewVec3(0, 0, 1)),
		area:      4 * du.Cross(dv).Length(),
	}
}

// AttachIrradianceMeter creates an irradiance meter measuring on this rectangle
func (r *Rectangle) AttachIrradianceMeter(cfg sensor.IrradianceMeterConfig) (*sensor.IrradianceMeter, error) {
	return r.attach(r, cfg)
}

// ToWorld returns the object-to-world transform
func (r *Rectangle) ToWorld() core.Transform {
	return r.toWorld
}

// Normal returns the outward unit normal
func (r *Rectangle) Normal() core.Vec3 {
	return r.normal
}

// Hit intersects the ray with the rectangle in local space. Affine maps
// preserve the ray parameter, so t is valid in world space too.
func (r *Rectangle) Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	o := r.toLocal.TransformPoint(ray.Origin)
	d := r.toLocal.TransformVector(ray.Direction)

	// Ray parallel to the plane
	if math.Abs(d.Z) < 1e-12 {
		return nil, false
	}

	t := -o.Z / d.Z
	if t < tMin || t > tMax {
		return nil, false
	}

	x, y := o.X+t*d.X, o.Y+t*d.Y
	if math.Abs(x) > 1 || math.Abs(y) > 1 {
		return nil, false
	}

	si := &core.SurfaceInteraction{
		T:           t,
		P:           ray.At(t),
		Time:        ray.Time,
		Wavelengths: ray.Wavelengths,
		ShapeID:     r.id,
	}
	setFaceNormal(si, ray, r.normal)
	return si, true
}

// BoundingBox returns the box around the four corners, padded along flat axes
func (r *Rectangle) BoundingBox() core.AABB {
	box := core.EmptyAABB()
	for _, corner := range []core.Vec3{
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(-1, 1, 0),
	} {
		box = box.Expand(r.toWorld.TransformPoint(corner))
	}

	const minExtent = 1e-4
	size := box.Size()
	pad := core.Vec3{}
	if size.X < minExtent {
		pad.X = minExtent / 2
	}
	if size.Y < minExtent {
		pad.Y = minExtent / 2
	}
	if size.Z < minExtent {
		pad.Z = minExtent / 2
	}
	box = core.NewAABB(box.Min.Subtract(pad), box.Max.Add(pad))
	return box
}

// SampleSurface picks a point uniformly by area
func (r *Rectangle) SampleSurface(sample core.Vec2) core.PositionSample {
	local := core.NewVec3(2*sample.X-1, 2*sample.Y-1, 0)
	return core.PositionSample{
		P:   r.toWorld.TransformPoint(local),
		N:   r.normal,
		PDF: 1.0 / r.area,
	}
}

// Area returns the surface area
func (r *Rectangle) Area() float64 {
	return r.area
}
