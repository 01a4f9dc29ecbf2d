package geometry

import (
	"github.com/google/uuid"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/material"
	"github.com/df07/go-radiometer/pkg/sensor"
)

// Shape is a surface that can be intersected, sampled, and optionally carry
// an irradiance meter.
type Shape interface {
	ID() string
	Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool)
	BoundingBox() core.AABB
	SampleSurface(sample core.Vec2) core.PositionSample
	Area() float64

	// Material returns the surface material; nil means fully absorbing
	Material() material.Material

	// Sensor returns the attached irradiance meter, or nil
	Sensor() *sensor.IrradianceMeter
}

// shapeBase holds what every shape shares
type shapeBase struct {
	id       string
	material material.Material
	meter    *sensor.IrradianceMeter
}

func newShapeBase(id string, mat material.Material) shapeBase {
	if id == "" {
		id = uuid.NewString()
	}
	return shapeBase{id: id, material: mat}
}

func (b *shapeBase) ID() string                      { return b.id }
func (b *shapeBase) Material() material.Material     { return b.material }
func (b *shapeBase) Sensor() *sensor.IrradianceMeter { return b.meter }

// attach builds an irradiance meter bound to self. A shape carries at most one.
func (b *shapeBase) attach(self sensor.SurfaceSampler, cfg sensor.IrradianceMeterConfig) (*sensor.IrradianceMeter, error) {
	if b.meter != nil {
		return nil, &sensor.ConfigError{
			Sensor: sensor.KindIrradianceMeter.String(),
			Param:  "shape",
			Detail: b.id,
			Err:    sensor.ErrShapeHasSensor,
		}
	}
	meter, err := sensor.NewIrradianceMeter(cfg, self)
	if err != nil {
		return nil, err
	}
	b.meter = meter
	return meter, nil
}

// setFaceNormal orients the interaction normal against the incoming ray
func setFaceNormal(si *core.SurfaceInteraction, ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.N = outwardNormal
	} else {
		si.N = outwardNormal.Negate()
	}
}
