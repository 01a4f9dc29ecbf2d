package sensor

import (
	"math"

	"github.com/df07/go-radiometer/pkg/core"
)

// IrradianceMeterConfig configures an IrradianceMeter
type IrradianceMeterConfig struct {
	BaseConfig
}

// IrradianceMeter measures the irradiance arriving at the surface of the
// shape it is attached to. The shape is referenced, not owned.
type IrradianceMeter struct {
	base
	shape SurfaceSampler
}

// NewIrradianceMeter builds a meter bound to shape. The shape is expected to
// call this while constructing itself and keep the returned meter.
func NewIrradianceMeter(cfg IrradianceMeterConfig, shape SurfaceSampler) (*IrradianceMeter, error) {
	b, err := newBase(KindIrradianceMeter, cfg.BaseConfig)
	if err != nil {
		return nil, err
	}
	if shape == nil {
		return nil, configError(KindIrradianceMeter, "shape", ErrMissingParameter,
			"an irradiance meter must be attached to a shape")
	}
	if err := b.checkFilm(1, 1); err != nil {
		return nil, err
	}

	b.transform = core.NewAnimatedTransform(core.IdentityTransform())

	m := &IrradianceMeter{base: b, shape: shape}
	logger.With("sensor", m.id).Debugf("attached to shape %s", shape.ID())
	m.logBuilt()
	return m, nil
}

// Shape returns the shape the meter is attached to
func (m *IrradianceMeter) Shape() SurfaceSampler {
	return m.shape
}

// SampleRay starts a ray at a point sampled on the shape (positionSample) and
// sends it into the cosine-weighted hemisphere around the surface normal
// (directionSample). The weight carries the factor pi that turns the
// cosine-weighted radiance estimate into irradiance.
func (m *IrradianceMeter) SampleRay(time, wavelengthSample float64, positionSample, directionSample core.Vec2, active bool) (core.Ray, core.Spectrum) {
	if !active {
		return core.Ray{}, core.Spectrum{}
	}

	wavelengths, weight := sampleWavelengths(m.srf, wavelengthSample)

	ps := m.shape.SampleSurface(positionSample)
	local := core.SquareToCosineHemisphere(directionSample)
	direction := core.NewFrame(ps.N).ToWorld(local)

	ray := core.NewRay(ps.P, direction)
	ray.Time = time
	ray.Wavelengths = wavelengths
	return ray, weight.Scale(math.Pi)
}

// SampleRayDifferential returns SampleRay's ray without differentials
func (m *IrradianceMeter) SampleRayDifferential(time, wavelengthSample float64, positionSample, directionSample core.Vec2, active bool) (core.RayDifferential, core.Spectrum) {
	ray, weight := m.SampleRay(time, wavelengthSample, positionSample, directionSample, active)
	return core.NewRayDifferential(ray), weight
}
