package sensor

import "github.com/df07/go-radiometer/pkg/core"

// RadianceMeterConfig configures a RadianceMeter. Either ToWorld or both
// Origin and Direction are required; ToWorld wins when both are given.
type RadianceMeterConfig struct {
	BaseConfig
	ToWorld   *core.Transform
	Origin    *core.Vec3
	Direction *core.Vec3
}

// RadianceMeter records the radiance along one fixed ray
type RadianceMeter struct {
	base
}

// NewRadianceMeter validates cfg and builds the meter
func NewRadianceMeter(cfg RadianceMeterConfig) (*RadianceMeter, error) {
	b, err := newBase(KindRadianceMeter, cfg.BaseConfig)
	if err != nil {
		return nil, err
	}

	b.transform, err = BuildTransform(KindRadianceMeter, TransformParams{
		ToWorld:   cfg.ToWorld,
		Origin:    cfg.Origin,
		Direction: cfg.Direction,
	})
	if err != nil {
		return nil, err
	}

	if err := b.checkFilm(1, 1); err != nil {
		return nil, err
	}

	m := &RadianceMeter{base: b}
	m.logBuilt()
	return m, nil
}

// SampleRay returns the meter's ray: the transform's translation as origin
// and its normalized +Z axis as direction. Position and direction samples
// are ignored.
func (m *RadianceMeter) SampleRay(time, wavelengthSample float64, positionSample, directionSample core.Vec2, active bool) (core.Ray, core.Spectrum) {
	if !active {
		return core.Ray{}, core.Spectrum{}
	}

	wavelengths, weight := sampleWavelengths(m.srf, wavelengthSample)

	trafo := m.transform.Eval(time)
	ray := core.NewRay(trafo.Translation(), trafo.Forward().Normalize())
	ray.Time = time
	ray.Wavelengths = wavelengths
	return ray, weight
}

// SampleRayDifferential returns SampleRay's ray without differentials
func (m *RadianceMeter) SampleRayDifferential(time, wavelengthSample float64, positionSample, directionSample core.Vec2, active bool) (core.RayDifferential, core.Spectrum) {
	ray, weight := m.SampleRay(time, wavelengthSample, positionSample, directionSample, active)
	return core.NewRayDifferential(ray), weight
}
