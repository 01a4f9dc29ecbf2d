package sensor

import (
	"math"

	"github.com/df07/go-radiometer/pkg/core"
)

// DistantConfig configures a DistantSensor
type DistantConfig struct {
	BaseConfig
	Direction *core.Vec3 // Required, need not be normalized
	Target    *core.Vec3 // Optional point every ray passes through
	Width     int        // Film columns; the film must be Width x 1 (default 1)
}

// DistantSensor records radiance arriving along a single direction from
// infinitely far away. Rays are parallel and start outside the scene's
// bounding sphere.
type DistantSensor struct {
	base
	direction core.Vec3
	target    *core.Vec3
	bsphere   core.BoundingSphere
}

// NewDistantSensor validates cfg and builds the sensor
func NewDistantSensor(cfg DistantConfig) (*DistantSensor, error) {
	b, err := newBase(KindDistant, cfg.BaseConfig)
	if err != nil {
		return nil, err
	}

	width := cfg.Width
	if width <= 0 {
		width = 1
	}
	if err := b.checkFilm(width, 1); err != nil {
		return nil, err
	}

	if cfg.Direction == nil {
		return nil, configError(KindDistant, "direction", ErrMissingParameter, "a direction is required")
	}

	b.transform, err = BuildTransform(KindDistant, TransformParams{
		Direction:   cfg.Direction,
		Directional: true,
	})
	if err != nil {
		return nil, err
	}

	s := &DistantSensor{
		base:      b,
		direction: *cfg.Direction,
		bsphere:   core.UnitBoundingSphere(),
	}
	if cfg.Target != nil {
		target := *cfg.Target
		if !target.IsFinite() {
			return nil, configError(KindDistant, "target", ErrInvalidDirection, "target %v is not finite", target)
		}
		s.target = &target
	}

	s.logBuilt()
	return s, nil
}

// Direction returns the configured (possibly unnormalized) direction
func (s *DistantSensor) Direction() core.Vec3 {
	return s.direction
}

// Target returns the target point and whether one is configured
func (s *DistantSensor) Target() (core.Vec3, bool) {
	if s.target == nil {
		return core.Vec3{}, false
	}
	return *s.target, true
}

// BoundingSphere returns the sphere rays are launched from
func (s *DistantSensor) BoundingSphere() core.BoundingSphere {
	return s.bsphere
}

// Preprocess installs the scene bounding sphere, slightly inflated so ray
// origins stay clear of geometry. A non-positive radius keeps the unit sphere.
func (s *DistantSensor) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	if worldRadius <= 0 {
		return nil
	}
	s.bsphere = core.BoundingSphere{
		Center: worldCenter,
		Radius: math.Max(core.RayEpsilon, worldRadius*(1+core.RayEpsilon)),
	}
	logger.With("sensor", s.id).Debugf("bounding sphere center=%v radius=%g", s.bsphere.Center, s.bsphere.Radius)
	return nil
}

// SampleRay returns a ray along the sensor direction. Without a target the
// origin is drawn uniformly from the disk of the bounding sphere
// perpendicular to the direction (using positionSample); with a target the
// ray passes through it.
func (s *DistantSensor) SampleRay(time, wavelengthSample float64, positionSample, directionSample core.Vec2, active bool) (core.Ray, core.Spectrum) {
	if !active {
		return core.Ray{}, core.Spectrum{}
	}

	wavelengths, weight := sampleWavelengths(s.srf, wavelengthSample)

	trafo := s.transform.Eval(time)
	d := trafo.Forward()
	c, r := s.bsphere.Center, s.bsphere.Radius

	var origin core.Vec3
	if s.target != nil {
		distance := 2*r + s.target.Subtract(c).Length()
		origin = s.target.Subtract(d.Multiply(distance))
	} else {
		disk := core.SquareToUniformDiskConcentric(positionSample)
		offset := trafo.TransformVector(core.NewVec3(disk.X, disk.Y, 0))
		origin = c.Add(offset.Subtract(d).Multiply(r))
	}

	ray := core.NewRay(origin, d)
	ray.Time = time
	ray.Wavelengths = wavelengths
	return ray, weight
}

// SampleRayDifferential returns SampleRay's ray without differentials
func (s *DistantSensor) SampleRayDifferential(time, wavelengthSample float64, positionSample, directionSample core.Vec2, active bool) (core.RayDifferential, core.Spectrum) {
	ray, weight := s.SampleRay(time, wavelengthSample, positionSample, directionSample, active)
	return core.NewRayDifferential(ray), weight
}
