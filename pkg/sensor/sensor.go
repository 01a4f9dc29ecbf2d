// Package sensor implements the measurement devices that turn sample values
// into world-space rays and importance weights: a distant (directional)
// sensor, an irradiance meter bound to a shape, and a radiance meter.
//
// Sensors are validated and fully resolved at construction. Afterwards they
// are immutable and their sampling methods are pure functions of their
// arguments, so a single sensor can be shared by any number of goroutines.
package sensor

import (
	"github.com/google/uuid"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/film"
	"github.com/df07/go-radiometer/pkg/log"
	"github.com/df07/go-radiometer/pkg/spectrum"
)

var logger = log.New("sensor")

// Kind enumerates the sensor variants
type Kind int

const (
	KindDistant Kind = iota
	KindIrradianceMeter
	KindRadianceMeter
)

func (k Kind) String() string {
	switch k {
	case KindDistant:
		return "distant"
	case KindIrradianceMeter:
		return "irradiancemeter"
	case KindRadianceMeter:
		return "radiancemeter"
	default:
		return "unknown"
	}
}

// Sensor is implemented by *DistantSensor, *IrradianceMeter and *RadianceMeter.
type Sensor interface {
	ID() string
	Kind() Kind

	// SampleRay turns sample values into a ray and its spectral importance
	// weight. Inactive lanes return a zero ray and a black weight.
	SampleRay(time, wavelengthSample float64, positionSample, directionSample core.Vec2, active bool) (core.Ray, core.Spectrum)

	// SampleRayDifferential is SampleRay for integrators that consume
	// differentials. None of the variants has a pixel footprint, so
	// HasDifferentials is always false.
	SampleRayDifferential(time, wavelengthSample float64, positionSample, directionSample core.Vec2, active bool) (core.RayDifferential, core.Spectrum)

	WorldTransform() *core.AnimatedTransform

	// BoundingBox is always invalid: sensors occupy no volume.
	BoundingBox() core.AABB

	Film() *film.Film
	SRF() spectrum.Response
	Sampler() core.SamplerConfig
}

// SurfaceSampler is the part of a shape an irradiance meter relies on
type SurfaceSampler interface {
	ID() string
	SampleSurface(sample core.Vec2) core.PositionSample
}

// Preprocessor is implemented by sensors that need the scene bounds before rendering
type Preprocessor interface {
	Preprocess(worldCenter core.Vec3, worldRadius float64) error
}

// BaseConfig holds the parameters shared by every sensor
type BaseConfig struct {
	ID      string             // Generated when empty
	Film    *film.Film         // Required
	SRF     spectrum.Response  // Optional
	Sampler core.SamplerConfig // Zero value means DefaultSamplerConfig
}

type base struct {
	id        string
	kind      Kind
	film      *film.Film
	srf       spectrum.Response
	sampler   core.SamplerConfig
	transform *core.AnimatedTransform
}

func newBase(kind Kind, cfg BaseConfig) (base, error) {
	if cfg.Film == nil {
		return base{}, configError(kind, "film", ErrMissingParameter, "a film is required")
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	sampler := cfg.Sampler
	if sampler.SampleCount <= 0 {
		sampler = core.DefaultSamplerConfig()
		sampler.Seed = cfg.Sampler.Seed
	}

	return base{
		id:      id,
		kind:    kind,
		film:    cfg.Film,
		srf:     cfg.SRF,
		sampler: sampler,
	}, nil
}

// checkFilm validates the film resolution against the size the variant supports
func (b *base) checkFilm(width, height int) error {
	w, h := b.film.Size()
	if w != width || h != height {
		return configError(b.kind, "film", ErrWrongFilmSize,
			"expected %dx%d, got %dx%d", width, height, w, h)
	}
	return nil
}

func (b *base) ID() string                              { return b.id }
func (b *base) Kind() Kind                              { return b.kind }
func (b *base) Film() *film.Film                        { return b.film }
func (b *base) SRF() spectrum.Response                  { return b.srf }
func (b *base) Sampler() core.SamplerConfig             { return b.sampler }
func (b *base) WorldTransform() *core.AnimatedTransform { return b.transform }

func (b *base) BoundingBox() core.AABB {
	return core.EmptyAABB()
}

func (b *base) logBuilt() {
	w, h := b.film.Size()
	logger.With("sensor", b.id, "kind", b.kind.String()).
		Debugf("constructed with film %dx%d, srf=%t, world transform %v",
			w, h, b.srf != nil, b.transform.Eval(0).Rows())
}

var (
	_ Sensor       = (*DistantSensor)(nil)
	_ Sensor       = (*IrradianceMeter)(nil)
	_ Sensor       = (*RadianceMeter)(nil)
	_ Preprocessor = (*DistantSensor)(nil)
)
