package sensor

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/film"
	"github.com/df07/go-radiometer/pkg/spectrum"
)

// unitSphere is a minimal SurfaceSampler for a sphere of radius 1 at the origin
type unitSphere struct{}

func (unitSphere) ID() string { return "unit-sphere" }

func (unitSphere) SampleSurface(sample core.Vec2) core.PositionSample {
	n := core.SquareToUniformSphere(sample)
	return core.PositionSample{P: n, N: n, PDF: 1 / (4 * math.Pi)}
}

func vec(x, y, z float64) *core.Vec3 {
	v := core.NewVec3(x, y, z)
	return &v
}

func base1x1() BaseConfig {
	return BaseConfig{Film: film.MustNew(1, 1)}
}

func randomSamples(random *rand.Rand) (float64, core.Vec2, core.Vec2) {
	return random.Float64(),
		core.NewVec2(random.Float64(), random.Float64()),
		core.NewVec2(random.Float64(), random.Float64())
}

func assertRows(t *testing.T, expected [4][4]float64, actual core.Transform) {
	t.Helper()
	rows := actual.Rows()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, expected[i][j], rows[i][j], 1e-9, "entry (%d,%d)", i, j)
		}
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "distant", KindDistant.String())
	assert.Equal(t, "irradiancemeter", KindIrradianceMeter.String())
	assert.Equal(t, "radiancemeter", KindRadianceMeter.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestBaseDefaults(t *testing.T) {
	a, err := NewRadianceMeter(RadianceMeterConfig{BaseConfig: base1x1(), Origin: vec(0, 0, 0), Direction: vec(1, 0, 0)})
	require.NoError(t, err)
	b, err := NewRadianceMeter(RadianceMeterConfig{BaseConfig: base1x1(), Origin: vec(0, 0, 0), Direction: vec(1, 0, 0)})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, core.DefaultSamplerConfig(), a.Sampler())
	assert.Nil(t, a.SRF())
	assert.False(t, a.BoundingBox().IsValid())

	named, err := NewRadianceMeter(RadianceMeterConfig{
		BaseConfig: BaseConfig{
			ID:      "meter",
			Film:    film.MustNew(1, 1),
			Sampler: core.SamplerConfig{Type: "independent", SampleCount: 64, Seed: 7},
		},
		Origin:    vec(0, 0, 0),
		Direction: vec(1, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "meter", named.ID())
	assert.Equal(t, 64, named.Sampler().SampleCount)
	assert.Equal(t, uint64(7), named.Sampler().Seed)
}

func TestMissingFilm(t *testing.T) {
	_, err := NewDistantSensor(DistantConfig{Direction: vec(0, 0, -1)})
	assert.ErrorIs(t, err, ErrMissingParameter)
	_, err = NewIrradianceMeter(IrradianceMeterConfig{}, unitSphere{})
	assert.ErrorIs(t, err, ErrMissingParameter)
	_, err = NewRadianceMeter(RadianceMeterConfig{Origin: vec(0, 0, 0), Direction: vec(1, 0, 0)})
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestConfigErrorMessage(t *testing.T) {
	_, err := NewRadianceMeter(RadianceMeterConfig{BaseConfig: BaseConfig{Film: film.MustNew(2, 2)}, Origin: vec(0, 0, 0), Direction: vec(1, 0, 0)})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "radiancemeter", cfgErr.Sensor)
	assert.Equal(t, "film", cfgErr.Param)
	assert.Contains(t, err.Error(), "expected 1x1, got 2x2")
}

func TestInactiveLanes(t *testing.T) {
	distant, err := NewDistantSensor(DistantConfig{BaseConfig: base1x1(), Direction: vec(0, 0, -1)})
	require.NoError(t, err)
	irradiance, err := NewIrradianceMeter(IrradianceMeterConfig{BaseConfig: base1x1()}, unitSphere{})
	require.NoError(t, err)
	radiance, err := NewRadianceMeter(RadianceMeterConfig{BaseConfig: base1x1(), Origin: vec(1, 2, 3), Direction: vec(1, 0, 0)})
	require.NoError(t, err)

	for _, s := range []Sensor{distant, irradiance, radiance} {
		ray, weight := s.SampleRay(0, 0.5, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5), false)
		assert.Equal(t, core.Ray{}, ray, s.Kind().String())
		assert.True(t, weight.IsBlack(), s.Kind().String())
	}
}

func TestWavelengthsWithoutSRF(t *testing.T) {
	s, err := NewRadianceMeter(RadianceMeterConfig{BaseConfig: base1x1(), Origin: vec(0, 0, 0), Direction: vec(0, 0, 1)})
	require.NoError(t, err)

	random := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		ray, weight := s.SampleRay(0, random.Float64(), core.Vec2{}, core.Vec2{}, true)
		assert.True(t, weight.ApproxEqual(core.NewSpectrum(1), 1e-12))
		for _, lambda := range ray.Wavelengths {
			assert.GreaterOrEqual(t, lambda, core.WavelengthMin)
			assert.LessOrEqual(t, lambda, core.WavelengthMax)
		}
	}
}

func TestSRFRouting(t *testing.T) {
	uniform, err := spectrum.NewUniform(2, 400, 700)
	require.NoError(t, err)
	interpolated, err := spectrum.NewInterpolated(450, 650, []float64{0, 1, 3, 1, 0})
	require.NoError(t, err)

	for _, srf := range []spectrum.Response{uniform, interpolated} {
		cfg := BaseConfig{Film: film.MustNew(1, 1), SRF: srf}

		distant, err := NewDistantSensor(DistantConfig{BaseConfig: cfg, Direction: vec(0, 0, -1)})
		require.NoError(t, err)
		irradiance, err := NewIrradianceMeter(IrradianceMeterConfig{BaseConfig: cfg}, unitSphere{})
		require.NoError(t, err)
		radiance, err := NewRadianceMeter(RadianceMeterConfig{BaseConfig: cfg, Origin: vec(0, 0, 0), Direction: vec(0, 1, 0)})
		require.NoError(t, err)

		// Irradiance meters scale the SRF weight by pi
		factors := map[Sensor]float64{distant: 1, irradiance: math.Pi, radiance: 1}

		random := rand.New(rand.NewSource(11))
		for s, factor := range factors {
			assert.Same(t, srf, s.SRF())
			for i := 0; i < 50; i++ {
				u, pos, dir := randomSamples(random)
				expectedLambda, expectedWeight := srf.SampleSpectrum(core.SurfaceInteraction{}, core.SampleShifted(u))
				expectedWeight = expectedWeight.Scale(factor)

				ray, weight := s.SampleRay(0, u, pos, dir, true)
				assert.Equal(t, expectedLambda, ray.Wavelengths, s.Kind().String())
				assert.True(t, weight.ApproxEqual(expectedWeight, 1e-12), s.Kind().String())

				rd, weight := s.SampleRayDifferential(0, u, pos, dir, true)
				assert.Equal(t, expectedLambda, rd.Wavelengths, s.Kind().String())
				assert.True(t, weight.ApproxEqual(expectedWeight, 1e-12), s.Kind().String())
				assert.False(t, rd.HasDifferentials)
			}
		}
	}
}

func TestSampleRayDifferentialMatchesSampleRay(t *testing.T) {
	s, err := NewDistantSensor(DistantConfig{BaseConfig: base1x1(), Direction: vec(1, 1, 0)})
	require.NoError(t, err)

	random := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		u, pos, dir := randomSamples(random)
		ray, w1 := s.SampleRay(0.25, u, pos, dir, true)
		rd, w2 := s.SampleRayDifferential(0.25, u, pos, dir, true)
		assert.Equal(t, ray, rd.Ray)
		assert.Equal(t, w1, w2)
		assert.Equal(t, 0.25, rd.Time)
	}
}
