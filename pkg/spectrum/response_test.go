package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-radiometer/pkg/core"
)

func TestUniformFullRangeHasUnitWeight(t *testing.T) {
	u := NewUniformFull(1.0)
	wavelengths, weight := u.SampleSpectrum(core.SurfaceInteraction{}, core.SampleShifted(0.5))

	for i := range wavelengths {
		assert.GreaterOrEqual(t, wavelengths[i], core.WavelengthMin)
		assert.Less(t, wavelengths[i], core.WavelengthMax)
		assert.InDelta(t, 1.0, weight[i], 1e-12)
	}
}

func TestUniformRestricted(t *testing.T) {
	u, err := NewUniform(2.0, 400, 700)
	require.NoError(t, err)

	sample := core.SampleShifted(0.25)
	wavelengths, weight := u.SampleSpectrum(core.SurfaceInteraction{}, sample)
	for i := range wavelengths {
		assert.InDelta(t, 400+300*sample[i], wavelengths[i], 1e-9)
		assert.InDelta(t, 2.0*300/(core.WavelengthMax-core.WavelengthMin), weight[i], 1e-12)
	}

	eval := u.Eval(core.SurfaceInteraction{}, core.Wavelength{390, 400, 550, 701})
	assert.Equal(t, core.Spectrum{0, 2, 2, 0}, eval)
}

func TestUniformRejectsBadRange(t *testing.T) {
	_, err := NewUniform(1, 700, 400)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewUniform(1, 100, 400)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestInterpolatedConstantMatchesUniform(t *testing.T) {
	r, err := NewInterpolated(400, 700, []float64{2, 2, 2, 2})
	require.NoError(t, err)
	u, err := NewUniform(2, 400, 700)
	require.NoError(t, err)

	sample := core.SampleShifted(0.37)
	wi, weighti := r.SampleSpectrum(core.SurfaceInteraction{}, sample)
	wu, weightu := u.SampleSpectrum(core.SurfaceInteraction{}, sample)
	for i := range wi {
		assert.InDelta(t, wu[i], wi[i], 1e-9)
		assert.InDelta(t, weightu[i], weighti[i], 1e-12)
	}
}

func TestInterpolatedImportanceSampling(t *testing.T) {
	// Ramp from 0 at 400nm to 1 at 700nm: density is linear, E[lambda] = 400 + 2/3*300
	r, err := NewInterpolated(400, 700, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 150.0, r.Integral(), 1e-9)

	n := 4000
	sum := 0.0
	for k := 0; k < n; k++ {
		s := (float64(k) + 0.5) / float64(n)
		wavelengths, weight := r.SampleSpectrum(core.SurfaceInteraction{}, core.Wavelength{s, s, s, s})
		sum += wavelengths[0]
		assert.InDelta(t, 150.0/(core.WavelengthMax-core.WavelengthMin), weight[0], 1e-12)
	}
	assert.InDelta(t, 600.0, sum/float64(n), 0.5)
}

func TestInterpolatedEval(t *testing.T) {
	r, err := NewInterpolated(400, 600, []float64{0, 1, 0})
	require.NoError(t, err)

	eval := r.Eval(core.SurfaceInteraction{}, core.Wavelength{400, 450, 500, 650})
	assert.InDelta(t, 0.0, eval[0], 1e-12)
	assert.InDelta(t, 0.5, eval[1], 1e-12)
	assert.InDelta(t, 1.0, eval[2], 1e-12)
	assert.InDelta(t, 0.0, eval[3], 1e-12)
}

func TestInterpolatedZeroResponse(t *testing.T) {
	r, err := NewInterpolated(400, 500, []float64{0, 0, 0})
	require.NoError(t, err)

	_, weight := r.SampleSpectrum(core.SurfaceInteraction{}, core.SampleShifted(0.1))
	assert.True(t, weight.IsBlack())
}

func TestSampleLinear(t *testing.T) {
	assert.Equal(t, 0.0, sampleLinear(0, 0, 1))
	assert.InDelta(t, 0.5, sampleLinear(0.5, 1, 1), 1e-12)
	// Density 2x on [0,1): CDF x^2, so u=0.25 maps to 0.5
	assert.InDelta(t, 0.5, sampleLinear(0.25, 0, 1), 1e-12)
	assert.Less(t, sampleLinear(math.Nextafter(1, 0), 1, 1), 1.0)
}
