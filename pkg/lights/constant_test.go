package lights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/spectrum"
)

func TestConstantEmitterIsDirectionIndependent(t *testing.T) {
	e := NewUniformConstantEmitter("sky", 2.5)
	assert.Equal(t, "sky", e.ID())

	for _, d := range []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, -1, 0).Normalize(),
		core.NewVec3(0, -1, 0),
	} {
		ray := core.NewRay(core.Vec3{}, d)
		ray.Wavelengths = core.Wavelength{400, 500, 600, 700}
		assert.Equal(t, core.NewSpectrum(2.5), e.Eval(ray))
	}
}

func TestConstantEmitterSpectralRadiance(t *testing.T) {
	band, err := spectrum.NewUniform(1, 500, 600)
	require.NoError(t, err)
	e := NewConstantEmitter("", band)
	assert.NotEmpty(t, e.ID())

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	ray.Wavelengths = core.Wavelength{450, 500, 550, 650}
	assert.Equal(t, core.Spectrum{0, 1, 1, 0}, e.Eval(ray))
}

func TestConstantEmitterPreprocess(t *testing.T) {
	e := NewUniformConstantEmitter("", 1)
	require.NoError(t, e.Preprocess(core.NewVec3(1, 2, 3), 4))
	assert.Equal(t, core.BoundingSphere{Center: core.NewVec3(1, 2, 3), Radius: 4}, e.WorldBounds())
}
