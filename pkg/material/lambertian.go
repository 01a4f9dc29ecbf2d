package material

import (
	"math"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/spectrum"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo spectrum.Response // Spectral reflectance in [0, 1]
}

// NewLambertian creates a diffuse material with a spectral albedo
func NewLambertian(albedo spectrum.Response) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// NewDiffuse creates a diffuse material reflecting the same fraction at every wavelength
func NewDiffuse(albedo float64) *Lambertian {
	return NewLambertian(spectrum.NewUniformFull(albedo))
}

// Scatter implements the Material interface for lambertian scattering.
// Directions are cosine-weighted around the shading normal, so the weight
// reduces to the albedo at the ray's wavelengths.
func (l *Lambertian) Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	albedo := l.Albedo.Eval(si, rayIn.Wavelengths)
	if albedo.IsBlack() {
		return ScatterResult{}, false
	}

	local := core.SquareToCosineHemisphere(sampler.Next2D())
	direction := core.NewFrame(si.N).ToWorld(local)

	scattered := core.NewRay(si.P, direction)
	scattered.Time = rayIn.Time
	scattered.Wavelengths = rayIn.Wavelengths

	return ScatterResult{
		Scattered: scattered,
		Weight:    albedo,
		PDF:       local.Z / math.Pi,
	}, true
}
