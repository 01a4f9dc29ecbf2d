// Package material describes how surfaces scatter the light that reaches them.
package material

import "github.com/df07/go-radiometer/pkg/core"

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter samples an outgoing direction at si. Returns false when the
	// material absorbs the ray.
	Scatter(rayIn core.Ray, si core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered core.Ray      // The scattered ray
	Weight    core.Spectrum // brdf * cos / pdf, per wavelength sample
	PDF       float64       // Solid angle density of Scattered.Direction
}
