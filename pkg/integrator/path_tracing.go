package integrator

import (
	"math"

	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing over shapes
// lit by the scene's emitters
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// Li returns the radiance arriving at the ray origin from the ray direction
func (pt *PathTracingIntegrator) Li(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Spectrum {
	throughput := core.NewSpectrum(1)
	var radiance core.Spectrum

	for depth := 0; ; depth++ {
		hit, shape, isHit := sc.RayIntersect(ray)
		if !isHit {
			return radiance.Add(throughput.Mul(sc.Radiance(ray)))
		}

		if pt.config.MaxDepth > 0 && depth+1 >= pt.config.MaxDepth {
			return radiance
		}

		mat := shape.Material()
		if mat == nil {
			return radiance
		}
		scatter, didScatter := mat.Scatter(ray, *hit, sampler)
		if !didScatter {
			return radiance
		}
		throughput = throughput.Mul(scatter.Weight)

		shouldTerminate, rrCompensation := pt.applyRussianRoulette(depth, throughput, sampler)
		if shouldTerminate {
			return radiance
		}
		throughput = throughput.Scale(rrCompensation)
		ray = scatter.Scattered
	}
}

// applyRussianRoulette decides whether to end the path and returns the
// compensation factor for surviving paths
func (pt *PathTracingIntegrator) applyRussianRoulette(depth int, throughput core.Spectrum, sampler core.Sampler) (bool, float64) {
	if depth < pt.config.RRDepth {
		return false, 1.0
	}
	survival := math.Min(0.95, throughput.Max())
	if survival <= 0 || sampler.Next1D() > survival {
		return true, 0
	}
	return false, 1.0 / survival
}
