package spectrum

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-radiometer/pkg/core"
)

// Interpolated is a piecewise-linear response tabulated on a regular grid
type Interpolated struct {
	lambdaMin, lambdaMax float64
	values               []float64
	cdf                  []float64 // cumulative segment integrals, len(values)
	integral             float64
}

// NewInterpolated creates a response from at least two regularly spaced values
func NewInterpolated(lambdaMin, lambdaMax float64, values []float64) (*Interpolated, error) {
	if err := checkRange(lambdaMin, lambdaMax); err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("interpolated response needs at least 2 values, got %d", len(values))
	}
	for i, v := range values {
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("interpolated response value %d is negative or NaN: %g", i, v)
		}
	}

	r := &Interpolated{
		lambdaMin: lambdaMin,
		lambdaMax: lambdaMax,
		values:    append([]float64(nil), values...),
		cdf:       make([]float64, len(values)),
	}

	h := r.spacing()
	for i := 1; i < len(values); i++ {
		r.cdf[i] = r.cdf[i-1] + 0.5*(values[i-1]+values[i])*h
	}
	r.integral = r.cdf[len(values)-1]

	return r, nil
}

func (r *Interpolated) spacing() float64 {
	return (r.lambdaMax - r.lambdaMin) / float64(len(r.values)-1)
}

// Integral returns the integral of the response over wavelength
func (r *Interpolated) Integral() float64 {
	return r.integral
}

func (r *Interpolated) eval(lambda float64) float64 {
	if lambda < r.lambdaMin || lambda > r.lambdaMax {
		return 0
	}
	x := (lambda - r.lambdaMin) / r.spacing()
	i := min(int(x), len(r.values)-2)
	t := x - float64(i)
	return (1-t)*r.values[i] + t*r.values[i+1]
}

// Eval interpolates the response at each wavelength
func (r *Interpolated) Eval(_ core.SurfaceInteraction, wavelengths core.Wavelength) core.Spectrum {
	var s core.Spectrum
	for i, l := range wavelengths {
		s[i] = r.eval(l)
	}
	return s
}

// SampleSpectrum draws wavelengths proportionally to the response
func (r *Interpolated) SampleSpectrum(_ core.SurfaceInteraction, sample core.Wavelength) (core.Wavelength, core.Spectrum) {
	var wavelengths core.Wavelength
	var weight core.Spectrum

	if r.integral <= 0 {
		for i, s := range sample {
			wavelengths[i] = r.lambdaMin + (r.lambdaMax-r.lambdaMin)*s
		}
		return wavelengths, weight
	}

	h := r.spacing()
	segments := len(r.values) - 1
	for i, s := range sample {
		target := s * r.integral
		seg := sort.Search(segments, func(k int) bool { return r.cdf[k+1] > target })
		seg = min(seg, segments-1)

		area := r.cdf[seg+1] - r.cdf[seg]
		u := 0.0
		if area > 0 {
			u = (target - r.cdf[seg]) / area
		}
		x := sampleLinear(u, r.values[seg], r.values[seg+1])
		wavelengths[i] = r.lambdaMin + (float64(seg)+x)*h

		if r.eval(wavelengths[i]) > 0 {
			weight[i] = r.integral / fullRange
		}
	}

	return wavelengths, weight
}

// sampleLinear inverts the CDF of the density proportional to lerp(x, a, b) on [0,1)
func sampleLinear(u, a, b float64) float64 {
	if u == 0 && a == 0 {
		return 0
	}
	x := u * (a + b) / (a + math.Sqrt((1-u)*a*a+u*b*b))
	return math.Min(x, math.Nextafter(1, 0))
}
