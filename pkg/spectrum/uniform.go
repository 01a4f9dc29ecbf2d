package spectrum

import (
	"fmt"

	"github.com/df07/go-radiometer/pkg/core"
)

// Uniform is a constant response over [LambdaMin, LambdaMax] and zero elsewhere
type Uniform struct {
	Value     float64
	LambdaMin float64
	LambdaMax float64
}

// NewUniform creates a uniform response over a sub-range of the visible spectrum
func NewUniform(value, lambdaMin, lambdaMax float64) (*Uniform, error) {
	if err := checkRange(lambdaMin, lambdaMax); err != nil {
		return nil, err
	}
	if value < 0 {
		return nil, fmt.Errorf("uniform response value must be non-negative, got %g", value)
	}
	return &Uniform{Value: value, LambdaMin: lambdaMin, LambdaMax: lambdaMax}, nil
}

// NewUniformFull creates a uniform response covering the full visible range
func NewUniformFull(value float64) *Uniform {
	return &Uniform{Value: value, LambdaMin: core.WavelengthMin, LambdaMax: core.WavelengthMax}
}

// Eval returns Value inside the range and zero outside
func (u *Uniform) Eval(_ core.SurfaceInteraction, wavelengths core.Wavelength) core.Spectrum {
	var s core.Spectrum
	for i, l := range wavelengths {
		if l >= u.LambdaMin && l <= u.LambdaMax {
			s[i] = u.Value
		}
	}
	return s
}

// SampleSpectrum maps each sample linearly onto the range
func (u *Uniform) SampleSpectrum(_ core.SurfaceInteraction, sample core.Wavelength) (core.Wavelength, core.Spectrum) {
	width := u.LambdaMax - u.LambdaMin
	var wavelengths core.Wavelength
	for i, s := range sample {
		wavelengths[i] = u.LambdaMin + width*s
	}
	return wavelengths, core.NewSpectrum(u.Value * width / fullRange)
}
