// Package spectrum provides spectral response functions that sensors can
// importance-sample to pick the wavelengths carried by their rays.
package spectrum

import (
	"errors"
	"fmt"

	"github.com/df07/go-radiometer/pkg/core"
)

// Response is a spectral response (or any non-negative function of wavelength).
//
// SampleSpectrum draws wavelengths proportionally to the response, one per
// entry of sample, and returns them with the Monte Carlo weight f/pdf
// normalized by the width of the full visible range. A response equal to 1
// over the full range therefore yields unit weights.
type Response interface {
	Eval(si core.SurfaceInteraction, wavelengths core.Wavelength) core.Spectrum
	SampleSpectrum(si core.SurfaceInteraction, sample core.Wavelength) (core.Wavelength, core.Spectrum)
}

var ErrInvalidRange = errors.New("invalid wavelength range")

func checkRange(lambdaMin, lambdaMax float64) error {
	if lambdaMin < core.WavelengthMin || lambdaMax > core.WavelengthMax || lambdaMin >= lambdaMax {
		return fmt.Errorf("%w: [%g, %g] must lie within [%g, %g]",
			ErrInvalidRange, lambdaMin, lambdaMax, core.WavelengthMin, core.WavelengthMax)
	}
	return nil
}

const fullRange = core.WavelengthMax - core.WavelengthMin
