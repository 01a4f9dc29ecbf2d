package sensor

import (
	"github.com/df07/go-radiometer/pkg/core"
	"github.com/df07/go-radiometer/pkg/spectrum"
)

// sampleWavelengths picks the wavelengths carried by a sensor ray.
//
// The single wavelength sample is spread with core.SampleShifted and, when an
// SRF is bound, handed to it unchanged; its wavelengths and weight are
// returned verbatim. Without an SRF the full visible range is sampled
// uniformly with unit weight.
func sampleWavelengths(srf spectrum.Response, sample float64) (core.Wavelength, core.Spectrum) {
	shifted := core.SampleShifted(sample)
	if srf != nil {
		return srf.SampleSpectrum(core.SurfaceInteraction{}, shifted)
	}

	var wavelengths core.Wavelength
	for i, s := range shifted {
		wavelengths[i] = core.WavelengthMin + (core.WavelengthMax-core.WavelengthMin)*s
	}
	return wavelengths, core.NewSpectrum(1)
}
