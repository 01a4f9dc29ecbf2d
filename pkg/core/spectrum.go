package core

import "math"

// SpectralSamples is the number of wavelengths carried by each ray
const SpectralSamples = 4

// Visible range used for uniform full-spectrum sampling, in nanometres
const (
	WavelengthMin = 360.0
	WavelengthMax = 830.0
)

// Wavelength holds the wavelengths (nm) sampled for a ray
type Wavelength [SpectralSamples]float64

// Spectrum holds one radiometric value per sampled wavelength
type Spectrum [SpectralSamples]float64

// NewSpectrum returns a spectrum with every sample set to v
func NewSpectrum(v float64) Spectrum {
	var s Spectrum
	for i := range s {
		s[i] = v
	}
	return s
}

// Add returns the component-wise sum
func (s Spectrum) Add(other Spectrum) Spectrum {
	for i := range s {
		s[i] += other[i]
	}
	return s
}

// Mul returns the component-wise product
func (s Spectrum) Mul(other Spectrum) Spectrum {
	for i := range s {
		s[i] *= other[i]
	}
	return s
}

// Scale returns the spectrum multiplied by a scalar
func (s Spectrum) Scale(k float64) Spectrum {
	for i := range s {
		s[i] *= k
	}
	return s
}

// Average returns the mean over the spectral samples
func (s Spectrum) Average() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / SpectralSamples
}

// Max returns the largest component
func (s Spectrum) Max() float64 {
	m := s[0]
	for _, v := range s[1:] {
		m = math.Max(m, v)
	}
	return m
}

// IsBlack reports whether every component is zero
func (s Spectrum) IsBlack() bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// ApproxEqual compares two spectra within tolerance
func (s Spectrum) ApproxEqual(other Spectrum, tolerance float64) bool {
	for i := range s {
		if math.Abs(s[i]-other[i]) > tolerance {
			return false
		}
	}
	return true
}
