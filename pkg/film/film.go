// Package film holds the accumulation buffer that sensor samples are splatted into.
package film

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-radiometer/pkg/core"
)

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	Accum       core.Spectrum // Weighted radiance accumulator
	ValueAccum  float64       // Spectral average accumulator
	ValueSqAcc  float64       // Squared spectral average, for variance
	SampleCount int           // Number of samples taken
}

// AddSample adds a new spectral sample to the pixel statistics
func (ps *PixelStats) AddSample(value core.Spectrum) {
	ps.Accum = ps.Accum.Add(value)
	avg := value.Average()
	ps.ValueAccum += avg
	ps.ValueSqAcc += avg * avg
	ps.SampleCount++
}

// Mean returns the mean spectral-average value of the pixel
func (ps *PixelStats) Mean() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	return ps.ValueAccum / float64(ps.SampleCount)
}

// Variance returns the sample variance of the pixel mean estimate
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.ValueAccum / n
	return math.Max(0, (ps.ValueSqAcc/n-mean*mean)*n/(n-1))
}

// Film is a width x height grid of pixel accumulators. Concurrent AddSample
// calls are safe as long as they target different pixels.
type Film struct {
	width, height int
	pixels        []PixelStats
}

// New creates an empty film
func New(width, height int) (*Film, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("film size must be positive, got %dx%d", width, height)
	}
	return &Film{
		width:  width,
		height: height,
		pixels: make([]PixelStats, width*height),
	}, nil
}

// MustNew is New for sizes known to be valid
func MustNew(width, height int) *Film {
	f, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return f
}

// Size returns (width, height)
func (f *Film) Size() (int, int) {
	return f.width, f.height
}

// Clear resets every pixel
func (f *Film) Clear() {
	for i := range f.pixels {
		f.pixels[i] = PixelStats{}
	}
}

// AddSample accumulates a weighted radiance sample at pixel (x, y)
func (f *Film) AddSample(x, y int, value core.Spectrum) {
	f.pixels[y*f.width+x].AddSample(value)
}

// Pixel returns the statistics of pixel (x, y)
func (f *Film) Pixel(x, y int) PixelStats {
	return f.pixels[y*f.width+x]
}

// Value returns the developed value of pixel (x, y)
func (f *Film) Value(x, y int) float64 {
	ps := f.pixels[y*f.width+x]
	return ps.Mean()
}

// Values returns the developed film as rows of pixel values
func (f *Film) Values() [][]float64 {
	out := make([][]float64, f.height)
	for y := range out {
		out[y] = make([]float64, f.width)
		for x := range out[y] {
			out[y][x] = f.Value(x, y)
		}
	}
	return out
}

// Image tone-maps the film to 16-bit grayscale with the given exposure and gamma
func (f *Film) Image(exposure, gamma float64) image.Image {
	img := image.NewGray16(image.Rect(0, 0, f.width, f.height))
	invGamma := 1.0 / gamma
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			v := math.Max(0, math.Min(1, f.Value(x, y)*exposure))
			v = math.Pow(v, invGamma)
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}
	return img
}
