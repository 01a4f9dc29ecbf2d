package core

import (
	"math"
	"math/rand"
)

// RayEpsilon is the relative offset used to keep generated rays off surfaces and bounds
const RayEpsilon = 1e-6

var inf = math.Inf(1)

// Sampler provides uniform samples for rendering algorithms.
// Samplers are owned by the integrator; sensors only see the values drawn from them.
type Sampler interface {
	Next1D() float64
	Next2D() Vec2
}

// SamplerConfig describes how the integrator should sample a sensor's film
type SamplerConfig struct {
	Type        string // Only "independent" is supported
	SampleCount int    // Samples per pixel
	Seed        uint64 // Base seed mixed with the pixel index
}

// DefaultSamplerConfig returns an independent sampler with 4 samples per pixel
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{Type: "independent", SampleCount: 4}
}

// IndependentSampler wraps a standard Go random generator
type IndependentSampler struct {
	random *rand.Rand
}

// NewIndependentSampler creates a sampler from a Go random generator
func NewIndependentSampler(random *rand.Rand) *IndependentSampler {
	return &IndependentSampler{random: random}
}

// Next1D returns a random float64 in [0, 1)
func (s *IndependentSampler) Next1D() float64 {
	return s.random.Float64()
}

// Next2D returns two random float64 values in [0, 1)
func (s *IndependentSampler) Next2D() Vec2 {
	return NewVec2(s.random.Float64(), s.random.Float64())
}

// SampleShifted spreads one uniform sample into SpectralSamples stratified
// samples: (sample + i/N) mod 1.
func SampleShifted(sample float64) Wavelength {
	var out Wavelength
	for i := range out {
		v := sample + float64(i)/SpectralSamples
		out[i] = v - math.Floor(v)
	}
	return out
}

// SquareToUniformDiskConcentric maps the unit square to the unit disk with
// Shirley's concentric mapping (area preserving, low distortion)
func SquareToUniformDiskConcentric(sample Vec2) Vec2 {
	x := 2*sample.X - 1
	y := 2*sample.Y - 1
	if x == 0 && y == 0 {
		return Vec2{}
	}

	var r, phi float64
	if math.Abs(x) > math.Abs(y) {
		r = x
		phi = math.Pi / 4 * (y / x)
	} else {
		r = y
		phi = math.Pi/2 - math.Pi/4*(x/y)
	}

	return Vec2{r * math.Cos(phi), r * math.Sin(phi)}
}

// minCosine keeps hemisphere samples strictly above the tangent plane
const minCosine = 1e-6

// SquareToCosineHemisphere returns a local direction about +Z with density cos(theta)/pi.
// The z component is never below minCosine.
func SquareToCosineHemisphere(sample Vec2) Vec3 {
	p := SquareToUniformDiskConcentric(sample)
	z := math.Sqrt(math.Max(1-p.X*p.X-p.Y*p.Y, minCosine*minCosine))
	return Vec3{p.X, p.Y, z}
}

// SquareToCosineHemispherePDF is the density of SquareToCosineHemisphere
func SquareToCosineHemispherePDF(v Vec3) float64 {
	if v.Z <= 0 {
		return 0
	}
	return v.Z / math.Pi
}

// SquareToUniformSphere generates a uniform direction on the unit sphere
func SquareToUniformSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// CoordinateSystem completes a unit vector n into an orthonormal basis (s, t, n)
// using the branchless construction of Duff et al. 2017.
func CoordinateSystem(n Vec3) (Vec3, Vec3) {
	sign := math.Copysign(1, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	s := Vec3{1 + sign*n.X*n.X*a, sign * b, -sign * n.X}
	t := Vec3{b, sign + n.Y*n.Y*a, -n.Y}
	return s, t
}

// Frame is an orthonormal basis with N as the local +Z axis
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around a unit normal
func NewFrame(n Vec3) Frame {
	s, t := CoordinateSystem(n)
	return Frame{S: s, T: t, N: n}
}

// ToWorld converts a local direction to world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// ToLocal converts a world direction to frame coordinates
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}
