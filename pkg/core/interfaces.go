package core

// SurfaceInteraction describes a ray-surface hit. The zero value is the
// empty context passed to spectral response functions that do not depend
// on position.
type SurfaceInteraction struct {
	P           Vec3    // Hit point
	N           Vec3    // Geometric normal, facing against the incoming ray
	T           float64 // Ray parameter at the hit
	FrontFace   bool    // Whether the ray hit the outward side
	Time        float64
	Wavelengths Wavelength
	ShapeID     string
}

// IsValid reports whether the interaction records an actual hit
func (si SurfaceInteraction) IsValid() bool {
	return si.T > 0 && si.T < inf
}

// PositionSample is a point sampled on a surface
type PositionSample struct {
	P   Vec3    // Sampled point
	N   Vec3    // Outward unit normal at P
	PDF float64 // Area density of the sample
}
