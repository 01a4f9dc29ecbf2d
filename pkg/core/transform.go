package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine 4x4 homogeneous transform with its cached inverse
type Transform struct {
	matrix  mgl64.Mat4
	inverse mgl64.Mat4
}

// IdentityTransform returns the identity transform
func IdentityTransform() Transform {
	return Transform{matrix: mgl64.Ident4(), inverse: mgl64.Ident4()}
}

// NewTransform wraps a matrix and computes its inverse
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{matrix: m, inverse: m.Inv()}
}

// NewTransformFromRows builds a transform from a row-major 4x4 array
func NewTransformFromRows(rows [4][4]float64) Transform {
	var m mgl64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.Set(row, col, rows[row][col])
		}
	}
	return NewTransform(m)
}

// Translate returns a translation by v
func Translate(v Vec3) Transform {
	return Transform{
		matrix:  mgl64.Translate3D(v.X, v.Y, v.Z),
		inverse: mgl64.Translate3D(-v.X, -v.Y, -v.Z),
	}
}

// Scale returns a non-uniform scale
func Scale(v Vec3) Transform {
	return NewTransform(mgl64.Scale3D(v.X, v.Y, v.Z))
}

// Rotate returns a rotation of angle degrees about axis
func Rotate(axis Vec3, degrees float64) Transform {
	m := mgl64.HomogRotate3D(mgl64.DegToRad(degrees), axis.Normalize().mgl())
	return Transform{matrix: m, inverse: m.Transpose()}
}

// LookAt returns the camera-to-world frame at origin looking at target.
// Columns are [left, up, forward, origin].
func LookAt(origin, target, up Vec3) Transform {
	return LookAtFrame(origin, target.Subtract(origin), up)
}

// LookAtFrame is LookAt with an explicit forward axis. forward is normalized here.
func LookAtFrame(origin, forward, up Vec3) Transform {
	dir := forward.Normalize()
	left := up.Cross(dir).Normalize()
	newUp := dir.Cross(left)

	m := mgl64.Mat4FromCols(
		left.mgl().Vec4(0),
		newUp.mgl().Vec4(0),
		dir.mgl().Vec4(0),
		origin.mgl().Vec4(1),
	)

	// Orthonormal rotation: inverse is the transpose followed by the reverse translation
	rot := mgl64.Mat4FromRows(
		left.mgl().Vec4(0),
		newUp.mgl().Vec4(0),
		dir.mgl().Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	inverse := rot.Mul4(mgl64.Translate3D(-origin.X, -origin.Y, -origin.Z))

	return Transform{matrix: m, inverse: inverse}
}

// Mul returns the composition t * other (other is applied first)
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		matrix:  t.matrix.Mul4(other.matrix),
		inverse: other.inverse.Mul4(t.inverse),
	}
}

// Matrix returns the homogeneous matrix
func (t Transform) Matrix() mgl64.Mat4 {
	return t.matrix
}

// Inverse returns the inverse transform
func (t Transform) Inverse() Transform {
	return Transform{matrix: t.inverse, inverse: t.matrix}
}

// At returns the matrix entry at row, col
func (t Transform) At(row, col int) float64 {
	return t.matrix.At(row, col)
}

// Rows returns the matrix as a row-major array
func (t Transform) Rows() [4][4]float64 {
	var rows [4][4]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			rows[row][col] = t.matrix.At(row, col)
		}
	}
	return rows
}

// TransformPoint applies the full affine transform to a point
func (t Transform) TransformPoint(p Vec3) Vec3 {
	m := t.matrix
	x := m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3)
	y := m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3)
	z := m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3)
	w := m.At(3, 0)*p.X + m.At(3, 1)*p.Y + m.At(3, 2)*p.Z + m.At(3, 3)
	if w != 1 && w != 0 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformVector applies the linear part of the transform
func (t Transform) TransformVector(v Vec3) Vec3 {
	m := t.matrix
	return Vec3{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// TransformNormal applies the inverse transpose and renormalizes
func (t Transform) TransformNormal(n Vec3) Vec3 {
	inv := t.inverse
	return Vec3{
		X: inv.At(0, 0)*n.X + inv.At(1, 0)*n.Y + inv.At(2, 0)*n.Z,
		Y: inv.At(0, 1)*n.X + inv.At(1, 1)*n.Y + inv.At(2, 1)*n.Z,
		Z: inv.At(0, 2)*n.X + inv.At(1, 2)*n.Y + inv.At(2, 2)*n.Z,
	}.Normalize()
}

// Translation returns the translation column
func (t Transform) Translation() Vec3 {
	return Vec3{t.matrix.At(0, 3), t.matrix.At(1, 3), t.matrix.At(2, 3)}
}

// Forward returns the image of the local +Z axis (the look direction)
func (t Transform) Forward() Vec3 {
	return Vec3{t.matrix.At(0, 2), t.matrix.At(1, 2), t.matrix.At(2, 2)}
}

// ApproxEqual compares two transforms entry by entry
func (t Transform) ApproxEqual(other Transform, tolerance float64) bool {
	for i := range t.matrix {
		if math.Abs(t.matrix[i]-other.matrix[i]) > tolerance {
			return false
		}
	}
	return true
}

// AnimatedTransform is a world transform indexed by time.
// Only a single keyframe is supported, so Eval is constant in time.
type AnimatedTransform struct {
	transform Transform
}

// NewAnimatedTransform creates a time-invariant animated transform
func NewAnimatedTransform(t Transform) *AnimatedTransform {
	return &AnimatedTransform{transform: t}
}

// Eval returns the transform at the given time
func (a *AnimatedTransform) Eval(time float64) Transform {
	return a.transform
}
