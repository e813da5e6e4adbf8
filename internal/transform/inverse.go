package transform

import (
	"errors"
	"math"

	"xform-kernel/internal/mathutil"
)

// ErrSingular is returned by Inverse when the matrix has no usable inverse.
var ErrSingular = errors.New("transform: singular matrix")

// SingularEpsilon bounds |det| relative to the product of the row lengths,
// which is the largest determinant rows of those lengths can have. Below it
// the matrix is treated as singular. The ratio does not change when a row is
// scaled, so large translations or tiny scales alone never trip it.
const SingularEpsilon = 1e-12

// Inverse returns the inverse of a. Affine transforms are inverted blockwise
// (3×3 linear part, then translation); anything else goes through the full
// 4×4 adjugate. Both paths work in float64 and round the result to float32.
//
// A singular matrix yields Identity() and ErrSingular; no division by zero
// takes place.
func Inverse(a Transform) (Transform, error) {
	if a.IsAffine() {
		return inverseAffine(a)
	}
	return inverseGeneral(a)
}

// MustInverse is like Inverse but panics on a singular matrix. It is meant
// for package-level constants built from known-good transforms.
func MustInverse(a Transform) Transform {
	inv, err := Inverse(a)
	if err != nil {
		panic(err)
	}
	return inv
}

func inverseAffine(a Transform) (Transform, error) {
	l := mathutil.Mat3{
		float64(a.X[0]), float64(a.X[1]), float64(a.X[2]),
		float64(a.Y[0]), float64(a.Y[1]), float64(a.Y[2]),
		float64(a.Z[0]), float64(a.Z[1]), float64(a.Z[2]),
	}
	n := l.RowNorms()
	if singular(l.Det(), n[:]...) {
		return Identity(), ErrSingular
	}
	li := l.Inverse()
	t := li.MulVec3([3]float64{float64(a.X[3]), float64(a.Y[3]), float64(a.Z[3])})

	return New(
		float32(li[0]), float32(li[1]), float32(li[2]), float32(-t[0]),
		float32(li[3]), float32(li[4]), float32(li[5]), float32(-t[1]),
		float32(li[6]), float32(li[7]), float32(li[8]), float32(-t[2]),
		0, 0, 0, 1), nil
}

func inverseGeneral(a Transform) (Transform, error) {
	var m [16]float64
	for r, row := range [4][4]float32{a.X, a.Y, a.Z, a.W} {
		for c, v := range row {
			m[r*4+c] = float64(v)
		}
	}

	var inv [16]float64
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]

	var norms [4]float64
	for r := range 4 {
		row := m[r*4 : r*4+4]
		norms[r] = math.Sqrt(row[0]*row[0] + row[1]*row[1] + row[2]*row[2] + row[3]*row[3])
	}
	if singular(det, norms[:]...) {
		return Identity(), ErrSingular
	}

	invDet := 1 / det
	var out [16]float32
	for i, v := range inv {
		out[i] = float32(v * invDet)
	}
	return New(
		out[0], out[1], out[2], out[3],
		out[4], out[5], out[6], out[7],
		out[8], out[9], out[10], out[11],
		out[12], out[13], out[14], out[15]), nil
}

// singular reports whether det is negligible next to the row lengths.
func singular(det float64, norms ...float64) bool {
	if det == 0 || math.IsNaN(det) {
		return true
	}
	bound := SingularEpsilon
	for _, n := range norms {
		if n == 0 {
			return true
		}
		bound *= n
	}
	return math.Abs(det) <= bound
}
