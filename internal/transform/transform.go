// Package transform implements the kernel's 4×4 homogeneous transform.
//
// A Transform is four rows of four float32 values. Points are column
// vectors on the right, so Multiply(a, b) applies b first and then a.
// All functions are pure and allocation-free; Transform is a value type
// and is safe to share between goroutines.
package transform

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/f32"

	"xform-kernel/internal/mathutil"
)

// Transform is a row-major 4×4 matrix. X, Y and Z hold the linear part and
// translation column; W is (0, 0, 0, 1) for affine transforms. That is a
// convention only, nothing enforces it.
type Transform struct {
	X, Y, Z, W f32.Vec4 // rows
}

// New builds a transform from sixteen values given row by row.
func New(
	a, b, c, d,
	e, f, g, h,
	i, j, k, l,
	m, n, o, p float32,
) Transform {
	return Transform{
		X: f32.Vec4{a, b, c, d},
		Y: f32.Vec4{e, f, g, h},
		Z: f32.Vec4{i, j, k, l},
		W: f32.Vec4{m, n, o, p},
	}
}

// Identity returns the transform with unit scale and zero translation.
func Identity() Transform {
	return Scale(1, 1, 1)
}

// Translate returns an affine transform moving points by (x, y, z).
func Translate(x, y, z float32) Transform {
	return New(
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1)
}

func TranslateVec(t f32.Vec3) Transform {
	return Translate(t[0], t[1], t[2])
}

// Scale returns a diagonal transform. A zero factor is allowed and gives a
// singular transform.
func Scale(x, y, z float32) Transform {
	return New(
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1)
}

func ScaleVec(s f32.Vec3) Transform {
	return Scale(s[0], s[1], s[2])
}

// Transpose swaps rows and columns.
func Transpose(a Transform) Transform {
	return New(
		a.X[0], a.Y[0], a.Z[0], a.W[0],
		a.X[1], a.Y[1], a.Z[1], a.W[1],
		a.X[2], a.Y[2], a.Z[2], a.W[2],
		a.X[3], a.Y[3], a.Z[3], a.W[3])
}

// Multiply returns a × b, the transform that applies b first and then a.
// Columns of b are read as rows of its transpose and dotted with the rows
// of a.
func Multiply(a, b Transform) Transform {
	c := Transpose(b)
	return Transform{
		X: row(a.X, c),
		Y: row(a.Y, c),
		Z: row(a.Z, c),
		W: row(a.W, c),
	}
}

func row(r f32.Vec4, c Transform) f32.Vec4 {
	return f32.Vec4{
		mathutil.Dot4(r, c.X),
		mathutil.Dot4(r, c.Y),
		mathutil.Dot4(r, c.Z),
		mathutil.Dot4(r, c.W),
	}
}

// Chain multiplies ts left to right: Chain(a, b, c) == a × b × c. An empty
// chain is the identity.
func Chain(ts ...Transform) Transform {
	if len(ts) == 0 {
		return Identity()
	}
	out := ts[0]
	for _, t := range ts[1:] {
		out = Multiply(out, t)
	}
	return out
}

// Point applies t to p with w = 1 and divides by the resulting w. A zero w
// is not guarded against: the result holds inf or NaN.
func Point(t Transform, p f32.Vec3) f32.Vec3 {
	b := mathutil.Point4(p)
	c := f32.Vec3{mathutil.Dot4(t.X, b), mathutil.Dot4(t.Y, b), mathutil.Dot4(t.Z, b)}
	return mathutil.Div3(c, mathutil.Dot4(t.W, b))
}

// Direction applies t to d with w = 0. Translation and the W row are
// ignored.
func Direction(t Transform, d f32.Vec3) f32.Vec3 {
	b := mathutil.Dir4(d)
	return f32.Vec3{mathutil.Dot4(t.X, b), mathutil.Dot4(t.Y, b), mathutil.Dot4(t.Z, b)}
}

// Column returns component i of the X, Y and Z rows. Column(t, 3) is the
// translation of an affine transform.
func Column(t Transform, i int) f32.Vec3 {
	return f32.Vec3{t.X[i], t.Y[i], t.Z[i]}
}

// Equal reports whether a and b have identical bit patterns in all sixteen
// components. Values that differ only by rounding are not equal, +0 and -0
// are not equal, and a NaN equals a NaN with the same payload.
func Equal(a, b Transform) bool {
	return rowBits(a.X, b.X) && rowBits(a.Y, b.Y) && rowBits(a.Z, b.Z) && rowBits(a.W, b.W)
}

func rowBits(a, b f32.Vec4) bool {
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}

// IsAffine reports whether the W row is exactly (0, 0, 0, 1).
func (t Transform) IsAffine() bool {
	return rowBits(t.W, f32.Vec4{0, 0, 0, 1})
}

// Dump renders the four rows, each prefixed by label.
func (t Transform) Dump(label string) string {
	var sb strings.Builder
	for _, r := range [4]f32.Vec4{t.X, t.Y, t.Z, t.W} {
		if label != "" {
			sb.WriteString(label)
			sb.WriteString(": ")
		}
		fmt.Fprintf(&sb, "%.6f %.6f %.6f %.6f\n", r[0], r[1], r[2], r[3])
	}
	return sb.String()
}

func (t Transform) String() string {
	return fmt.Sprintf("[%v %v %v %v]", t.X, t.Y, t.Z, t.W)
}
