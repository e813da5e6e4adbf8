package transform

import (
	"math"

	"golang.org/x/image/math/f32"

	"xform-kernel/internal/mathutil"
)

var (
	AxisX = f32.Vec3{1, 0, 0}
	AxisY = f32.Vec3{0, 1, 0}
	AxisZ = f32.Vec3{0, 0, 1}
)

// Rotate returns the rotation by angle radians about axis (Rodrigues'
// formula). The axis is normalized here; a zero-length axis yields NaN.
func Rotate(angle float32, axis f32.Vec3) Transform {
	s := float32(math.Sin(float64(angle)))
	c := float32(math.Cos(float64(angle)))
	t := 1 - c

	axis = mathutil.Normalize3(axis)
	x, y, z := axis[0], axis[1], axis[2]

	// Products are rounded before they are summed so no FMA is emitted.
	return New(
		float32(x*x*t)+c, float32(x*y*t)-float32(s*z), float32(x*z*t)+float32(s*y), 0,
		float32(y*x*t)+float32(s*z), float32(y*y*t)+c, float32(y*z*t)-float32(s*x), 0,
		float32(z*x*t)-float32(s*y), float32(z*y*t)+float32(s*x), float32(z*z*t)+c, 0,
		0, 0, 0, 1)
}

// Euler composes three rotations exactly as the kernel does:
//
//	Rotate(e[0], X) × Rotate(e[1], X) × Rotate(e[2], X)
//
// Every angle turns about the X axis. Stored scenes were authored against
// this, so it is kept bit for bit. Use EulerXYZ for the X, Y, Z order.
func Euler(e f32.Vec3) Transform {
	return Chain(
		Rotate(e[0], AxisX),
		Rotate(e[1], AxisX),
		Rotate(e[2], AxisX))
}

// EulerXYZ returns Rotate(e[0], X) × Rotate(e[1], Y) × Rotate(e[2], Z),
// so the Z rotation is applied to points first.
func EulerXYZ(e f32.Vec3) Transform {
	return Chain(
		Rotate(e[0], AxisX),
		Rotate(e[1], AxisY),
		Rotate(e[2], AxisZ))
}
