package transform

import "math"

// Perspective returns a projection with horizontal and vertical field of
// view fov (radians). The camera looks down +Z; after the divide, depth n
// maps to 0 and depth f to 1. The W row (0, 0, 1, 0) carries view depth.
func Perspective(fov, n, f float32) Transform {
	persp := New(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, f/(f-n), -f*n/(f-n),
		0, 0, 1, 0)

	invAngle := 1 / float32(math.Tan(0.5*float64(fov)))

	return Multiply(Scale(invAngle, invAngle, 1), persp)
}

// Orthographic maps depth n..f to 0..1 and leaves X and Y untouched.
func Orthographic(n, f float32) Transform {
	return Multiply(Scale(1, 1, 1/(f-n)), Translate(0, 0, -n))
}
