package mathutil

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Vector helpers over the x/image f32 types. Every product is rounded to
// float32 before it is summed so no multiply-add gets fused; results are
// the same on every GOARCH.

func Add3(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub3(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale3(v f32.Vec3, s float32) f32.Vec3 {
	return f32.Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Div3 divides every component by s. s == 0 yields inf/NaN.
func Div3(v f32.Vec3, s float32) f32.Vec3 {
	return f32.Vec3{v[0] / s, v[1] / s, v[2] / s}
}

func Dot3(a, b f32.Vec3) float32 {
	return float32(a[0]*b[0]) + float32(a[1]*b[1]) + float32(a[2]*b[2])
}

func Dot4(a, b f32.Vec4) float32 {
	return float32(a[0]*b[0]) + float32(a[1]*b[1]) + float32(a[2]*b[2]) + float32(a[3]*b[3])
}

func Cross(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		float32(a[1]*b[2]) - float32(a[2]*b[1]),
		float32(a[2]*b[0]) - float32(a[0]*b[2]),
		float32(a[0]*b[1]) - float32(a[1]*b[0]),
	}
}

func Len3(v f32.Vec3) float32 {
	return float32(math.Sqrt(float64(Dot3(v, v))))
}

// Normalize3 returns v / |v|. A zero vector gives NaN components; callers
// must not pass one.
func Normalize3(v f32.Vec3) f32.Vec3 {
	return Div3(v, Len3(v))
}

// Point4 extends p to homogeneous coordinates with w = 1.
func Point4(p f32.Vec3) f32.Vec4 {
	return f32.Vec4{p[0], p[1], p[2], 1}
}

// Dir4 extends d to homogeneous coordinates with w = 0.
func Dir4(d f32.Vec3) f32.Vec4 {
	return f32.Vec4{d[0], d[1], d[2], 0}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
