package raster

import (
	"golang.org/x/image/math/f32"

	"xform-kernel/internal/mathutil"
	"xform-kernel/internal/transform"
)

// clipVertex is a vertex before the perspective divide.
type clipVertex struct {
	Pos f32.Vec4
	UV  f32.Vec2
}

// toClip applies t to p without dividing by w.
func toClip(t transform.Transform, p f32.Vec3) f32.Vec4 {
	h := mathutil.Point4(p)
	return f32.Vec4{
		mathutil.Dot4(t.X, h),
		mathutil.Dot4(t.Y, h),
		mathutil.Dot4(t.Z, h),
		mathutil.Dot4(t.W, h),
	}
}

// clipNear cuts tri against the near plane z >= 0 and writes the kept
// polygon to out, returning its vertex count: 0, 3 or 4. Both projections
// put the near plane at clip z = 0, where w is positive, so every kept
// vertex can be divided safely.
func clipNear(tri [3]clipVertex, out *[4]clipVertex) int {
	n := 0
	for i := range 3 {
		a, b := tri[i], tri[(i+1)%3]
		inA, inB := a.Pos[2] >= 0, b.Pos[2] >= 0
		if inA {
			out[n] = a
			n++
		}
		if inA != inB {
			t := a.Pos[2] / (a.Pos[2] - b.Pos[2])
			out[n] = lerpClip(a, b, t)
			n++
		}
	}
	return n
}

func lerpClip(a, b clipVertex, t float32) clipVertex {
	var v clipVertex
	for i := range 4 {
		v.Pos[i] = a.Pos[i] + (b.Pos[i]-a.Pos[i])*t
	}
	v.Pos[2] = max(v.Pos[2], 0)
	for i := range 2 {
		v.UV[i] = a.UV[i] + (b.UV[i]-a.UV[i])*t
	}
	return v
}

// project performs the perspective divide.
func (c clipVertex) project() Vertex {
	w := c.Pos[3]
	return Vertex{Pos: f32.Vec3{c.Pos[0] / w, c.Pos[1] / w, c.Pos[2] / w}, UV: c.UV}
}
