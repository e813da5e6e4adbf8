// Package geom holds the triangle meshes the preview renderer draws.
package geom

import (
	"math"

	"golang.org/x/image/math/f32"

	"xform-kernel/internal/mathutil"
	"xform-kernel/internal/transform"
)

// Triangle indexes three positions and three UVs of its mesh.
type Triangle struct {
	VI [3]int
	TI [3]int
}

// Mesh is an indexed triangle list. Positions are in object space.
type Mesh struct {
	Name  string
	Verts []f32.Vec3
	UVs   []f32.Vec2
	Tris  []Triangle
}

// Cube returns the axis-aligned cube spanning [-0.5, 0.5]³, two triangles
// per face, counter-clockwise seen from outside.
func Cube() Mesh {
	verts := []f32.Vec3{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	}
	uvs := []f32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	faces := [6][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	m := Mesh{Name: "cube", Verts: verts, UVs: uvs}
	for _, f := range faces {
		m.Tris = append(m.Tris,
			Triangle{VI: [3]int{f[0], f[1], f[2]}, TI: [3]int{0, 1, 2}},
			Triangle{VI: [3]int{f[0], f[2], f[3]}, TI: [3]int{0, 2, 3}},
		)
	}
	return m
}

// Plane returns a size×size quad in the XZ plane at height y, facing +Y.
func Plane(size, y float32) Mesh {
	h := size / 2
	return Mesh{
		Name:  "plane",
		Verts: []f32.Vec3{{-h, y, -h}, {h, y, -h}, {h, y, h}, {-h, y, h}},
		UVs:   []f32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Tris: []Triangle{
			{VI: [3]int{0, 3, 2}, TI: [3]int{0, 3, 2}},
			{VI: [3]int{0, 2, 1}, TI: [3]int{0, 2, 1}},
		},
	}
}

// Transformed returns a copy of m with every position passed through t.
// Index and UV slices are shared with m.
func (m Mesh) Transformed(t transform.Transform) Mesh {
	out := m
	out.Verts = make([]f32.Vec3, len(m.Verts))
	for i, v := range m.Verts {
		out.Verts[i] = transform.Point(t, v)
	}
	return out
}

// FaceNormal returns the unit normal of triangle i from its winding.
// Degenerate triangles yield NaN.
func (m Mesh) FaceNormal(i int) f32.Vec3 {
	tri := m.Tris[i]
	a, b, c := m.Verts[tri.VI[0]], m.Verts[tri.VI[1]], m.Verts[tri.VI[2]]
	return mathutil.Normalize3(mathutil.Cross(mathutil.Sub3(b, a), mathutil.Sub3(c, a)))
}

// Bounds returns the component-wise minimum and maximum position. An empty
// mesh returns +Inf and -Inf.
func (m Mesh) Bounds() (lo, hi f32.Vec3) {
	inf := float32(math.Inf(1))
	lo = f32.Vec3{inf, inf, inf}
	hi = f32.Vec3{-inf, -inf, -inf}
	for _, v := range m.Verts {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo, hi
}
