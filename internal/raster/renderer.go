// Package raster draws triangle meshes into an NRGBA image. Every vertex
// goes through one composed transform: raster × projection × view × model.
package raster

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/math/f32"

	"xform-kernel/internal/camera"
	"xform-kernel/internal/geom"
	"xform-kernel/internal/mathutil"
	"xform-kernel/internal/transform"
)

// Object places a mesh in the world.
type Object struct {
	Mesh    geom.Mesh
	Model   transform.Transform
	Texture *image.NRGBA
	Color   [4]uint8 // used when Texture is nil
}

// Options control a single render.
type Options struct {
	Size   int
	Jitter Jitter
	Light  *LightConfig // nil selects DefaultLightConfig
}

// Render draws objs as seen by cam. Triangles are clipped against the near
// plane before the perspective divide. It fails only if the camera has no
// view transform.
func Render(objs []Object, cam camera.Camera, opt Options) (*image.NRGBA, error) {
	vp, err := cam.ViewProjection()
	if err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}
	screen := transform.Multiply(camera.Raster(opt.Size), vp)

	lc := opt.Light
	if lc == nil {
		d := DefaultLightConfig()
		lc = &d
	}

	fb := NewFrameBuffer(opt.Size, opt.Size)
	for _, obj := range objs {
		drawObject(fb, obj, screen, opt.Jitter, lc)
	}
	return fb.Image(), nil
}

func drawObject(fb *FrameBuffer, obj Object, screen transform.Transform, j Jitter, lc *LightConfig) {
	mesh := obj.Mesh
	if len(mesh.Verts) == 0 {
		return
	}

	// Normals go through the inverse transpose so non-uniform scale keeps
	// them perpendicular to their faces. A flattening model has no inverse;
	// its own linear part is used instead, and normals it collapses fall
	// back to ambient light.
	normalMat := obj.Model
	if inv, err := transform.Inverse(obj.Model); err == nil {
		normalMat = transform.Transpose(inv)
	}

	mvp := transform.Multiply(screen, obj.Model)
	clip := make([]f32.Vec4, len(mesh.Verts))
	for i, p := range mesh.Verts {
		clip[i] = toClip(mvp, p)
	}

	surf := Surface{Tex: obj.Texture, Color: obj.Color}
	nuv := len(mesh.UVs)
	var poly [4]clipVertex
	for ti, tri := range mesh.Tris {
		var cv [3]clipVertex
		ok := true
		for k := 0; k < 3; k++ {
			vi, uvi := tri.VI[k], tri.TI[k]
			if vi < 0 || vi >= len(clip) {
				ok = false
				break
			}
			cv[k].Pos = clip[vi]
			if uvi >= 0 && uvi < nuv {
				cv[k].UV = mesh.UVs[uvi]
			}
		}
		if !ok {
			continue
		}
		n := clipNear(cv, &poly)
		if n < 3 {
			continue
		}

		normal := mathutil.Normalize3(transform.Direction(normalMat, mesh.FaceNormal(ti)))
		surf.Shade = lc.ComputeShade(normal)
		if math.IsNaN(surf.Shade) {
			surf.Shade = lc.Ambient
		}
		for k := 1; k+1 < n; k++ {
			v := [3]Vertex{poly[0].project(), poly[k].project(), poly[k+1].project()}
			RasterizeTriangle(fb, v, &surf, j, lc)
		}
	}
}
