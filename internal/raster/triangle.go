package raster

import (
	"image"
	"math"

	"golang.org/x/image/math/f32"

	"xform-kernel/internal/hash"
)

// Vertex is a projected vertex: pixel X, pixel Y and NDC depth, plus UV.
type Vertex struct {
	Pos f32.Vec3
	UV  f32.Vec2
}

// Surface is what a triangle is filled with. Tex may be nil, in which case
// Color is used.
type Surface struct {
	Tex   *image.NRGBA
	Color [4]uint8
	Shade float64
}

// Jitter selects the sample position inside each pixel. With Enabled unset
// every pixel is sampled at its center.
type Jitter struct {
	Enabled bool
	Seed    uint32
}

// offset returns the sample position of pixel (x, y) relative to its
// top-left corner, in [0.25, 0.75).
func (j Jitter) offset(x, y int) (float64, float64) {
	if !j.Enabled {
		return 0.5, 0.5
	}
	ox := hash.Int2DFloat(uint32(x)+j.Seed, uint32(y))
	oy := hash.Int2DFloat(uint32(y), uint32(x)+j.Seed)
	return 0.25 + 0.5*float64(ox), 0.25 + 0.5*float64(oy)
}

// RasterizeTriangle fills one triangle with texture mapping, z-buffer,
// sRGB color space, flat lighting and ACES tone mapping. Depths outside
// [0, 1] are clipped per pixel.
//
// This is the hot path: it does not allocate.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, s *Surface, j Jitter, lc *LightConfig) {
	x0, y0, z0 := float64(v[0].Pos[0]), float64(v[0].Pos[1]), float64(v[0].Pos[2])
	x1, y1, z1 := float64(v[1].Pos[0]), float64(v[1].Pos[1]), float64(v[1].Pos[2])
	x2, y2, z2 := float64(v[2].Pos[0]), float64(v[2].Pos[1]), float64(v[2].Pos[2])

	for _, c := range [...]float64{x0, y0, z0, x1, y1, z1, x2, y2, z2} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return
		}
	}

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	shade := s.Shade * lc.Exposure
	invGamma := lc.InvGamma

	for sy := minY; sy <= maxY; sy++ {
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			ox, oy := j.offset(sx, sy)
			dsx := float64(sx) + ox - x2
			dsy := float64(sy) + oy - y2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := float32(w0*z0 + w1*z1 + w2*z2)
			if z < 0 || z > 1 {
				continue
			}
			zIdx := rowOff + sx
			if z >= fb.ZBuf[zIdx] {
				continue
			}

			c := s.Color
			if s.Tex != nil {
				uv := f32.Vec2{
					float32(w0*float64(v[0].UV[0]) + w1*float64(v[1].UV[0]) + w2*float64(v[2].UV[0])),
					float32(w0*float64(v[0].UV[1]) + w1*float64(v[1].UV[1]) + w2*float64(v[2].UV[1])),
				}
				c = SampleTexture(s.Tex, uv)
			}

			// Skip transparent texels
			if c[3] < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode → linear (LUT), shade, tone map, encode
			fr := math.Pow(ACESTonemap(srgbToLinear[c[0]]*shade), invGamma)
			fg := math.Pow(ACESTonemap(srgbToLinear[c[1]]*shade), invGamma)
			ffb := math.Pow(ACESTonemap(srgbToLinear[c[2]]*shade), invGamma)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(fr * 255)
			fb.Color[pxIdx+1] = clamp255(fg * 255)
			fb.Color[pxIdx+2] = clamp255(ffb * 255)
			fb.Color[pxIdx+3] = c[3]
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
