package raster

import (
	"image"
	"math"

	"golang.org/x/image/math/f32"
)

// wrap maps a texture coordinate into [0, 1).
func wrap(t float32) float64 {
	f := float64(t)
	return f - math.Floor(f)
}

// SampleTexture filters tex bilinearly at uv, repeating outside [0, 1).
// The four texels are blended per channel in NRGBA order.
func SampleTexture(tex *image.NRGBA, uv f32.Vec2) [4]uint8 {
	w, h := tex.Rect.Dx(), tex.Rect.Dy()
	fx := wrap(uv[0]) * float64(w-1)
	fy := wrap(uv[1]) * float64(h-1)

	x0, y0 := int(fx), int(fy)
	x1, y1 := (x0+1)%w, (y0+1)%h
	tx, ty := fx-float64(x0), fy-float64(y0)

	row0 := tex.Pix[y0*tex.Stride:]
	row1 := tex.Pix[y1*tex.Stride:]

	var out [4]uint8
	for c := range 4 {
		top := float64(row0[x0*4+c])*(1-tx) + float64(row0[x1*4+c])*tx
		bot := float64(row1[x0*4+c])*(1-tx) + float64(row1[x1*4+c])*tx
		out[c] = uint8(top*(1-ty) + bot*ty + 0.5)
	}
	return out
}
