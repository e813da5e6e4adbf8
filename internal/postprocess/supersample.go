package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled frame to targetSize square. Filtering
// runs on 16-bit premultiplied samples, so transparent background pixels
// add no dark fringe to object edges. Frames already small enough are
// returned as is.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}

	acc := image.NewRGBA64(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(acc, acc.Bounds(), img, b, draw.Src, nil)
	return unpremultiply(acc)
}

func unpremultiply(src *image.RGBA64) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			c := src.RGBA64At(x, y)
			if c.A == 0 {
				continue
			}
			out.SetNRGBA(x, y, color.NRGBA{
				R: channel(c.R, c.A),
				G: channel(c.G, c.A),
				B: channel(c.B, c.A),
				A: uint8((uint32(c.A)*255 + 0x7fff) / 0xffff),
			})
		}
	}
	return out
}

// channel converts one premultiplied 16-bit sample to straight 8-bit.
// Filter overshoot can push v above a; the result is clamped.
func channel(v, a uint16) uint8 {
	n := (uint32(v)*255 + uint32(a)/2) / uint32(a)
	return uint8(min(n, 255))
}
