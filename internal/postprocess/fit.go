package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Fit crops img to its opaque pixels and scales the result so its longer
// side covers fillRatio of a size×size transparent canvas, centered.
// A fully transparent image yields an empty canvas.
func Fit(img *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))

	box := OpaqueBounds(img)
	if box.Empty() {
		return canvas
	}

	scale := float64(size) * fillRatio / math.Max(float64(box.Dx()), float64(box.Dy()))
	w := max(1, int(float64(box.Dx())*scale+0.5))
	h := max(1, int(float64(box.Dy())*scale+0.5))

	off := image.Pt((size-w)/2, (size-h)/2)
	dst := image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}
	draw.CatmullRom.Scale(canvas, dst, img, box, draw.Src, nil)
	return canvas
}

// OpaqueBounds returns the smallest rectangle holding every pixel with
// non-zero alpha.
func OpaqueBounds(img *image.NRGBA) image.Rectangle {
	var box image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] > 0 {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box
}
