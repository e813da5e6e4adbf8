// Package noise builds lattice value noise on top of the integer hash.
package noise

import (
	"image"
	"math"

	"xform-kernel/internal/hash"
)

// lattice returns the value at integer corner (ix, iy) in [0, 1).
func lattice(ix, iy int32, seed uint32) float32 {
	return hash.Int2DFloat(hash.Int2D(seed, uint32(ix)), uint32(iy))
}

func smooth(t float32) float32 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Value samples smooth value noise at (x, y). The result lies in [0, 1)
// and is continuous; integer coordinates return the raw lattice value.
func Value(x, y float32, seed uint32) float32 {
	fx, fy := float32(math.Floor(float64(x))), float32(math.Floor(float64(y)))
	ix, iy := int32(fx), int32(fy)
	tx, ty := smooth(x-fx), smooth(y-fy)

	v00 := lattice(ix, iy, seed)
	v10 := lattice(ix+1, iy, seed)
	v01 := lattice(ix, iy+1, seed)
	v11 := lattice(ix+1, iy+1, seed)

	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

// FBM sums octaves of Value, doubling frequency and halving amplitude each
// time, normalised back to [0, 1).
func FBM(x, y float32, octaves int, seed uint32) float32 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, norm float32
	amp, freq := float32(1), float32(1)
	for o := 0; o < octaves; o++ {
		sum += amp * Value(x*freq, y*freq, seed+uint32(o))
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}

// Texture renders a size×size grey-brown FBM tile. It is the fallback
// surface when no texture file is configured.
func Texture(size int, scale float32, seed uint32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	inv := scale / float32(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := FBM(float32(x)*inv, float32(y)*inv, 4, seed)
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(90 + v*140)
			img.Pix[i+1] = uint8(80 + v*120)
			img.Pix[i+2] = uint8(70 + v*90)
			img.Pix[i+3] = 255
		}
	}
	return img
}
