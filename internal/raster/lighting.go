package raster

import (
	"math"

	"golang.org/x/image/math/f32"

	"xform-kernel/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are world
// space unit vectors.
type LightConfig struct {
	LightDir  f32.Vec3
	RimDir    f32.Vec3
	ViewDir   f32.Vec3
	HalfMain  f32.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a key light from the upper right, a cool rim
// light from behind and a mild hemisphere fill.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Normalize3(f32.Vec3{180, 260, -140})
	rimDir := mathutil.Normalize3(f32.Vec3{-160, 130, 210})
	viewDir := mathutil.Normalize3(f32.Vec3{0, -110, 400})

	halfMain := mathutil.Normalize3(mathutil.Sub3(lightDir, viewDir))

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.35,
		Hemi:      0.40,
		Direct:    1.20,
		Rim:       0.45,
		SpecInt:   0.35,
		SpecPow:   12.0,
		Exposure:  1.0,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit normal.
func (lc *LightConfig) ComputeShade(normal f32.Vec3) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(float64(mathutil.Dot3(normal, lc.LightDir)))
	ndlRim := math.Abs(float64(mathutil.Dot3(normal, lc.RimDir)))

	// Hemisphere fill
	hemi := (1.0-math.Abs(float64(normal[1])))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := float64(mathutil.Dot3(normal, lc.HalfMain))
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
