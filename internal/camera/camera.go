// Package camera builds view and projection transforms for the preview
// renderer. View space looks down +Z with +Y up, which is what
// transform.Perspective expects.
package camera

import (
	"fmt"

	"golang.org/x/image/math/f32"

	"xform-kernel/internal/mathutil"
	"xform-kernel/internal/transform"
)

// Camera describes a pinhole or orthographic camera. FOV is in radians.
// OrthoHeight is the visible height when Ortho is set.
type Camera struct {
	Eye         f32.Vec3
	Target      f32.Vec3
	Up          f32.Vec3
	FOV         float32
	Near        float32
	Far         float32
	Ortho       bool
	OrthoHeight float32
}

// ToWorld returns the camera-to-world transform. Its columns are the
// right, up and forward axes and the eye position.
func (c Camera) ToWorld() transform.Transform {
	fwd := mathutil.Normalize3(mathutil.Sub3(c.Target, c.Eye))
	right := mathutil.Normalize3(mathutil.Cross(c.Up, fwd))
	up := mathutil.Cross(fwd, right)

	return transform.New(
		right[0], up[0], fwd[0], c.Eye[0],
		right[1], up[1], fwd[1], c.Eye[1],
		right[2], up[2], fwd[2], c.Eye[2],
		0, 0, 0, 1)
}

// View returns the world-to-camera transform. Eye == Target or Up
// parallel to the view direction has no inverse and yields an error
// wrapping transform.ErrSingular.
func (c Camera) View() (transform.Transform, error) {
	v, err := transform.Inverse(c.ToWorld())
	if err != nil {
		return transform.Identity(), fmt.Errorf("camera: view from %v to %v: %w", c.Eye, c.Target, err)
	}
	return v, nil
}

// Projection maps view space to normalised device coordinates: X and Y in
// [-1, 1], depth Near..Far in [0, 1].
func (c Camera) Projection() transform.Transform {
	if c.Ortho {
		s := 2 / c.OrthoHeight
		return transform.Multiply(transform.Scale(s, s, 1), transform.Orthographic(c.Near, c.Far))
	}
	return transform.Perspective(c.FOV, c.Near, c.Far)
}

// ViewProjection returns Projection × View.
func (c Camera) ViewProjection() (transform.Transform, error) {
	v, err := c.View()
	if err != nil {
		return transform.Identity(), err
	}
	return transform.Multiply(c.Projection(), v), nil
}

// Raster maps NDC onto a size×size image with Y pointing down. Depth is
// left untouched.
func Raster(size int) transform.Transform {
	h := float32(size) / 2
	return transform.Multiply(transform.Translate(h, h, 0), transform.Scale(h, -h, 1))
}

// Orbit returns c with the eye rotated by angle radians about the vertical
// axis through Target.
func (c Camera) Orbit(angle float32) Camera {
	m := transform.Chain(
		transform.TranslateVec(c.Target),
		transform.Rotate(angle, transform.AxisY),
		transform.TranslateVec(mathutil.Scale3(c.Target, -1)))
	c.Eye = transform.Point(m, c.Eye)
	return c
}
