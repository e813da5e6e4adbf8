package noise

import (
	"testing"

	"xform-kernel/internal/hash"
)

func TestValueAtLattice(t *testing.T) {
	for _, c := range [][2]int32{{0, 0}, {3, -2}, {-7, 11}} {
		got := Value(float32(c[0]), float32(c[1]), 5)
		want := hash.Int2DFloat(hash.Int2D(5, uint32(c[0])), uint32(c[1]))
		if got != want {
			t.Errorf("Value(%v) = %v, want lattice value %v", c, got, want)
		}
	}
}

func TestValueRangeAndDeterminism(t *testing.T) {
	for i := 0; i < 2000; i++ {
		x := float32(i)*0.37 - 300
		y := float32(i)*0.11 + 17
		v := Value(x, y, 9)
		if v < 0 || v >= 1 {
			t.Fatalf("Value(%v, %v) = %v, outside [0, 1)", x, y, v)
		}
		if v != Value(x, y, 9) {
			t.Fatalf("Value(%v, %v) not deterministic", x, y)
		}
	}
}

func TestValueContinuous(t *testing.T) {
	const eps = 1e-3
	for i := 0; i < 500; i++ {
		x := float32(i) * 0.173
		a, b := Value(x, 2.5, 1), Value(x+eps, 2.5, 1)
		if d := a - b; d > 0.01 || d < -0.01 {
			t.Fatalf("jump of %v at x=%v", d, x)
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	same := 0
	for i := 0; i < 100; i++ {
		if Value(float32(i), 0, 1) == Value(float32(i), 0, 2) {
			same++
		}
	}
	if same > 2 {
		t.Errorf("%d of 100 lattice values equal across seeds", same)
	}
}

func TestFBMRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		v := FBM(float32(i)*0.21, float32(i)*0.07, 5, 3)
		if v < 0 || v >= 1 {
			t.Fatalf("FBM = %v, outside [0, 1)", v)
		}
	}
	if FBM(1.5, 2.5, 0, 3) != FBM(1.5, 2.5, 1, 3) {
		t.Error("zero octaves should behave like one")
	}
}

func TestTexture(t *testing.T) {
	img := Texture(16, 4, 1)
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("bounds = %v", b)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("alpha at %d = %d", i, img.Pix[i])
		}
	}
}
