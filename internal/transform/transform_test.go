package transform

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/math/f32"

	"xform-kernel/internal/mathutil"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

// randomTransforms returns finite transforms without negative zeros.
func randomTransforms(n int) []Transform {
	rng := rand.New(rand.NewSource(1))
	v := func() float32 { return rng.Float32()*20 - 10 }
	out := make([]Transform, n)
	for i := range out {
		out[i] = New(
			v(), v(), v(), v(),
			v(), v(), v(), v(),
			v(), v(), v(), v(),
			v(), v(), v(), v())
	}
	return out
}

func TestMultiplyIdentityExact(t *testing.T) {
	id := Identity()
	for i, a := range randomTransforms(50) {
		if got := Multiply(a, id); !Equal(got, a) {
			t.Fatalf("case %d: A*I = %v, want %v", i, got, a)
		}
		if got := Multiply(id, a); !Equal(got, a) {
			t.Fatalf("case %d: I*A = %v, want %v", i, got, a)
		}
	}
}

func TestTransposeTwiceExact(t *testing.T) {
	for i, a := range randomTransforms(50) {
		if got := Transpose(Transpose(a)); !Equal(got, a) {
			t.Fatalf("case %d: transpose twice changed matrix", i)
		}
	}
}

func TestTranspose(t *testing.T) {
	a := New(
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16)
	want := New(
		1, 5, 9, 13,
		2, 6, 10, 14,
		3, 7, 11, 15,
		4, 8, 12, 16)
	if got := Transpose(a); !Equal(got, want) {
		t.Errorf("Transpose = %v, want %v", got, want)
	}
}

func TestMultiplyAssociative(t *testing.T) {
	ts := []Transform{
		Rotate(0.3, f32.Vec3{1, 2, 3}),
		Translate(1, -2, 0.5),
		Scale(2, 0.5, 3),
		Perspective(1, 0.1, 100),
	}
	for i := range ts {
		for j := range ts {
			for k := range ts {
				a, b, c := ts[i], ts[j], ts[k]
				l := Multiply(Multiply(a, b), c)
				r := Multiply(a, Multiply(b, c))
				if d := cmp.Diff(l, r, cmpopts.EquateApprox(1e-5, 1e-5)); d != "" {
					t.Errorf("(%d,%d,%d) not associative (-left +right):\n%s", i, j, k, d)
				}
			}
		}
	}
}

func TestChain(t *testing.T) {
	a, b, c := Translate(1, 2, 3), Scale(2, 2, 2), Rotate(0.7, AxisY)
	if got, want := Chain(a, b, c), Multiply(Multiply(a, b), c); !Equal(got, want) {
		t.Errorf("Chain = %v, want %v", got, want)
	}
	if got := Chain(); !Equal(got, Identity()) {
		t.Errorf("empty Chain = %v, want identity", got)
	}
}

func TestScalePoint(t *testing.T) {
	got := Point(Scale(2, 3, 4), f32.Vec3{1, 1, 1})
	if want := (f32.Vec3{2, 3, 4}); got != want {
		t.Errorf("Point = %v, want %v", got, want)
	}
}

func TestTranslateAfterScale(t *testing.T) {
	m := Multiply(Translate(1, 2, 3), Scale(2, 2, 2))
	got := Point(m, f32.Vec3{1, 1, 1})
	if want := (f32.Vec3{3, 4, 5}); got != want {
		t.Errorf("Point = %v, want %v", got, want)
	}
}

func TestTranslatePointExact(t *testing.T) {
	points := []f32.Vec3{{0, 0, 0}, {1, 2, 3}, {-4, 0.5, 8}, {1024, -0.25, 3}}
	for _, p := range points {
		got := Point(Translate(3, -2, 0.75), p)
		want := f32.Vec3{p[0] + 3, p[1] - 2, p[2] + 0.75}
		if got != want {
			t.Errorf("Point(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestDirectionIgnoresTranslation(t *testing.T) {
	got := Direction(Translate(5, 6, 7), f32.Vec3{1, 2, 3})
	if want := (f32.Vec3{1, 2, 3}); got != want {
		t.Errorf("Direction = %v, want %v", got, want)
	}
}

func TestDirectionLinear(t *testing.T) {
	m := Chain(Translate(1, 2, 3), Rotate(0.4, f32.Vec3{1, 1, 0}), Scale(2, 3, 0.5))
	d1 := f32.Vec3{0.5, -1, 2}
	d2 := f32.Vec3{3, 0.25, -1.5}
	sum := Direction(m, mathutil.Add3(d1, d2))
	parts := mathutil.Add3(Direction(m, d1), Direction(m, d2))
	if d := cmp.Diff(sum, parts, approx); d != "" {
		t.Errorf("Direction not linear (-sum +parts):\n%s", d)
	}
}

func TestPointPerspectiveDivide(t *testing.T) {
	m := New(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 2)
	got := Point(m, f32.Vec3{2, 4, 6})
	if want := (f32.Vec3{1, 2, 3}); got != want {
		t.Errorf("Point = %v, want %v", got, want)
	}
}

func TestPointZeroWPropagates(t *testing.T) {
	p := Point(Perspective(1, 0.1, 10), f32.Vec3{1, 0, 0})
	if !math.IsInf(float64(p[0]), 1) {
		t.Errorf("x = %v, want +Inf", p[0])
	}
	if !math.IsNaN(float64(p[1])) {
		t.Errorf("y = %v, want NaN", p[1])
	}
}

func TestColumn(t *testing.T) {
	m := Multiply(Translate(7, 8, 9), Scale(2, 3, 4))
	tests := []struct {
		i    int
		want f32.Vec3
	}{
		{0, f32.Vec3{2, 0, 0}},
		{1, f32.Vec3{0, 3, 0}},
		{2, f32.Vec3{0, 0, 4}},
		{3, f32.Vec3{7, 8, 9}},
	}
	for _, tt := range tests {
		if got := Column(m, tt.i); got != tt.want {
			t.Errorf("Column(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestEqualIsBitwise(t *testing.T) {
	a := Identity()
	b := Identity()
	b.X[1] = float32(math.Copysign(0, -1))
	if Equal(a, b) {
		t.Error("+0 and -0 compared equal")
	}

	nan := float32(math.NaN())
	a.W[0], b.X[1] = nan, 0
	b.W[0] = nan
	if !Equal(a, b) {
		t.Error("identical NaN bits compared unequal")
	}

	if Equal(Translate(1, 0, 0), Translate(math.Nextafter32(1, 2), 0, 0)) {
		t.Error("one ulp apart compared equal")
	}
}

func TestIsAffine(t *testing.T) {
	if !Chain(Translate(1, 2, 3), Rotate(1, AxisZ)).IsAffine() {
		t.Error("translate*rotate not affine")
	}
	if Perspective(1, 1, 10).IsAffine() {
		t.Error("perspective reported affine")
	}
}

func TestDump(t *testing.T) {
	want := "m: 1.000000 0.000000 0.000000 2.000000\n" +
		"m: 0.000000 1.000000 0.000000 0.000000\n" +
		"m: 0.000000 0.000000 1.000000 0.000000\n" +
		"m: 0.000000 0.000000 0.000000 1.000000\n"
	if got := Translate(2, 0, 0).Dump("m"); got != want {
		t.Errorf("Dump =\n%s\nwant\n%s", got, want)
	}
}
