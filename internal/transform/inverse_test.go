package transform

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/math/f32"
)

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
	}{
		{"identity", Identity()},
		{"translate", Translate(3, -4, 5)},
		{"scale", Scale(2, 0.5, 8)},
		{"tiny scale", Scale(1e-3, 1e-3, 1e-3)},
		{"rigid", Chain(Translate(1, 2, 3), Rotate(0.7, f32.Vec3{1, -1, 2}))},
		{"trs", Chain(Translate(-2, 0, 9), EulerXYZ(f32.Vec3{0.1, 0.2, 0.3}), Scale(3, 1, 0.25))},
		{"perspective", Perspective(1.2, 0.1, 100)},
		{"camera", Multiply(Perspective(0.8, 1, 20), Translate(0, 0, 5))},
		{"large translation", Translate(1e6, -2e6, 5e5)},
		{"orthographic", Orthographic(0.5, 10)},
		{"general", New(
			2, 0, 1, 3,
			1, 3, 0, 1,
			0, 1, 4, 2,
			1, 0, 2, 5)},
	}
	tol := cmpopts.EquateApprox(0, 1e-5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Inverse(tt.m)
			if err != nil {
				t.Fatalf("Inverse: %v", err)
			}
			if d := cmp.Diff(Identity(), Multiply(tt.m, inv), tol); d != "" {
				t.Errorf("A*inv(A) (-want +got):\n%s", d)
			}
			if d := cmp.Diff(Identity(), Multiply(inv, tt.m), tol); d != "" {
				t.Errorf("inv(A)*A (-want +got):\n%s", d)
			}
		})
	}
}

// A large view translation grows the matrix entries but not its
// determinant; the inverse must still be found.
func TestInverseDistantCamera(t *testing.T) {
	proj := Perspective(0.8, 0.1, 100)
	projInv := MustInverse(proj)
	for _, d := range []float32{100, 1000, 5000} {
		inv, err := Inverse(Multiply(proj, Translate(0, 0, d)))
		if err != nil {
			t.Fatalf("d=%g: %v", d, err)
		}
		want := Multiply(Translate(0, 0, -d), projInv)
		if diff := cmp.Diff(want, inv, cmpopts.EquateApprox(1e-4, 1e-4)); diff != "" {
			t.Errorf("d=%g (-want +got):\n%s", d, diff)
		}
	}
}

func TestInverseAffineStaysAffine(t *testing.T) {
	m := Chain(Translate(4, 5, 6), Rotate(1.3, AxisY), Scale(2, 2, 2))
	inv, err := Inverse(m)
	if err != nil {
		t.Fatal(err)
	}
	if !inv.IsAffine() {
		t.Errorf("W row = %v, want exact (0,0,0,1)", inv.W)
	}
	p := f32.Vec3{1, -2, 3}
	if d := cmp.Diff(p, Point(inv, Point(m, p)), approx); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
}

func TestInverseTranslateExact(t *testing.T) {
	inv, err := Inverse(Translate(1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if want := Translate(-1, -2, -3); !Equal(inv, want) {
		t.Errorf("Inverse = %v, want %v", inv, want)
	}
}

func TestInverseSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
	}{
		{"zero scale", Scale(0, 1, 1)},
		{"flattened", Multiply(Translate(1, 1, 1), Scale(1, 1, 0))},
		{"zero", Transform{}},
		{"repeated rows", New(
			1, 2, 3, 4,
			1, 2, 3, 4,
			0, 1, 0, 1,
			1, 0, 0, 2)},
		{"near parallel rows", New(
			1, 0, 0, 0,
			1, 1e-13, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Inverse(tt.m)
			if !errors.Is(err, ErrSingular) {
				t.Fatalf("err = %v, want ErrSingular", err)
			}
			if !Equal(inv, Identity()) {
				t.Errorf("result = %v, want identity", inv)
			}
		})
	}
}

func TestMustInversePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustInverse did not panic")
		}
	}()
	MustInverse(Scale(0, 0, 0))
}
