package vectors

import (
	"math"
	"math/rand/v2"
	"testing"
)

const tolerance = 1e-9

func vecClose(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < tolerance &&
		math.Abs(a.Y-b.Y) < tolerance &&
		math.Abs(a.Z-b.Z) < tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, -5, 6)

	if got := a.Add(b); got != New(5, -3, 9) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != New(-3, 7, -3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != New(2, 4, 6) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Neg(); got != New(-1, -2, -3) {
		t.Errorf("Neg = %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot = %v, want 12", got)
	}
	if got := New(1, 0, 0).Cross(New(0, 1, 0)); got != New(0, 0, 1) {
		t.Errorf("Cross = %v, want +Z", got)
	}
	if got := Distance(New(0, 0, 0), New(3, 4, 0)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestVec3_ArrayRoundTrip(t *testing.T) {
	v := New(0.5, -2, 7)
	if got := FromArray(v.Array()); got != v {
		t.Errorf("FromArray(Array()) = %v, want %v", got, v)
	}
}

func TestNewRay_UnitDirection(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		dir := New(rng.NormFloat64()*10, rng.NormFloat64()*10, rng.NormFloat64()*10)
		if dir.IsZero() {
			continue
		}
		ray := NewRay(New(1, 2, 3), dir)
		if n := ray.Direction.Norm(); math.Abs(n-1) > tolerance {
			t.Fatalf("|direction| = %v for input %v, want 1", n, dir)
		}
	}
}

func TestNewRayPreserve_KeepsMagnitude(t *testing.T) {
	ray := NewRayPreserve(Vec3{}, New(0, 3, 4))
	if n := ray.Direction.Norm(); n != 5 {
		t.Errorf("|direction| = %v, want 5", n)
	}
}

func TestRay_At(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		t    float64
		want Vec3
	}{
		{"origin at t=0", NewRay(New(1, 2, 3), New(1, 0, 0)), 0, New(1, 2, 3)},
		{"unit step", NewRay(New(1, 2, 3), New(0, 0, 5)), 2, New(1, 2, 5)},
		{"preserved direction scales", NewRayPreserve(Vec3{}, New(2, 3, 4)), 2, New(4, 6, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ray.At(tt.t); !vecClose(got, tt.want) {
				t.Errorf("At(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestRay_Degenerate(t *testing.T) {
	if !NewRay(Vec3{}, Vec3{}).Degenerate() {
		t.Error("zero direction should be degenerate")
	}
	if !NewRayPreserve(Vec3{}, New(math.NaN(), 0, 0)).Degenerate() {
		t.Error("NaN direction should be degenerate")
	}
	if NewRay(Vec3{}, New(0, 1, 0)).Degenerate() {
		t.Error("unit direction should not be degenerate")
	}
}
