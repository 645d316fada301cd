package geom

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || math.Abs(got.Z-want.Z) > 1e-12 {
		t.Errorf("x cross y = %+v, want %+v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	if math.Abs(n.Len()-1.0) > 1e-9 {
		t.Errorf("normalized length = %f, want 1", n.Len())
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	v := Vec3{}
	n := v.Normalize()
	if n != v {
		t.Errorf("normalizing the zero vector should be a no-op, got %+v", n)
	}
}

func TestVec2Dist(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{3, 4}
	if got := a.Dist(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("dist = %f, want 5", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}
