package growth

import (
	"math"
	"testing"

	"github.com/condor86/CurveGrowthSystem/geom"
)

func baseParams() Params {
	p := DefaultParams()
	p.MaxPoints = 10
	p.MaxIters = 1
	p.Closed = false
	return p
}

// Scenario 1 (spec §8): three collinear points, zero repellers, one
// iteration. No insertions; collisions occur; centroid is preserved.
func TestGrowthSingleIterationCollinear(t *testing.T) {
	initial := []geom.Vec3{{X: 0}, {X: 10}, {X: 20}}
	params := baseParams()

	before := centroidX(initial)
	out := Grow(initial, Repellers{}, params)

	if len(out) != 3 {
		t.Fatalf("expected no insertions (edges well under threshold), got %d points", len(out))
	}

	after := centroidX(out)
	if math.Abs(after-before) > 1e-6 {
		t.Errorf("centroid x moved from %v to %v, want preserved within 1e-6", before, after)
	}
}

// Scenario 2 (spec §8): two points 300 apart, zero repellers, baseDist=75.
// One iteration should insert a midpoint near (150,0,0) since the edge
// exceeds 0.5*75*2-1 = 74.
func TestGrowthInsertsMidpoint(t *testing.T) {
	initial := []geom.Vec3{{X: 0}, {X: 300}}
	params := baseParams()

	out := Grow(initial, Repellers{}, params)
	if len(out) != 3 {
		t.Fatalf("expected exactly one inserted midpoint, got %d points: %+v", len(out), out)
	}

	mid := out[1]
	if math.Abs(mid.X-150) > 1 || math.Abs(mid.Y) > 1e-9 {
		t.Errorf("expected midpoint near (150,0,0), got %+v", mid)
	}
}

// R2: maxIters=0 returns the input unchanged.
func TestGrowthZeroItersNoOp(t *testing.T) {
	initial := []geom.Vec3{{X: 0}, {X: 10}, {X: 20}}
	params := DefaultParams()
	params.MaxIters = 0

	out := Grow(initial, Repellers{}, params)
	if len(out) != len(initial) {
		t.Fatalf("expected unchanged length, got %d", len(out))
	}
	for i := range initial {
		if out[i] != initial[i] {
			t.Errorf("point %d changed: %+v -> %+v", i, initial[i], out[i])
		}
	}
}

// P1: |C| <= maxPoints always holds, even with many iterations of a tight
// ring of points that want to subdivide repeatedly.
func TestGrowthRespectsMaxPoints(t *testing.T) {
	initial := ring(8, 200)
	params := DefaultParams()
	params.MaxPoints = 50
	params.MaxIters = 30

	out := Grow(initial, Repellers{}, params)
	if len(out) > params.MaxPoints {
		t.Fatalf("|C|=%d exceeds maxPoints=%d", len(out), params.MaxPoints)
	}
}

// P2: after insertion, no two consecutive points are equal.
func TestGrowthNoDuplicateConsecutivePoints(t *testing.T) {
	initial := ring(6, 150)
	params := DefaultParams()
	params.MaxPoints = 60
	params.MaxIters = 20

	out := Grow(initial, Repellers{}, params)
	for i := range out {
		j := (i + 1) % len(out)
		if out[i] == out[j] {
			t.Errorf("consecutive points %d and %d are equal: %+v", i, j, out[i])
		}
	}
}

// B1: with zero repellers, density is exactly 1, so the insertion threshold
// collapses to baseDist - 1.
func TestDensityDefaultsToOneWithNoRepellers(t *testing.T) {
	params := DefaultParams()
	got := density(geom.Vec3{X: 500, Y: 500}, Repellers{}, params)
	if got != 1 {
		t.Errorf("density with no repellers = %v, want 1", got)
	}
}

func TestDensityIncreasesNearRepeller(t *testing.T) {
	params := DefaultParams()
	rep := Repellers{
		Positions: []geom.Vec3{{X: 0, Y: 0}},
		Factors:   []float64{1.0},
	}
	near := density(geom.Vec3{X: 10, Y: 0}, rep, params)
	far := density(geom.Vec3{X: 1000, Y: 1000}, rep, params)

	if near <= 1 {
		t.Errorf("density near repeller = %v, want > 1", near)
	}
	if far != 1 {
		t.Errorf("density far from repeller = %v, want exactly 1", far)
	}
	if near > params.MaxFactor {
		t.Errorf("density %v exceeds maxFactor %v", near, params.MaxFactor)
	}
}

func TestFactorClampedFallback(t *testing.T) {
	rep := Repellers{Factors: []float64{0.2, 0.8}}
	if got := rep.factorFor(0); got != 0.2 {
		t.Errorf("factorFor(0) = %v, want 0.2", got)
	}
	if got := rep.factorFor(5); got != 0.8 {
		t.Errorf("factorFor(5) = %v, want clamped to last entry 0.8", got)
	}
}

// P3: every mirror index's original index is in range.
func TestMirrorOrigInRange(t *testing.T) {
	c := ring(10, 100)
	mx, my, origOf := buildMirrors(c, 1000, 1000)
	if len(mx) != len(c)*9 || len(my) != len(mx) || len(origOf) != len(mx) {
		t.Fatalf("mirror arrays have inconsistent lengths")
	}
	for _, o := range origOf {
		if o < 0 || o >= len(c) {
			t.Errorf("orig index %d out of range [0,%d)", o, len(c))
		}
	}
}

func centroidX(pts []geom.Vec3) float64 {
	sum := 0.0
	for _, p := range pts {
		sum += p.X
	}
	return sum / float64(len(pts))
}

func ring(n int, radius float64) []geom.Vec3 {
	pts := make([]geom.Vec3, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Vec3{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return pts
}
