package raster

import (
	"math"
	"testing"

	"github.com/condor86/CurveGrowthSystem/geom"
)

// Scenario 4 (spec §8): a closed unit-ish square curtain extruded straight
// up, lit from sun vector (0,1,1)/sqrt(2). The strip facing away from the
// sun should shadow part of the floor behind it.
func TestRunWithSunVectorsClosedSquare(t *testing.T) {
	vertical := []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 100, Y: 0, Z: 0},
		{X: 100, Y: 100, Z: 0},
		{X: 0, Y: 100, Z: 0},
	}
	extruded := make([]geom.Vec3, len(vertical))
	for i, p := range vertical {
		extruded[i] = geom.Vec3{X: p.X, Y: p.Y, Z: 50}
	}

	r, err := New(vertical, extruded, 400, 400, 10, true)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sun := geom.Vec3{X: 0, Y: 1, Z: 1}
	grid := r.RunWithSunVectors([]geom.Vec3{sun})

	if grid.TotalHours() <= 0 {
		t.Fatalf("expected some unshadowed cells, total hours = %d", grid.TotalHours())
	}
	if grid.TotalHours() >= grid.Cols*grid.Rows {
		t.Fatalf("expected at least one shadowed cell behind the wall, all %d cells lit", grid.Cols*grid.Rows)
	}
}

// B2: a near-grazing sun vector (|d.z| < 1e-8) skips shadow projection but
// still counts as a sampled instant, so every cell's hour total increments.
func TestRunWithSunVectorsGrazingStillCounted(t *testing.T) {
	vertical := []geom.Vec3{{X: 0}, {X: 100}}
	extruded := []geom.Vec3{{X: 0, Z: 50}, {X: 100, Z: 50}}

	r, err := New(vertical, extruded, 200, 200, 50, false)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	grazing := geom.Vec3{X: 1, Y: 0, Z: 1e-10}
	grid := r.RunWithSunVectors([]geom.Vec3{grazing})

	for col := 0; col < grid.Cols; col++ {
		for row := 0; row < grid.Rows; row++ {
			if grid.Hours[col][row] != 1 {
				t.Fatalf("cell (%d,%d) hours = %d, want 1 (grazing sample must still count)", col, row, grid.Hours[col][row])
			}
		}
	}
}

// P4: every cell's hour count is bounded by the number of sun vectors sampled.
func TestRunWithSunVectorsHoursBounded(t *testing.T) {
	vertical := []geom.Vec3{{X: 0}, {X: 50}, {X: 100}}
	extruded := []geom.Vec3{{X: 0, Z: 30}, {X: 50, Z: 30}, {X: 100, Z: 30}}

	r, err := New(vertical, extruded, 150, 150, 25, false)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	vecs := []geom.Vec3{
		{X: 0, Y: 0.3, Z: 1},
		{X: 0.2, Y: 0.1, Z: 1},
		{X: -0.1, Y: 0.4, Z: 1},
	}
	grid := r.RunWithSunVectors(vecs)

	for col := 0; col < grid.Cols; col++ {
		for row := 0; row < grid.Rows; row++ {
			if grid.Hours[col][row] > len(vecs) {
				t.Fatalf("cell (%d,%d) hours = %d exceeds sample count %d", col, row, grid.Hours[col][row], len(vecs))
			}
		}
	}
}

func TestNewRejectsMismatchedLengths(t *testing.T) {
	vertical := []geom.Vec3{{X: 0}, {X: 10}, {X: 20}}
	extruded := []geom.Vec3{{X: 0, Z: 10}, {X: 10, Z: 10}}

	_, err := New(vertical, extruded, 100, 100, 10, true)
	if err == nil {
		t.Fatal("expected an error for mismatched curve lengths, got nil")
	}
}

func TestRunWithSunVectorsEmptyIsNoOp(t *testing.T) {
	vertical := []geom.Vec3{{X: 0}, {X: 10}}
	extruded := []geom.Vec3{{X: 0, Z: 10}, {X: 10, Z: 10}}

	r, err := New(vertical, extruded, 100, 100, 10, false)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	grid := r.RunWithSunVectors(nil)
	if grid.TotalHours() != 0 {
		t.Errorf("expected zero total hours for empty sun vector list, got %d", grid.TotalHours())
	}
}

func TestPointInQuadSameSide(t *testing.T) {
	quad := [4]geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if !pointInQuad(quad, geom.Vec2{X: 5, Y: 5}) {
		t.Error("center point should be inside quad")
	}
	if pointInQuad(quad, geom.Vec2{X: 50, Y: 50}) {
		t.Error("far point should be outside quad")
	}
}

func TestProjectToFloor(t *testing.T) {
	p := geom.Vec3{X: 10, Y: 20, Z: 30}
	d := geom.Vec3{X: 0, Y: 0, Z: -1}
	out := projectToFloor(p, d)
	if math.Abs(out.X-10) > 1e-9 || math.Abs(out.Y-20) > 1e-9 {
		t.Errorf("straight-down projection changed XY: got %+v", out)
	}
}
