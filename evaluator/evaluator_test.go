package evaluator

import (
	"math"
	"testing"

	"github.com/condor86/CurveGrowthSystem/config"
	"github.com/condor86/CurveGrowthSystem/geom"
)

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load(\"\") returned error: %v", err)
	}
	// Keep the pipeline cheap for tests.
	cfg.Growth.MaxPoints = 12
	cfg.Growth.MaxIters = 5
	cfg.Genes.NumOffsets = 12
	return cfg
}

func octagonStart() []geom.Vec3 {
	pts := make([]geom.Vec3, 8)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / 8
		pts[i] = geom.Vec3{X: 200 * math.Cos(angle), Y: 200 * math.Sin(angle)}
	}
	return pts
}

func TestEvaluateReturnsTwoObjectives(t *testing.T) {
	cfg := testConfig(t)
	ev, err := New(cfg, octagonStart(), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	genes := make([]float64, ev.GeneLength())
	for i := range genes[:cfg.Genes.NumRepellerFactors] {
		genes[i] = 1.0
	}
	for i := cfg.Genes.NumRepellerFactors; i < len(genes); i++ {
		genes[i] = 10.0
	}

	obj := ev.Evaluate(genes)
	if len(obj) != 2 {
		t.Fatalf("Evaluate returned %d objectives, want 2", len(obj))
	}
	if obj[0] < 0 {
		t.Errorf("summer_hours objective = %v, want >= 0", obj[0])
	}
	if obj[1] > 0 {
		t.Errorf("-winter_hours objective = %v, want <= 0", obj[1])
	}
}

func TestEvaluateRejectsTooFewStartingPoints(t *testing.T) {
	cfg := testConfig(t)
	if _, err := New(cfg, []geom.Vec3{{X: 0}}, nil); err == nil {
		t.Fatal("expected an error for a single starting point")
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	cfg := testConfig(t)
	ev, err := New(cfg, octagonStart(), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	genes := make([]float64, ev.GeneLength())
	for i := range genes {
		genes[i] = 5.0
	}

	a := ev.Evaluate(genes)
	b := ev.Evaluate(genes)
	if a[0] != b[0] || a[1] != b[1] {
		t.Errorf("Evaluate is not deterministic for identical genes: %v vs %v", a, b)
	}
}
