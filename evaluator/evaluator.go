// Package evaluator wires the gene vector NSGA-II searches over to the
// deterministic geometry pipeline: growth engine -> vertical-plane curve ->
// per-vertex offsets -> rasterizer, reducing a candidate to the two
// minimization-oriented daylighting objectives.
package evaluator

import (
	"fmt"
	"math"

	"github.com/condor86/CurveGrowthSystem/config"
	"github.com/condor86/CurveGrowthSystem/geom"
	"github.com/condor86/CurveGrowthSystem/growth"
	"github.com/condor86/CurveGrowthSystem/raster"
	"github.com/condor86/CurveGrowthSystem/solar"
)

// Evaluator holds everything shared, read-only, across every candidate
// evaluation: the starting curve, repellers, growth/room/tile parameters,
// and the precomputed summer/winter sun-vector sets.
type Evaluator struct {
	initial []geom.Vec3
	repellerPositions []geom.Vec3

	numRepellerFactors int
	numOffsets         int

	growthParams growth.Params
	room         config.RoomConfig

	summerVectors []geom.Vec3
	winterVectors []geom.Vec3
}

// New constructs an Evaluator from the loaded configuration, the starting
// point set, and the repeller positions (factors live in the gene vector
// and are not fixed here).
func New(cfg *config.Config, initial, repellerPositions []geom.Vec3) (*Evaluator, error) {
	if len(initial) < 2 {
		return nil, fmt.Errorf("evaluator: need at least 2 starting points, got %d", len(initial))
	}

	up := geom.Vec3{X: 0, Y: 0, Z: 1}
	north := geom.Vec3{X: 0, Y: 1, Z: 0}

	summer := solar.SampleSunVectors(solar.SampleConfig{
		Site: solar.Site{
			LatitudeDeg:   cfg.Site.LatitudeDeg,
			LongitudeDeg:  cfg.Site.LongitudeDeg,
			TZOffsetHours: cfg.Site.TZOffsetHours,
		},
		Window: solar.SampleWindow{
			Date:          cfg.Derived.SummerDate,
			StartHour:     cfg.Sample.StartHour,
			EndHour:       cfg.Sample.EndHour,
			IntervalHours: cfg.Sample.IntervalHours,
		},
		Up: up, North: north,
		ApplyRefraction: cfg.Sample.ApplyRefraction,
		MinElevationDeg: cfg.Sample.MinElevationDeg,
	})
	winter := solar.SampleSunVectors(solar.SampleConfig{
		Site: solar.Site{
			LatitudeDeg:   cfg.Site.LatitudeDeg,
			LongitudeDeg:  cfg.Site.LongitudeDeg,
			TZOffsetHours: cfg.Site.TZOffsetHours,
		},
		Window: solar.SampleWindow{
			Date:          cfg.Derived.WinterDate,
			StartHour:     cfg.Sample.StartHour,
			EndHour:       cfg.Sample.EndHour,
			IntervalHours: cfg.Sample.IntervalHours,
		},
		Up: up, North: north,
		ApplyRefraction: cfg.Sample.ApplyRefraction,
		MinElevationDeg: cfg.Sample.MinElevationDeg,
	})

	return &Evaluator{
		initial:            initial,
		repellerPositions:  repellerPositions,
		numRepellerFactors: cfg.Genes.NumRepellerFactors,
		numOffsets:         cfg.Genes.NumOffsets,
		growthParams: growth.Params{
			MaxPoints:     cfg.Growth.MaxPoints,
			MaxIters:      cfg.Growth.MaxIters,
			BaseDist:      cfg.Growth.BaseDist,
			TileWidth:     cfg.Tile.Width,
			TileHeight:    cfg.Tile.Height,
			MaxFactor:     cfg.Growth.MaxFactor,
			MaxEffectDist: cfg.Growth.MaxEffectDist,
			Closed:        cfg.Growth.Closed,
		},
		room:          cfg.Room,
		summerVectors: summer,
		winterVectors: winter,
	}, nil
}

// Evaluate runs the full pipeline for one gene vector and returns
// (summer_hours, -winter_hours): both minimization-oriented per spec §4.6.
func (e *Evaluator) Evaluate(genes []float64) []float64 {
	r, _, err := e.buildRasterizer(genes)
	if err != nil {
		// Construction only fails on a length mismatch between vertical and
		// extruded, which cannot happen here: both are built from the same
		// planar slice below. A borderline geometry must still return a
		// legal objective vector (spec §7), so fall back to the worst case:
		// every cell lit in every summer sample, none in winter.
		cells := math.Ceil(e.room.Width/e.room.CellSize) * math.Ceil(e.room.Height/e.room.CellSize)
		return []float64{cells * float64(len(e.summerVectors)), 0}
	}

	summerHours := float64(r.RunWithSunVectors(e.summerVectors).TotalHours())
	winterHours := float64(r.RunWithSunVectors(e.winterVectors).TotalHours())

	return []float64{summerHours, -winterHours}
}

// Rebuild reconstructs one candidate's vertical curve and both seasonal
// light-hour grids, for reporting the winning individual after the search
// completes.
func (e *Evaluator) Rebuild(genes []float64) ([]geom.Vec3, *raster.Grid, *raster.Grid, error) {
	r, vertical, err := e.buildRasterizer(genes)
	if err != nil {
		return nil, nil, nil, err
	}
	summerGrid := r.RunWithSunVectors(e.summerVectors)
	winterGrid := r.RunWithSunVectors(e.winterVectors)
	return vertical, summerGrid, winterGrid, nil
}

// buildRasterizer runs the growth engine and vertical-plane/offset mapping
// for one gene vector and constructs the rasterizer over the result.
func (e *Evaluator) buildRasterizer(genes []float64) (*raster.Rasterizer, []geom.Vec3, error) {
	factors := genes[:e.numRepellerFactors]
	offsets := genes[e.numRepellerFactors : e.numRepellerFactors+e.numOffsets]

	rep := growth.Repellers{
		Positions: e.repellerPositions,
		Factors:   factors,
	}
	planar := growth.Grow(e.initial, rep, e.growthParams)

	n := len(planar)
	vertical := make([]geom.Vec3, n)
	extruded := make([]geom.Vec3, n)
	for i, p := range planar {
		// Reinterpret XY as XZ: the planar growth curve becomes the
		// vertical-plane curve (y = 0).
		v := geom.Vec3{X: p.X, Y: 0, Z: p.Y}
		vertical[i] = v

		e2 := v
		if i < len(offsets) {
			e2.Y -= offsets[i]
		}
		extruded[i] = e2
	}

	r, err := raster.New(vertical, extruded, e.room.Width, e.room.Height, e.room.CellSize, e.growthParams.Closed)
	return r, vertical, err
}

// GeneLength returns the fixed gene vector length this evaluator expects.
func (e *Evaluator) GeneLength() int {
	return e.numRepellerFactors + e.numOffsets
}
