// Package raster implements the solar-shadow rasterizer ("lighting
// simulator"): it projects each extruded quad strip of a curtain curve onto
// the floor along a sun direction and accumulates per-cell un-shadowed
// sample counts.
package raster

import (
	"fmt"
	"math"

	"github.com/condor86/CurveGrowthSystem/geom"
)

// grazingEps is the near-grazing sun-direction tolerance (spec §5, 1e-8).
const grazingEps = 1e-8

// Rasterizer holds one candidate's geometry: a vertical-plane curve and its
// matching extruded curve, over a room footprint sampled on a grid.
type Rasterizer struct {
	vertical []geom.Vec3
	extruded []geom.Vec3
	closed   bool

	width, height, cellSize float64
}

// New constructs a Rasterizer. It rejects curves of unequal length, per
// spec §7 ("shape mismatches at construction").
func New(vertical, extruded []geom.Vec3, width, height, cellSize float64, closed bool) (*Rasterizer, error) {
	if len(vertical) != len(extruded) {
		return nil, fmt.Errorf("raster: vertical curve has %d points but extruded curve has %d", len(vertical), len(extruded))
	}
	return &Rasterizer{
		vertical: vertical,
		extruded: extruded,
		closed:   closed,
		width:    width,
		height:   height,
		cellSize: cellSize,
	}, nil
}

// RunWithSunVectors accumulates one Grid's worth of un-shadowed sample
// counts across every sun vector in vecs. It is a no-op (returns an
// all-zero grid) on empty input.
func (r *Rasterizer) RunWithSunVectors(vecs []geom.Vec3) *Grid {
	grid := newGrid(r.width, r.height, r.cellSize)
	if len(vecs) == 0 {
		return grid
	}

	shadow := make([][]bool, grid.Cols)
	for c := range shadow {
		shadow[c] = make([]bool, grid.Rows)
	}

	for _, v := range vecs {
		for _, row := range shadow {
			for i := range row {
				row[i] = false
			}
		}

		d := v.Normalize().Neg()
		if math.Abs(d.Z) >= grazingEps {
			r.markShadow(shadow, grid, d)
		}

		for col := 0; col < grid.Cols; col++ {
			for row := 0; row < grid.Rows; row++ {
				if !shadow[col][row] {
					grid.Hours[col][row]++
				}
			}
		}
	}

	return grid
}

// markShadow rasterizes every segment's quad strip into shadow for one sun
// direction d (spec §4.4 steps 3-4).
func (r *Rasterizer) markShadow(shadow [][]bool, grid *Grid, d geom.Vec3) {
	n := len(r.vertical)
	segments := n - 1
	if r.closed {
		segments = n
	}

	for i := 0; i < segments; i++ {
		j := (i + 1) % n

		quad := [4]geom.Vec2{
			projectToFloor(r.vertical[i], d),
			projectToFloor(r.vertical[j], d),
			projectToFloor(r.extruded[j], d),
			projectToFloor(r.extruded[i], d),
		}

		minX, maxX, minY, maxY := quadBounds(quad)
		colLo := clampInt(int(math.Floor(minX/grid.CellSize)), 0, grid.Cols-1)
		colHi := clampInt(int(math.Floor(maxX/grid.CellSize)), 0, grid.Cols-1)
		rowLo := clampInt(int(math.Floor(minY/grid.CellSize)), 0, grid.Rows-1)
		rowHi := clampInt(int(math.Floor(maxY/grid.CellSize)), 0, grid.Rows-1)

		for col := colLo; col <= colHi; col++ {
			for row := rowLo; row <= rowHi; row++ {
				center := grid.CellCenter(col, row)
				if pointInQuad(quad, center) {
					shadow[col][row] = true
				}
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
