package raster

import (
	"math"

	"github.com/condor86/CurveGrowthSystem/geom"
)

// Grid is the floor sun-hours grid (spec §3 "Floor grid"): an integer count
// of un-shadowed samples per cell, indexed [col][row].
type Grid struct {
	Cols, Rows int
	CellSize   float64
	Width      float64
	Height     float64
	Hours      [][]int
}

// newGrid allocates a zeroed grid covering width x height at the given cell
// size, with ceil(width/cellSize) x ceil(height/cellSize) cells.
func newGrid(width, height, cellSize float64) *Grid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}

	hours := make([][]int, cols)
	for c := range hours {
		hours[c] = make([]int, rows)
	}

	return &Grid{
		Cols:     cols,
		Rows:     rows,
		CellSize: cellSize,
		Width:    width,
		Height:   height,
		Hours:    hours,
	}
}

// CellCenter returns the world-space XY center of cell (col, row) at z=0.
func (g *Grid) CellCenter(col, row int) geom.Vec2 {
	return geom.Vec2{
		X: (float64(col) + 0.5) * g.CellSize,
		Y: (float64(row) + 0.5) * g.CellSize,
	}
}

// TotalHours sums the unshadowed sample count over every cell.
func (g *Grid) TotalHours() int {
	total := 0
	for _, col := range g.Hours {
		for _, h := range col {
			total += h
		}
	}
	return total
}

// AverageHours returns TotalHours() / (Cols*Rows), or 0 for an empty grid.
func (g *Grid) AverageHours() float64 {
	cells := g.Cols * g.Rows
	if cells == 0 {
		return 0
	}
	return float64(g.TotalHours()) / float64(cells)
}
