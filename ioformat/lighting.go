package ioformat

import (
	"bufio"
	"fmt"
	"os"

	"github.com/condor86/CurveGrowthSystem/raster"
)

// SaveLightingGrid writes a resultsLighting[_summer|_winter].csv: alternating
// lines of a coordinate `{x, y, 0.0}` followed by its integer hours value,
// row-major over (row, col). This alternating-record shape has no fixed
// column count gocsv's struct binding can express, so it is written line by
// line with bufio directly.
func SaveLightingGrid(path string, grid *raster.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioformat: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			center := grid.CellCenter(col, row)
			fmt.Fprintf(w, "{%g, %g, 0.0}\n", center.X, center.Y)
			fmt.Fprintf(w, "%d\n", grid.Hours[col][row])
		}
	}
	return w.Flush()
}
