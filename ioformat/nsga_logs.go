package ioformat

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// formatRoundTrip renders a float64 in the shortest form that reparses to
// the same bit pattern, matching the spec's "G17 round-tripping" contract.
func formatRoundTrip(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SaveFront0 writes gen_<k>_front0.csv: header `f0,f1,...,g0,...,g_{L-1}`,
// one individual per line. The column count is fixed only at run time (it
// depends on the objective and gene vector lengths of the caller), which
// gocsv's compile-time struct-tag binding cannot express, so this uses
// encoding/csv directly.
func SaveFront0(path string, objectives [][]float64, genes [][]float64) error {
	if len(objectives) != len(genes) {
		return fmt.Errorf("ioformat: objectives and genes have different individual counts (%d vs %d)", len(objectives), len(genes))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioformat: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(objectives) > 0 {
		header := make([]string, 0, len(objectives[0])+len(genes[0]))
		for i := range objectives[0] {
			header = append(header, fmt.Sprintf("f%d", i))
		}
		for i := range genes[0] {
			header = append(header, fmt.Sprintf("g%d", i))
		}
		if err := w.Write(header); err != nil {
			return fmt.Errorf("ioformat: writing %s header: %w", path, err)
		}
	}

	for i := range objectives {
		row := make([]string, 0, len(objectives[i])+len(genes[i]))
		for _, v := range objectives[i] {
			row = append(row, formatRoundTrip(v))
		}
		for _, v := range genes[i] {
			row = append(row, formatRoundTrip(v))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("ioformat: writing %s row %d: %w", path, i, err)
		}
	}

	w.Flush()
	return w.Error()
}

// SaveBestGenes writes gen_<k>_bestGenes.csv: one line of L
// comma-separated doubles.
func SaveBestGenes(path string, genes []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioformat: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := make([]string, len(genes))
	for i, v := range genes {
		row[i] = formatRoundTrip(v)
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("ioformat: writing %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
