// Package ioformat implements the CSV input and output formats external
// collaborators use to feed starting points and repellers into the pipeline
// and to persist curves, light-hour grids, and per-generation NSGA-II logs.
package ioformat

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/condor86/CurveGrowthSystem/geom"
)

// point3Row is the single-column row shape used for output point lists
// (resultsCrv.csv): one bracketed `{x, y, z}` triple per line.
type point3Row struct {
	Point bracedVec3 `csv:"point"`
}

// bracedVec3 renders as `{x, y, z}` through gocsv's per-field TypeMarshaller
// hook, so resultsCrv.csv matches §6's bracketed point format exactly.
type bracedVec3 geom.Vec3

// MarshalCSV implements gocsv.TypeMarshaller.
func (v bracedVec3) MarshalCSV() (string, error) {
	return fmt.Sprintf("{%g, %g, %g}", v.X, v.Y, v.Z), nil
}

// LoadPoints reads a starting-positions or repellers file: one point per
// line, `{x, y, z}` with optional braces, z defaulting to 0 if absent.
// Rows have 2 or 3 columns, which rules out gocsv's fixed-struct binding;
// the brace stripping and ragged column count are handled directly with
// bufio.Scanner and strings.Split.
func LoadPoints(path string) ([]geom.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: opening %s: %w", path, err)
	}
	defer f.Close()

	var pts []geom.Vec3
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "{")
		line = strings.TrimSuffix(line, "}")
		fields := strings.Split(line, ",")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("ioformat: %s:%d: expected 2 or 3 comma-separated numbers, got %d", path, lineNo, len(fields))
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("ioformat: %s:%d: parsing x: %w", path, lineNo, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("ioformat: %s:%d: parsing y: %w", path, lineNo, err)
		}
		z := 0.0
		if len(fields) == 3 {
			z, err = strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("ioformat: %s:%d: parsing z: %w", path, lineNo, err)
			}
		}
		pts = append(pts, geom.Vec3{X: x, Y: y, Z: z})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading %s: %w", path, err)
	}
	return pts, nil
}

// LoadFactors reads one floating-point scalar per line.
func LoadFactors(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ioformat: opening %s: %w", path, err)
	}
	defer f.Close()

	var out []float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("ioformat: %s:%d: parsing factor: %w", path, lineNo, err)
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ioformat: reading %s: %w", path, err)
	}
	return out, nil
}

// SaveCurve writes resultsCrv.csv: one `{x, y, z}` per line, no trailing
// newline after the last point.
func SaveCurve(path string, pts []geom.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioformat: creating %s: %w", path, err)
	}
	defer f.Close()

	rows := make([]point3Row, len(pts))
	for i, p := range pts {
		rows[i] = point3Row{Point: bracedVec3(p)}
	}

	// The single column holds commas, so a tab delimiter keeps the CSV
	// writer from quoting it and each line stays the bare `{x, y, z}` text.
	var buf strings.Builder
	csvw := csv.NewWriter(&buf)
	csvw.Comma = '\t'
	if err := gocsv.MarshalCSVWithoutHeaders(rows, gocsv.NewSafeCSVWriter(csvw)); err != nil {
		return fmt.Errorf("ioformat: marshaling %s: %w", path, err)
	}
	csvw.Flush()
	if err := csvw.Error(); err != nil {
		return fmt.Errorf("ioformat: marshaling %s: %w", path, err)
	}
	content := strings.TrimSuffix(buf.String(), "\n")
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("ioformat: writing %s: %w", path, err)
	}
	return nil
}
