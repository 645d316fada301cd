// Package applog provides the optimizer's console progress logging.
package applog

import (
	"fmt"
	"io"
	"time"
)

// writer is the destination for log output. nil means os.Stdout via fmt.Println.
var writer io.Writer

// SetWriter sets the log output destination.
func SetWriter(w io.Writer) {
	writer = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if writer != nil {
		fmt.Fprintln(writer, msg)
	} else {
		fmt.Println(msg)
	}
}

// formatDuration formats a duration as e.g. "1h02m03s", or "2m03s" for
// durations under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// ObjectiveStats summarizes one objective column across a population, for
// the per-generation progress line.
type ObjectiveStats struct {
	Mean   float64
	StdDev float64
}

// Generation logs one NSGA-II generation's progress line, including an
// elapsed/ETA estimate derived from the average time per generation so far
// and mean/stddev summaries of the summer and winter objective columns.
func Generation(gen, totalGens int, front0Size int, bestSum float64, summer, winter ObjectiveStats, elapsed time.Duration) {
	avgPerGen := elapsed / time.Duration(gen+1)
	remaining := time.Duration(totalGens-gen-1) * avgPerGen
	Logf("Gen %d/%d: front0=%d best_sum=%.4f summer=%.2f±%.2f winter=%.2f±%.2f | elapsed: %s, ETA: %s",
		gen+1, totalGens, front0Size, bestSum,
		summer.Mean, summer.StdDev, winter.Mean, winter.StdDev,
		formatDuration(elapsed), formatDuration(remaining))
}
