package solar

import (
	"time"

	"github.com/condor86/CurveGrowthSystem/geom"
)

// SampleWindow describes one day's sampling window: local start/end clock
// hours and the interval between samples, both in hours.
type SampleWindow struct {
	Date          time.Time // year/month/day only; time-of-day is ignored
	StartHour     float64
	EndHour       float64
	IntervalHours float64
}

// SampleConfig bundles everything SampleSunVectors needs: the site, the
// sampling window, the scene basis, and the elevation cutoff below which an
// instant contributes no direct sun (spec §4.3 "sampling contract").
type SampleConfig struct {
	Site            Site
	Window          SampleWindow
	Up, North       geom.Vec3
	ApplyRefraction bool
	MinElevationDeg float64 // default 0
}

// SampleSunVectors precomputes the unit sun-direction vectors for every
// sampled instant in the window whose elevation clears MinElevationDeg.
// Instants at or below the threshold are dropped entirely rather than kept
// as zero contributions, so len(result) is the rasterizer's per-cell
// maximum possible hour count for this window (spec §3 invariant P4).
func SampleSunVectors(cfg SampleConfig) []geom.Vec3 {
	var out []geom.Vec3
	if cfg.Window.IntervalHours <= 0 {
		return out
	}

	y, m, d := cfg.Window.Date.Date()
	for h := cfg.Window.StartHour; h <= cfg.Window.EndHour+1e-9; h += cfg.Window.IntervalHours {
		local := dateWithHour(y, m, d, h)
		pos := At(local, cfg.Site, cfg.ApplyRefraction)

		elev := pos.GeometricElevDeg
		if cfg.ApplyRefraction {
			elev = pos.ApparentElevDeg
		}
		if elev <= cfg.MinElevationDeg {
			continue
		}

		out = append(out, DirectionToSun(elev, pos.AzimuthDeg, cfg.Up, cfg.North))
	}
	return out
}

// dateWithHour builds a time.Time for the given date at fractional local
// hour h (which may exceed 24 or be non-integer; time.Date normalizes it).
func dateWithHour(y int, m time.Month, d int, h float64) time.Time {
	wholeHour := int(h)
	minute := (h - float64(wholeHour)) * 60
	wholeMinute := int(minute)
	second := (minute - float64(wholeMinute)) * 60
	return time.Date(y, m, d, wholeHour, wholeMinute, int(second), 0, time.UTC)
}
