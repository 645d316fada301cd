// Package solar implements the NOAA low-order solar position formulas used
// to turn a site, a date and a local wall-clock time into a sun direction.
package solar

import (
	"math"
	"time"

	"github.com/condor86/CurveGrowthSystem/geom"
)

// Position is the full solar geometry for one instant, mirroring the
// contract in spec §4.3.
type Position struct {
	GeometricElevDeg float64
	ApparentElevDeg  float64
	AzimuthDeg       float64 // from north, clockwise
	DeclinationDeg   float64
	HourAngleDeg     float64
	EOTMinutes       float64
	SolarNoonMinutes float64 // minutes after local midnight
}

// Site describes the fixed location and civil-time convention used to
// evaluate a solar position. TZOffsetHours has no DST adjustment (§4.3).
type Site struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	TZOffsetHours float64
}

// At computes the solar position for the given local civil time.
// applyRefraction controls whether ApparentElevDeg includes the NOAA
// atmospheric refraction correction.
func At(local time.Time, site Site, applyRefraction bool) Position {
	dayFraction := hoursOfDay(local)
	dayOfYear := float64(local.YearDay())

	gamma := fractionalYear(dayOfYear, dayFraction, daysInYear(local))
	eot := equationOfTimeMinutes(gamma)
	decl := declinationRad(gamma)

	timeOffset := eot + 4*site.LongitudeDeg - 60*site.TZOffsetHours
	tst := dayFraction*60 + timeOffset // true solar time, minutes
	hourAngleDeg := tst/4 - 180

	latRad := degToRad(site.LatitudeDeg)
	hourAngleRad := degToRad(hourAngleDeg)

	cosZenith := math.Sin(latRad)*math.Sin(decl) + math.Cos(latRad)*math.Cos(decl)*math.Cos(hourAngleRad)
	cosZenith = geom.Clamp(cosZenith, -1, 1)
	zenithRad := math.Acos(cosZenith)
	geometricElev := 90 - radToDeg(zenithRad)

	apparentElev := geometricElev
	if applyRefraction && geometricElev > -0.575 {
		apparentElev = geometricElev + refractionCorrectionDeg(geometricElev)
	}

	azNumer := math.Sin(hourAngleRad)
	azDenom := math.Cos(hourAngleRad)*math.Sin(latRad) - math.Tan(decl)*math.Cos(latRad)
	azDeg := radToDeg(math.Atan2(azNumer, azDenom))
	azDeg = math.Mod(azDeg+180, 360)
	if azDeg < 0 {
		azDeg += 360
	}

	return Position{
		GeometricElevDeg: geometricElev,
		ApparentElevDeg:  apparentElev,
		AzimuthDeg:       azDeg,
		DeclinationDeg:   radToDeg(decl),
		HourAngleDeg:     hourAngleDeg,
		EOTMinutes:       eot,
		SolarNoonMinutes: solarNoonMinutes(local, site),
	}
}

// solarNoonMinutes estimates local-clock solar noon (minutes after
// midnight) by two fixed-point iterations of the NOAA estimator, per
// spec §4.3: "720 − 4·lon − EOT + 60·tz", refining EOT at the previous
// estimate's instant each time.
func solarNoonMinutes(local time.Time, site Site) float64 {
	dayOfYear := float64(local.YearDay())
	days := daysInYear(local)

	noon := 720.0
	for i := 0; i < 2; i++ {
		gamma := fractionalYear(dayOfYear, noon/60, days)
		eot := equationOfTimeMinutes(gamma)
		noon = 720 - 4*site.LongitudeDeg - eot + 60*site.TZOffsetHours
	}
	return noon
}

// DirectionToSun builds the unit vector pointing from the scene toward the
// sun given elevation/azimuth and a right-handed (east, north, up) basis
// where east = north × up.
func DirectionToSun(elevDeg, azDeg float64, up, north geom.Vec3) geom.Vec3 {
	east := north.Cross(up)

	elevRad := degToRad(elevDeg)
	azRad := degToRad(azDeg)

	cosElev := math.Cos(elevRad)
	dir := east.Scale(cosElev * math.Sin(azRad))
	dir = dir.Add(north.Scale(cosElev * math.Cos(azRad)))
	dir = dir.Add(up.Scale(math.Sin(elevRad)))
	return dir
}

func hoursOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func daysInYear(t time.Time) float64 {
	if isLeap(t.Year()) {
		return 366
	}
	return 365
}

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// fractionalYear returns gamma in radians per the NOAA formula.
func fractionalYear(dayOfYear, hour, daysInYr float64) float64 {
	return 2 * math.Pi / daysInYr * (dayOfYear - 1 + (hour-12)/24)
}

// equationOfTimeMinutes returns the NOAA equation-of-time in minutes.
func equationOfTimeMinutes(gamma float64) float64 {
	return 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) -
		0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) -
		0.040849*math.Sin(2*gamma))
}

// declinationRad returns the NOAA solar declination in radians.
func declinationRad(gamma float64) float64 {
	return 0.006918 -
		0.399912*math.Cos(gamma) +
		0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) +
		0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) +
		0.00148*math.Sin(3*gamma)
}

// refractionCorrectionDeg returns the NOAA atmospheric refraction
// correction in degrees for a geometric elevation above -0.575°.
func refractionCorrectionDeg(elevDeg float64) float64 {
	var refrArcmin float64
	switch {
	case elevDeg > 85:
		refrArcmin = 0
	case elevDeg > 5:
		te := math.Tan(degToRad(elevDeg))
		refrArcmin = 58.1/te - 0.07/(te*te*te) + 0.000086/(te*te*te*te*te)
	case elevDeg > -0.575:
		refrArcmin = 1735 + elevDeg*(-518.2+elevDeg*(103.4+elevDeg*(-12.79+elevDeg*0.711)))
	default:
		te := math.Tan(degToRad(elevDeg))
		refrArcmin = -20.774 / te
	}
	return refrArcmin / 3600
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }
