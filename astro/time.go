package astro

import (
	"math"
	"time"
)

// MJD epoch: 1858-11-17T00:00:00 UTC, 40587 days before the Unix epoch.
const (
	mjdUnixEpoch  = 40587.0
	secondsPerDay = 86400.0
	// J2000.0 as a Julian date.
	jd2000 = 2451545.0
	// Offset between Julian date and modified Julian date.
	mjdToJD = 2400000.5
)

// TimeToMJD converts a time to a modified Julian date (UTC).
func TimeToMJD(t time.Time) float64 {
	sec := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return sec/secondsPerDay + mjdUnixEpoch
}

// MJDToTime converts a modified Julian date (UTC) to a time. Sub-second
// precision is limited by float64 resolution, roughly a microsecond for
// current dates.
func MJDToTime(mjd float64) time.Time {
	sec := (mjd - mjdUnixEpoch) * secondsPerDay
	s := math.Floor(sec)
	ns := (sec - s) * 1e9
	return time.Unix(int64(s), int64(ns)).UTC()
}

// GMST returns the Greenwich mean sidereal time at t.
//
// Uses the IAU 1982 expression (Meeus, Astronomical Algorithms, eq. 12.4);
// good to well under a second over the surrounding centuries, which is
// ample for rise/set work.
func GMST(t time.Time) Angle {
	d := TimeToMJD(t) + mjdToJD - jd2000
	tc := d / 36525.0

	deg := 280.46061837 + 360.98564736629*d + 0.000387933*tc*tc - tc*tc*tc/38710000.0
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return Degrees(deg)
}

// LST returns the local mean sidereal time at t for the given east
// longitude.
func LST(t time.Time, lon Angle) Angle {
	lst := GMST(t) + lon
	rad := math.Mod(lst.Rad(), 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return Angle(rad)
}
