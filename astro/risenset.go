package astro

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Mean sidereal hours elapsed per solar hour.
const siderealRate = 1.00273790935

// ErrAlwaysUp reports a target that never goes below the horizon limit at
// the given site (circumpolar).
var ErrAlwaysUp = errors.New("target never sets at this site")

// ErrNeverUp reports a target that never comes above the horizon limit at
// the given site.
var ErrNeverUp = errors.New("target never rises at this site")

// Times holds a rise/set pair.
type Times struct {
	Rise time.Time
	Set  time.Time
}

// Sidereal renders the rise and set instants as local apparent sidereal
// times at the given site, formatted hh:mm:ss.s.
func (t Times) Sidereal(loc EarthLocation) (rise, set string, err error) {
	lon := loc.Longitude()
	rise, err = FormatSiderealTime(LST(t.Rise, lon))
	if err != nil {
		return "", "", fmt.Errorf("formatting rise: %w", err)
	}
	set, err = FormatSiderealTime(LST(t.Set, lon))
	if err != nil {
		return "", "", fmt.Errorf("formatting set: %w", err)
	}
	return rise, set, nil
}

// IsUp reports whether the target is above the horizon limit at the given
// site and instant.
func IsUp(target SkyCoord, loc EarthLocation, horizon Angle, when time.Time) bool {
	lat, lon, _ := loc.Geodetic()
	ha := LST(when, lon) - target.RA
	sinAlt := math.Sin(lat.Rad())*math.Sin(target.Dec.Rad()) +
		math.Cos(lat.Rad())*math.Cos(target.Dec.Rad())*math.Cos(ha.Rad())
	return sinAlt > math.Sin(horizon.Rad())
}

// RiseSet computes rise and set times for a fixed target seen from loc with
// the given horizon limit, anchored at when.
//
// If the target is up at when, the returned rise is the most recent rise
// before when; otherwise it is the next rise after when. The set is always
// the first set following the rise, so when lies inside [Rise, Set] exactly
// when the target is up.
//
// The computation uses mean sidereal time and ignores refraction and proper
// motion; results are good to a minute or so, which matches the intended
// planning use.
func RiseSet(target SkyCoord, loc EarthLocation, horizon Angle, when time.Time) (Times, error) {
	lat, lon, _ := loc.Geodetic()

	cosH0 := (math.Sin(horizon.Rad()) - math.Sin(lat.Rad())*math.Sin(target.Dec.Rad())) /
		(math.Cos(lat.Rad()) * math.Cos(target.Dec.Rad()))
	if cosH0 < -1 {
		return Times{}, ErrAlwaysUp
	}
	if cosH0 > 1 {
		return Times{}, ErrNeverUp
	}
	// Semi-diurnal arc in sidereal hours.
	h0 := Angle(math.Acos(cosH0)).HourAngle()

	// Hour angle now, wrapped to [-12, 12) hours.
	ha := (LST(when, lon) - target.RA).HourAngle()
	ha = math.Mod(ha, 24)
	if ha < -12 {
		ha += 24
	} else if ha >= 12 {
		ha -= 24
	}

	// Sidereal hours since the last rise crossing (HA == -h0).
	sinceRise := math.Mod(ha+h0, 24)
	if sinceRise < 0 {
		sinceRise += 24
	}

	rise := addHours(when, -sinceRise/siderealRate)
	if sinceRise >= 2*h0 {
		// Not up: report the next rise instead of the previous one.
		rise = addHours(rise, 24/siderealRate)
	}
	set := addHours(rise, 2*h0/siderealRate)

	return Times{Rise: rise, Set: set}, nil
}

func addHours(t time.Time, h float64) time.Time {
	return t.Add(time.Duration(h * float64(time.Hour)))
}
