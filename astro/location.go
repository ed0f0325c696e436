package astro

import (
	"fmt"
	"math"
)

// WGS84 reference ellipsoid.
const (
	wgs84A = 6378137.0         // semi-major axis, meters
	wgs84F = 1 / 298.257223563 // flattening
)

// EarthLocation is a geocentric position in meters (ITRF axes, as used by
// observatory coordinate tables).
type EarthLocation struct {
	X, Y, Z float64
}

// FromGeocentric constructs an EarthLocation from geocentric coordinates in
// meters.
func FromGeocentric(x, y, z float64) EarthLocation {
	return EarthLocation{X: x, Y: y, Z: z}
}

// Geodetic converts the geocentric position to WGS84 latitude, longitude
// (east-positive) and height above the ellipsoid in meters, using Bowring's
// method.
func (l EarthLocation) Geodetic() (lat, lon Angle, height float64) {
	b := wgs84A * (1 - wgs84F)
	e2 := wgs84F * (2 - wgs84F)
	ep2 := (wgs84A*wgs84A - b*b) / (b * b)

	p := math.Hypot(l.X, l.Y)
	theta := math.Atan2(l.Z*wgs84A, p*b)
	sinT, cosT := math.Sin(theta), math.Cos(theta)

	phi := math.Atan2(l.Z+ep2*b*sinT*sinT*sinT, p-e2*wgs84A*cosT*cosT*cosT)
	lam := math.Atan2(l.Y, l.X)

	sinP := math.Sin(phi)
	n := wgs84A / math.Sqrt(1-e2*sinP*sinP)
	h := p/math.Cos(phi) - n

	return Angle(phi), Angle(lam), h
}

// Latitude returns the WGS84 geodetic latitude.
func (l EarthLocation) Latitude() Angle {
	lat, _, _ := l.Geodetic()
	return lat
}

// Longitude returns the WGS84 longitude, east-positive.
func (l EarthLocation) Longitude() Angle {
	_, lon, _ := l.Geodetic()
	return lon
}

func (l EarthLocation) String() string {
	lat, lon, h := l.Geodetic()
	return fmt.Sprintf("lat %.5f deg, lon %.5f deg, height %.0f m", lat.Deg(), lon.Deg(), h)
}
