package astro

import "math"

// Angle is a plane angle in radians.
type Angle float64

// Degrees constructs an Angle from degrees.
func Degrees(d float64) Angle { return Angle(d * math.Pi / 180) }

// Hours constructs an Angle from hours of arc (15 degrees per hour).
func Hours(h float64) Angle { return Angle(h * math.Pi / 12) }

// Deg returns the angle in degrees.
func (a Angle) Deg() float64 { return float64(a) * 180 / math.Pi }

// HourAngle returns the angle in hours of arc.
func (a Angle) HourAngle() float64 { return float64(a) * 12 / math.Pi }

// Rad returns the angle in radians as a plain float64.
func (a Angle) Rad() float64 { return float64(a) }
