package astro

import (
	"fmt"
	"math"
)

// FormatSiderealTime renders a sidereal time as hh:mm:ss.s. The angle must
// not be negative.
func FormatSiderealTime(t Angle) (string, error) {
	h := t.HourAngle()
	if h < 0 {
		return "", fmt.Errorf("received negative hour angle %v", h)
	}
	hh := math.Floor(h)
	m := (h - hh) * 60
	mm := math.Floor(m)
	s := (m - mm) * 60
	// Carry so seconds never print as 60.0.
	if s >= 59.95 {
		s = 0
		mm++
		if mm >= 60 {
			mm = 0
			hh++
			if hh >= 24 {
				hh = 0
			}
		}
	}
	return fmt.Sprintf("%02d:%02d:%04.1f", int(hh), int(mm), s), nil
}
