package astro

import (
	"fmt"
	"strconv"
	"strings"
)

// SkyCoord is an ICRS sky position.
type SkyCoord struct {
	RA  Angle // right ascension
	Dec Angle // declination
}

func (c SkyCoord) String() string {
	return fmt.Sprintf("RA %.5f deg, Dec %.5f deg", c.RA.Deg(), c.Dec.Deg())
}

// parseSexagesimal parses "a:b:c" or "a:b" into a (possibly negative)
// value in units of a.
func parseSexagesimal(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("expected d:m or d:m:s, got %q", s)
	}

	neg := false
	head := strings.TrimSpace(parts[0])
	if strings.HasPrefix(head, "-") {
		neg = true
		head = head[1:]
	} else {
		head = strings.TrimPrefix(head, "+")
	}

	v, err := strconv.ParseFloat(head, 64)
	if err != nil {
		return 0, fmt.Errorf("bad component %q: %w", parts[0], err)
	}
	scale := 60.0
	for _, p := range parts[1:] {
		c, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, fmt.Errorf("bad component %q: %w", p, err)
		}
		if c < 0 {
			return 0, fmt.Errorf("negative component %q inside %q", p, s)
		}
		v += c / scale
		scale *= 60
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ParseRA parses a right ascension: sexagesimal hours ("18:36:56.3") or
// decimal degrees ("279.23").
func ParseRA(s string) (Angle, error) {
	if strings.Contains(s, ":") {
		h, err := parseSexagesimal(s)
		if err != nil {
			return 0, fmt.Errorf("parsing RA: %w", err)
		}
		if h < 0 || h >= 24 {
			return 0, fmt.Errorf("RA %v hours out of range", h)
		}
		return Hours(h), nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing RA: %w", err)
	}
	if d < 0 || d >= 360 {
		return 0, fmt.Errorf("RA %v degrees out of range", d)
	}
	return Degrees(d), nil
}

// ParseDec parses a declination: sexagesimal degrees ("-16:42:58") or
// decimal degrees ("-16.716").
func ParseDec(s string) (Angle, error) {
	var d float64
	var err error
	if strings.Contains(s, ":") {
		d, err = parseSexagesimal(s)
	} else {
		d, err = strconv.ParseFloat(s, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("parsing Dec: %w", err)
	}
	if d < -90 || d > 90 {
		return 0, fmt.Errorf("Dec %v degrees out of range", d)
	}
	return Degrees(d), nil
}

// brightSources is a small built-in table of frequently observed targets,
// J2000 positions. Keys are lower-case with spaces stripped.
var brightSources = map[string]SkyCoord{
	"vega":       mustCoord("18:36:56.34", "+38:47:01.3"),
	"sirius":     mustCoord("06:45:08.92", "-16:42:58.0"),
	"polaris":    mustCoord("02:31:49.09", "+89:15:50.8"),
	"betelgeuse": mustCoord("05:55:10.31", "+07:24:25.4"),
	"casa":       mustCoord("23:23:24.00", "+58:48:54.0"),
	"b0531+21":   mustCoord("05:34:31.97", "+22:00:52.1"),
	"b1937+21":   mustCoord("19:39:38.56", "+21:34:59.1"),
	"j0437-4715": mustCoord("04:37:15.90", "-47:15:09.1"),
}

func mustCoord(ra, dec string) SkyCoord {
	r, err := ParseRA(ra)
	if err != nil {
		panic(err)
	}
	d, err := ParseDec(dec)
	if err != nil {
		panic(err)
	}
	return SkyCoord{RA: r, Dec: d}
}

// ResolveTarget turns a target designation into a SkyCoord. It first
// consults the built-in bright-source table (case-insensitive, spaces
// ignored), then tries to parse the string as "RA DEC". Online name
// resolution is deliberately not attempted.
func ResolveTarget(name string) (SkyCoord, error) {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if c, ok := brightSources[key]; ok {
		return c, nil
	}

	fields := strings.Fields(name)
	if len(fields) == 2 {
		ra, raErr := ParseRA(fields[0])
		dec, decErr := ParseDec(fields[1])
		if raErr == nil && decErr == nil {
			return SkyCoord{RA: ra, Dec: dec}, nil
		}
	}
	return SkyCoord{}, fmt.Errorf("target %q not in the built-in table and not parseable as RA DEC", name)
}
