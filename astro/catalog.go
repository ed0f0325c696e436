package astro

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//go:embed data/observatories.dat data/aliases
var catalogData embed.FS

// LocationSource resolves an observatory name or alias to a site location.
// Both the in-memory Catalog and the sqlite-backed store satisfy it.
type LocationSource interface {
	Location(name string) (EarthLocation, error)
}

// UnknownObservatoryError reports a name that no catalog entry or alias
// matches.
type UnknownObservatoryError struct {
	Name string
}

func (e *UnknownObservatoryError) Error() string {
	return fmt.Sprintf("observatory %q not known", e.Name)
}

// Observatory is a single catalog entry.
type Observatory struct {
	Name     string // canonical lower-case name
	Location EarthLocation
	Aliases  []string // lower-case, includes Name itself
}

// Catalog maps observatory names and aliases to site locations. Construct
// one with ParseCatalog, LoadCatalog or EmbeddedCatalog; the zero value is
// an empty catalog.
type Catalog struct {
	observatories map[string]Observatory
	aliases       map[string]string // alias -> canonical name
}

// ParseCatalog builds a Catalog from an observatory table and an alias
// table.
//
// The observatory table has one site per line: geocentric X Y Z in meters,
// then the canonical name, then any further aliases. The alias table has
// one line per site: a known alias followed by additional aliases for the
// same site. Blank lines and '#' comments are skipped in both; names are
// matched case-insensitively.
func ParseCatalog(observatories, aliases io.Reader) (*Catalog, error) {
	c := &Catalog{
		observatories: make(map[string]Observatory),
		aliases:       make(map[string]string),
	}

	scanner := bufio.NewScanner(observatories)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("mysterious observatory line %q", line)
		}
		var xyz [3]float64
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("bad coordinate in line %q: %w", line, err)
			}
			xyz[i] = v
		}
		name := strings.ToLower(fields[3])
		obs := Observatory{
			Name:     name,
			Location: FromGeocentric(xyz[0], xyz[1], xyz[2]),
		}
		for _, a := range fields[3:] {
			a = strings.ToLower(a)
			obs.Aliases = append(obs.Aliases, a)
			c.aliases[a] = name
		}
		c.observatories[name] = obs
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading observatory table: %w", err)
	}

	if aliases != nil {
		scanner = bufio.NewScanner(aliases)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return nil, fmt.Errorf("mysterious alias line %q", line)
			}
			name, ok := c.aliases[strings.ToLower(fields[0])]
			if !ok {
				return nil, fmt.Errorf("alias line %q refers to unknown observatory", line)
			}
			obs := c.observatories[name]
			for _, a := range fields[1:] {
				a = strings.ToLower(a)
				c.aliases[a] = name
				obs.Aliases = append(obs.Aliases, a)
			}
			c.observatories[name] = obs
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading alias table: %w", err)
		}
	}

	return c, nil
}

// LoadCatalog reads a catalog from files on disk. aliasPath may be empty.
func LoadCatalog(obsPath, aliasPath string) (*Catalog, error) {
	obsFile, err := os.Open(obsPath)
	if err != nil {
		return nil, fmt.Errorf("opening observatory table: %w", err)
	}
	defer obsFile.Close()

	var aliasReader io.Reader
	if aliasPath != "" {
		aliasFile, err := os.Open(aliasPath)
		if err != nil {
			return nil, fmt.Errorf("opening alias table: %w", err)
		}
		defer aliasFile.Close()
		aliasReader = aliasFile
	}

	return ParseCatalog(obsFile, aliasReader)
}

// EmbeddedCatalog returns the catalog built into the binary.
func EmbeddedCatalog() (*Catalog, error) {
	obs, err := catalogData.Open("data/observatories.dat")
	if err != nil {
		return nil, fmt.Errorf("opening embedded observatory table: %w", err)
	}
	defer obs.Close()

	aliases, err := catalogData.Open("data/aliases")
	if err != nil {
		return nil, fmt.Errorf("opening embedded alias table: %w", err)
	}
	defer aliases.Close()

	return ParseCatalog(obs, aliases)
}

// Location resolves a name or alias, case-insensitively.
func (c *Catalog) Location(name string) (EarthLocation, error) {
	canonical, ok := c.aliases[strings.ToLower(name)]
	if !ok {
		return EarthLocation{}, &UnknownObservatoryError{Name: name}
	}
	return c.observatories[canonical].Location, nil
}

// Canonical returns the canonical catalog name for a name or alias.
func (c *Catalog) Canonical(name string) (string, error) {
	canonical, ok := c.aliases[strings.ToLower(name)]
	if !ok {
		return "", &UnknownObservatoryError{Name: name}
	}
	return canonical, nil
}

// Observatories returns all entries, in no particular order.
func (c *Catalog) Observatories() []Observatory {
	out := make([]Observatory, 0, len(c.observatories))
	for _, obs := range c.observatories {
		out = append(out, obs)
	}
	return out
}

// KnownElevationLimits holds per-site horizon limits for telescopes that
// cannot point to the geometric horizon. Keys are canonical catalog names.
var KnownElevationLimits = map[string]Angle{
	"gbt":     Degrees(5.5),
	"arecibo": Degrees(69.0),
}

// ElevationLimit returns the site's known horizon limit, or the geometric
// horizon (0 degrees) when none is recorded.
func (c *Catalog) ElevationLimit(name string) Angle {
	canonical, ok := c.aliases[strings.ToLower(name)]
	if !ok {
		return 0
	}
	return KnownElevationLimits[canonical]
}

var _ LocationSource = (*Catalog)(nil)
