package astro

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const testObservatories = `
# test table
 882589.65 -4924872.32 3943729.348 GBT gbt
 3828445.659 445223.600 5064921.568 WSRT wsrt
`

const testAliases = `
# extra aliases
gbt greenbank
wsrt westerbork
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(testObservatories), strings.NewReader(testAliases))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}

	t.Run("canonical name resolves", func(t *testing.T) {
		loc, err := cat.Location("GBT")
		if err != nil {
			t.Fatalf("Location(GBT) error = %v", err)
		}
		if loc.X != 882589.65 {
			t.Errorf("X = %v, want 882589.65", loc.X)
		}
	})

	t.Run("alias file alias resolves", func(t *testing.T) {
		loc, err := cat.Location("Westerbork")
		if err != nil {
			t.Fatalf("Location(Westerbork) error = %v", err)
		}
		direct, err := cat.Location("wsrt")
		if err != nil {
			t.Fatalf("Location(wsrt) error = %v", err)
		}
		if loc != direct {
			t.Errorf("alias location %v != canonical location %v", loc, direct)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := cat.Location("nonesuch")
		var unknownErr *UnknownObservatoryError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("Location(nonesuch) error = %v, want *UnknownObservatoryError", err)
		}
		if unknownErr.Name != "nonesuch" {
			t.Errorf("error Name = %q, want %q", unknownErr.Name, "nonesuch")
		}
	})

	t.Run("canonical lookup", func(t *testing.T) {
		name, err := cat.Canonical("greenbank")
		if err != nil {
			t.Fatalf("Canonical(greenbank) error = %v", err)
		}
		if name != "gbt" {
			t.Errorf("Canonical(greenbank) = %q, want %q", name, "gbt")
		}
	})
}

func TestParseCatalog_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		obs     string
		aliases string
	}{
		{name: "short observatory line", obs: "1.0 2.0 GBT"},
		{name: "non-numeric coordinate", obs: "a b c GBT"},
		{name: "short alias line", obs: testObservatories, aliases: "gbt"},
		{name: "alias for unknown site", obs: testObservatories, aliases: "nonesuch alias"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(tt.obs), strings.NewReader(tt.aliases))
			if err == nil {
				t.Error("ParseCatalog() error = nil, want parse error")
			}
		})
	}
}

func TestEmbeddedCatalog(t *testing.T) {
	cat, err := EmbeddedCatalog()
	if err != nil {
		t.Fatalf("EmbeddedCatalog() error = %v", err)
	}

	for _, name := range []string{"gbt", "GreenBank", "parkes", "arecibo", "jodrell"} {
		if _, err := cat.Location(name); err != nil {
			t.Errorf("Location(%q) error = %v", name, err)
		}
	}

	if len(cat.Observatories()) < 5 {
		t.Errorf("Observatories() returned %d entries, want at least 5", len(cat.Observatories()))
	}
}

func TestElevationLimit(t *testing.T) {
	cat, err := EmbeddedCatalog()
	if err != nil {
		t.Fatalf("EmbeddedCatalog() error = %v", err)
	}

	if got := cat.ElevationLimit("greenbank").Deg(); math.Abs(got-5.5) > 1e-9 {
		t.Errorf("ElevationLimit(greenbank) = %v deg, want 5.5", got)
	}
	if got := cat.ElevationLimit("parkes"); got != 0 {
		t.Errorf("ElevationLimit(parkes) = %v, want 0", got)
	}
	if got := cat.ElevationLimit("nonesuch"); got != 0 {
		t.Errorf("ElevationLimit(nonesuch) = %v, want 0", got)
	}
}

func TestGeodetic(t *testing.T) {
	tests := []struct {
		name       string
		loc        EarthLocation
		wantLatDeg float64
		wantLonDeg float64
		wantHeight float64
	}{
		{
			name:       "green bank",
			loc:        FromGeocentric(882589.65, -4924872.32, 3943729.348),
			wantLatDeg: 38.4331,
			wantLonDeg: -79.8398,
			wantHeight: 823.6,
		},
		{
			name:       "westerbork",
			loc:        FromGeocentric(3828445.659, 445223.600, 5064921.568),
			wantLatDeg: 52.9153,
			wantLonDeg: 6.6333,
			wantHeight: 71.2,
		},
		{
			name:       "parkes southern hemisphere",
			loc:        FromGeocentric(-4554231.5, 2816759.1, -3454036.3),
			wantLatDeg: -32.9984,
			wantLonDeg: 148.2635,
			wantHeight: 414.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, h := tt.loc.Geodetic()
			if math.Abs(lat.Deg()-tt.wantLatDeg) > 1e-3 {
				t.Errorf("lat = %v deg, want %v", lat.Deg(), tt.wantLatDeg)
			}
			if math.Abs(lon.Deg()-tt.wantLonDeg) > 1e-3 {
				t.Errorf("lon = %v deg, want %v", lon.Deg(), tt.wantLonDeg)
			}
			if math.Abs(h-tt.wantHeight) > 1 {
				t.Errorf("height = %v m, want %v", h, tt.wantHeight)
			}
			if got := tt.loc.Latitude(); got != lat {
				t.Errorf("Latitude() = %v, want %v", got, lat)
			}
			if got := tt.loc.Longitude(); got != lon {
				t.Errorf("Longitude() = %v, want %v", got, lon)
			}
		})
	}
}
