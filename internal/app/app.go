// Package app wires configuration, the observatory catalog and logging
// into the high-level operations the CLI exposes.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"skytools/astro"
	"skytools/internal/catalogdb"
	"skytools/internal/config"
	"skytools/rerun"

	"github.com/google/uuid"
)

// locationSource is what the app needs from a catalog backend: resolving a
// name to a site, and to its canonical catalog name (for the per-site
// elevation-limit table). Both astro.Catalog and catalogdb.Store satisfy it.
type locationSource interface {
	Location(name string) (astro.EarthLocation, error)
	Canonical(name string) (string, error)
}

// App is the application layer between the CLI and the library packages.
// Construct with NewApp; the caller must call Close when done.
type App struct {
	cfg     *config.Config
	source  locationSource
	store   *catalogdb.Store // non-nil only for the sqlite catalog backend
	log     *slog.Logger
	logFile *os.File
}

// NewApp creates a fully wired App from the given config. operation
// identifies the CLI command being run (e.g. "RiseSet", "ImportCatalog");
// it is recorded with every log line.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	opID := uuid.New().String()[:8]
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger = logger.With("operation", operation)

	a := &App{cfg: cfg, log: logger, logFile: logFile}

	switch cfg.Catalog.Type {
	case "embedded":
		cat, err := astro.EmbeddedCatalog()
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("loading embedded catalog: %w", err)
		}
		a.source = cat
	case "files":
		if cfg.Catalog.ObservatoriesPath == "" {
			logFile.Close()
			return nil, fmt.Errorf("observatories_path required for catalog type files")
		}
		cat, err := astro.LoadCatalog(cfg.Catalog.ObservatoriesPath, cfg.Catalog.AliasesPath)
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("loading catalog files: %w", err)
		}
		a.source = cat
	case "sqlite":
		if cfg.Catalog.DataDir == "" {
			logFile.Close()
			return nil, fmt.Errorf("data_dir required for catalog type sqlite")
		}
		if err := os.MkdirAll(cfg.Catalog.DataDir, 0755); err != nil {
			logFile.Close()
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
		store, err := catalogdb.Open(cfg.DatabasePath())
		if err != nil {
			logFile.Close()
			return nil, err
		}
		if operation == "ImportCatalog" {
			if err := store.MigrateUp(); err != nil {
				store.Close()
				logFile.Close()
				return nil, fmt.Errorf("migrating catalog database: %w", err)
			}
		} else if err := store.CheckMigrations(); err != nil {
			store.Close()
			logFile.Close()
			return nil, fmt.Errorf("catalog database not ready (run `skytools catalog import`): %w", err)
		}
		a.store = store
		a.source = store
	default:
		logFile.Close()
		return nil, fmt.Errorf("unknown catalog type: %s", cfg.Catalog.Type)
	}

	return a, nil
}

// RiseSetResult bundles everything the CLI renders for a rise/set query.
type RiseSetResult struct {
	Times    astro.Times
	Target   astro.SkyCoord
	Location astro.EarthLocation
	Horizon  astro.Angle
}

// RiseSet resolves a target and an observatory and computes rise and set
// times anchored at when.
//
// The horizon limit is, in order of precedence: elevationLimitDeg when
// non-nil, the per-site known-limits table, then the configured default.
func (a *App) RiseSet(targetName, obsName string, when time.Time, elevationLimitDeg *float64) (*RiseSetResult, error) {
	target, err := astro.ResolveTarget(targetName)
	if err != nil {
		return nil, fmt.Errorf("resolving target: %w", err)
	}

	loc, err := a.source.Location(obsName)
	if err != nil {
		return nil, fmt.Errorf("resolving observatory: %w", err)
	}

	horizon := astro.Degrees(a.cfg.Observing.ElevationLimitDeg)
	if canonical, err := a.source.Canonical(obsName); err == nil {
		if limit, ok := astro.KnownElevationLimits[canonical]; ok {
			horizon = limit
		}
	}
	if elevationLimitDeg != nil {
		horizon = astro.Degrees(*elevationLimitDeg)
	}

	times, err := astro.RiseSet(target, loc, horizon, when)
	if err != nil {
		return nil, err
	}

	a.log.Info("rise/set computed",
		"target", targetName,
		"observatory", obsName,
		"horizon_deg", horizon.Deg(),
		"rise", times.Rise.UTC().Format(time.RFC3339),
		"set", times.Set.UTC().Format(time.RFC3339),
	)

	return &RiseSetResult{
		Times:    times,
		Target:   target,
		Location: loc,
		Horizon:  horizon,
	}, nil
}

// ListObservatories returns the full catalog, sorted by canonical name.
func (a *App) ListObservatories() ([]astro.Observatory, error) {
	var (
		out []astro.Observatory
		err error
	)
	switch s := a.source.(type) {
	case *astro.Catalog:
		out = s.Observatories()
	case *catalogdb.Store:
		out, err = s.Observatories()
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("catalog backend does not support listing")
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ObservatoryLocation resolves an observatory name to its site location.
func (a *App) ObservatoryLocation(name string) (astro.EarthLocation, error) {
	return a.source.Location(name)
}

// ImportCatalog loads the catalog source data into the sqlite store. It is
// skipped when the database is already newer than the source files, unless
// force is set. Returns the number of observatories imported and whether
// the import was skipped as up to date.
func (a *App) ImportCatalog(force bool) (int, bool, error) {
	if a.store == nil {
		return 0, false, fmt.Errorf("catalog import requires catalog type sqlite (have %q)", a.cfg.Catalog.Type)
	}

	dbPath := a.cfg.DatabasePath()
	fromFiles := a.cfg.Catalog.ObservatoriesPath != ""

	if !force {
		if fromFiles {
			inputs := rerun.FileList{a.cfg.Catalog.ObservatoriesPath}
			if a.cfg.Catalog.AliasesPath != "" {
				inputs = append(inputs, a.cfg.Catalog.AliasesPath)
			}
			checker := rerun.NewChecker(a.log)
			stale, err := checker.NeedsRerun(inputs, rerun.FileList{dbPath})
			if err != nil {
				return 0, false, fmt.Errorf("checking catalog staleness: %w", err)
			}
			if !stale {
				count, err := a.store.Count()
				if err != nil {
					return 0, false, err
				}
				if count > 0 {
					a.log.Info("catalog up to date, skipping import", "database", dbPath)
					return count, true, nil
				}
			}
		} else {
			// Embedded source has no file timestamps; skip only when the
			// store is already populated.
			count, err := a.store.Count()
			if err != nil {
				return 0, false, err
			}
			if count > 0 {
				a.log.Info("catalog already imported, skipping", "database", dbPath)
				return count, true, nil
			}
		}
	}

	var cat *astro.Catalog
	var err error
	if fromFiles {
		cat, err = astro.LoadCatalog(a.cfg.Catalog.ObservatoriesPath, a.cfg.Catalog.AliasesPath)
	} else {
		cat, err = astro.EmbeddedCatalog()
	}
	if err != nil {
		return 0, false, fmt.Errorf("loading catalog source: %w", err)
	}

	count, err := a.store.Import(cat)
	if err != nil {
		return 0, false, fmt.Errorf("importing catalog: %w", err)
	}
	a.log.Info("catalog imported", "observatories", count, "database", dbPath)
	return count, false, nil
}

// Close releases the catalog store and the log file.
func (a *App) Close() error {
	var firstErr error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			firstErr = fmt.Errorf("closing catalog store: %w", err)
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
