// Package catalogdb stores the observatory catalog in SQLite, so lookups
// do not re-parse the data files on every invocation.
package catalogdb

import (
	"database/sql"
	"errors"
	"fmt"

	"skytools/astro"
	"skytools/internal/catalogdb/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store is a sqlite-backed observatory catalog. It satisfies
// astro.LocationSource.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the catalog database at path. Use ":memory:" for
// an in-memory store. The schema is not checked; call CheckMigrations or
// MigrateUp before querying.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	// An in-memory database exists per connection; keep the pool at one so
	// migrations and queries see the same database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// SQLite ships with foreign keys off for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// CheckMigrations verifies the schema is at the version this binary expects.
func (s *Store) CheckMigrations() error {
	return migrations.Check(s.db)
}

// MigrateUp brings the schema to the latest version.
func (s *Store) MigrateUp() error {
	return migrations.Up(s.db)
}

// Import replaces the stored catalog with the contents of cat, in a single
// transaction. Returns the number of observatories stored.
func (s *Store) Import(cat *astro.Catalog) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM observatories"); err != nil {
		return 0, fmt.Errorf("clearing observatories: %w", err)
	}

	insObs, err := tx.Prepare("INSERT INTO observatories (name, x, y, z) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing observatory insert: %w", err)
	}
	defer insObs.Close()

	insAlias, err := tx.Prepare("INSERT OR REPLACE INTO aliases (alias, observatory) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing alias insert: %w", err)
	}
	defer insAlias.Close()

	count := 0
	for _, obs := range cat.Observatories() {
		if _, err := insObs.Exec(obs.Name, obs.Location.X, obs.Location.Y, obs.Location.Z); err != nil {
			return 0, fmt.Errorf("inserting observatory %s: %w", obs.Name, err)
		}
		for _, alias := range obs.Aliases {
			if _, err := insAlias.Exec(alias, obs.Name); err != nil {
				return 0, fmt.Errorf("inserting alias %s: %w", alias, err)
			}
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return count, nil
}

// Location resolves a name or alias to a site location.
func (s *Store) Location(name string) (astro.EarthLocation, error) {
	row := s.db.QueryRow(`
		SELECT o.x, o.y, o.z
		FROM observatories o
		JOIN aliases a ON a.observatory = o.name
		WHERE a.alias = lower(?)`, name)

	var x, y, z float64
	if err := row.Scan(&x, &y, &z); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return astro.EarthLocation{}, &astro.UnknownObservatoryError{Name: name}
		}
		return astro.EarthLocation{}, fmt.Errorf("querying observatory %s: %w", name, err)
	}
	return astro.FromGeocentric(x, y, z), nil
}

// Canonical resolves a name or alias to its canonical catalog name.
func (s *Store) Canonical(name string) (string, error) {
	row := s.db.QueryRow("SELECT observatory FROM aliases WHERE alias = lower(?)", name)

	var canonical string
	if err := row.Scan(&canonical); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", &astro.UnknownObservatoryError{Name: name}
		}
		return "", fmt.Errorf("querying alias %s: %w", name, err)
	}
	return canonical, nil
}

// Observatories returns all stored entries with their aliases, ordered by
// name.
func (s *Store) Observatories() ([]astro.Observatory, error) {
	rows, err := s.db.Query("SELECT name, x, y, z FROM observatories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing observatories: %w", err)
	}
	defer rows.Close()

	var out []astro.Observatory
	for rows.Next() {
		var obs astro.Observatory
		var x, y, z float64
		if err := rows.Scan(&obs.Name, &x, &y, &z); err != nil {
			return nil, fmt.Errorf("scanning observatory: %w", err)
		}
		obs.Location = astro.FromGeocentric(x, y, z)
		out = append(out, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing observatories: %w", err)
	}

	for i := range out {
		aliasRows, err := s.db.Query("SELECT alias FROM aliases WHERE observatory = ? ORDER BY alias", out[i].Name)
		if err != nil {
			return nil, fmt.Errorf("listing aliases for %s: %w", out[i].Name, err)
		}
		for aliasRows.Next() {
			var alias string
			if err := aliasRows.Scan(&alias); err != nil {
				aliasRows.Close()
				return nil, fmt.Errorf("scanning alias: %w", err)
			}
			out[i].Aliases = append(out[i].Aliases, alias)
		}
		if err := aliasRows.Err(); err != nil {
			aliasRows.Close()
			return nil, fmt.Errorf("listing aliases for %s: %w", out[i].Name, err)
		}
		aliasRows.Close()
	}
	return out, nil
}

// Count returns the number of stored observatories.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM observatories").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting observatories: %w", err)
	}
	return n, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ astro.LocationSource = (*Store)(nil)
