package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the main configuration for skytools.
type Config struct {
	BaseDir   string          `toml:"base_dir"`
	LogDir    string          `toml:"log_dir"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Observing ObservingConfig `toml:"observing"`
}

// CatalogConfig selects where observatory lookups come from. This is a
// tagged union: Type determines which other fields are relevant.
type CatalogConfig struct {
	Type string `toml:"type"` // "embedded" (default), "files", or "sqlite"

	// Source data files (used when Type == "files", and as the import
	// source when Type == "sqlite"; empty paths fall back to the embedded
	// data).
	ObservatoriesPath string `toml:"observatories_path,omitempty"`
	AliasesPath       string `toml:"aliases_path,omitempty"`

	// Database directory (only used when Type == "sqlite").
	DataDir string `toml:"data_dir,omitempty"`
}

// ObservingConfig holds rise/set defaults.
type ObservingConfig struct {
	// ElevationLimitDeg is the horizon limit used when neither the command
	// line nor the per-site limits table supplies one.
	ElevationLimitDeg float64 `toml:"elevation_limit_deg"`
}

// NewConfig creates a Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Catalog: CatalogConfig{
			Type:    "embedded",
			DataDir: filepath.Join(baseDir, "catalog"),
		},
	}
}

// DatabasePath returns the sqlite catalog path for this config.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Catalog.DataDir, "catalog.db")
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Catalog.Type == "" {
		cfg.Catalog.Type = "embedded"
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path, creating the
// parent directory if needed.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path. It refuses to
// overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
