package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir: "/home/user/.local/share/skytools",
		LogDir:  "/home/user/.local/share/skytools/log",
		Catalog: CatalogConfig{
			Type:              "sqlite",
			ObservatoriesPath: "/data/observatories.dat",
			AliasesPath:       "/data/aliases",
			DataDir:           "/home/user/.local/share/skytools/catalog",
		},
		Observing: ObservingConfig{ElevationLimitDeg: 5.5},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Catalog.Type != "sqlite" {
		t.Errorf("Catalog.Type = %q, want %q", got.Catalog.Type, "sqlite")
	}
	if got.Catalog.ObservatoriesPath != original.Catalog.ObservatoriesPath {
		t.Errorf("Catalog.ObservatoriesPath = %q, want %q", got.Catalog.ObservatoriesPath, original.Catalog.ObservatoriesPath)
	}
	if got.Catalog.DataDir != original.Catalog.DataDir {
		t.Errorf("Catalog.DataDir = %q, want %q", got.Catalog.DataDir, original.Catalog.DataDir)
	}
	if got.Observing.ElevationLimitDeg != 5.5 {
		t.Errorf("Observing.ElevationLimitDeg = %v, want 5.5", got.Observing.ElevationLimitDeg)
	}
}

func TestManager_Read_DefaultsCatalogType(t *testing.T) {
	m := &Manager{}
	got, err := m.Read(bytes.NewBufferString("base_dir = \"/tmp/st\"\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Catalog.Type != "embedded" {
		t.Errorf("Catalog.Type = %q, want %q", got.Catalog.Type, "embedded")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/skytools")

	if cfg.BaseDir != "/data/skytools" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/skytools")
	}
	if cfg.LogDir != "/data/skytools/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/skytools/log")
	}
	if cfg.Catalog.Type != "embedded" {
		t.Errorf("Catalog.Type = %q, want %q", cfg.Catalog.Type, "embedded")
	}
	if cfg.DatabasePath() != "/data/skytools/catalog/catalog.db" {
		t.Errorf("DatabasePath() = %q, want %q", cfg.DatabasePath(), "/data/skytools/catalog/catalog.db")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skytools.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "skytools.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, cfg); err == nil {
			t.Error("second Init() error = nil, want already-exists error")
		}
	})

	t.Run("creates missing parent directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "conf", "skytools.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})
}
