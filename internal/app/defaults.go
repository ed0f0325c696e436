package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment
// variables first.
// Environment variables:
//   - SKYTOOLS_CONFIG_PATH: config file location (default: ~/.config/skytools.toml)
//   - SKYTOOLS_HOME: base directory for skytools data (default: ~/.local/share/skytools)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking SKYTOOLS_CONFIG_PATH
// first, then falling back to ~/.config/skytools.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("SKYTOOLS_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "skytools.toml"), nil
}

// getBaseDir returns the base data directory, checking SKYTOOLS_HOME first,
// then falling back to the XDG default ~/.local/share/skytools.
func getBaseDir() (string, error) {
	if path := os.Getenv("SKYTOOLS_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "skytools"), nil
}
