package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigPath names the environment variable holding an explicit document path.
const EnvConfigPath = "TRANSFORMCTL_CONFIG"

// ConfigSource identifies where the configuration file was discovered.
type ConfigSource string

const (
	ConfigSourceExplicit   ConfigSource = "explicit"
	ConfigSourceEnv        ConfigSource = "env"
	ConfigSourceWorkingDir ConfigSource = "working-dir"
	ConfigSourceXDG        ConfigSource = "xdg"
	ConfigSourceHome       ConfigSource = "home"
)

// workingDirNames are probed in order inside the working directory.
var workingDirNames = []string{"transformctl.yaml", "transformctl.yml", "transformctl.json", "transformctl.jsonc"}

// LocationResult describes the discovered configuration file.
type LocationResult struct {
	Path   string
	Source ConfigSource
}

// ErrConfigNotFound is returned when no configuration file can be located.
var ErrConfigNotFound = errors.New("transform configuration not found")

// LocateConfig discovers the configuration document following the precedence rules:
// explicit path → TRANSFORMCTL_CONFIG → ./transformctl.{yaml,yml,json,jsonc} →
// XDG config → ~/.config/transformctl/config.yaml.
func LocateConfig(explicitPath string) (LocationResult, error) {
	if path := strings.TrimSpace(explicitPath); path != "" {
		abs, err := toAbsolute(filepath.Clean(path))
		if err != nil {
			return LocationResult{}, err
		}
		if exists(abs) {
			return LocationResult{Path: abs, Source: ConfigSourceExplicit}, nil
		}
		return LocationResult{}, fmt.Errorf("%w: %s", ErrConfigNotFound, abs)
	}

	if path, ok := os.LookupEnv(EnvConfigPath); ok && strings.TrimSpace(path) != "" {
		abs, err := toAbsolute(path)
		if err != nil {
			return LocationResult{}, err
		}
		if exists(abs) {
			return LocationResult{Path: abs, Source: ConfigSourceEnv}, nil
		}
		return LocationResult{}, fmt.Errorf("%w: %s", ErrConfigNotFound, abs)
	}

	if wd, err := os.Getwd(); err == nil {
		for _, name := range workingDirNames {
			path := filepath.Join(wd, name)
			if exists(path) {
				return LocationResult{Path: path, Source: ConfigSourceWorkingDir}, nil
			}
		}
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		path := filepath.Join(xdg, "transformctl", "config.yaml")
		if exists(path) {
			return LocationResult{Path: path, Source: ConfigSourceXDG}, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		path := filepath.Join(home, ".config", "transformctl", "config.yaml")
		if exists(path) {
			return LocationResult{Path: path, Source: ConfigSourceHome}, nil
		}
	}

	return LocationResult{}, ErrConfigNotFound
}

func toAbsolute(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	return abs, nil
}

func exists(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !stat.IsDir()
}
