package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under $HOME holding configs, scores and logs.
const AppDir = ".berrymatch"

// LoadMatch3 loads the match-3 rules.
// Search order: customPath -> ~/.berrymatch/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
//
// A custom path that cannot be read, parsed or validated is an error. Broken files found
// during the search are skipped.
func LoadMatch3(customPath string) (Match3Config, error) {
	if customPath != "" {
		customPath = ExpandPath(customPath)
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Match3Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseMatch3(data)
		if err != nil {
			return Match3Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("match3.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseMatch3(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "match3.yaml")); err == nil {
		if cfg, err := parseMatch3(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseMatch3 decodes a rules file on top of the defaults, so a file only needs the
// keys it changes, and validates the result.
func parseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Match3Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// HomePath returns ~/.berrymatch/<name>, or <name> under the working directory when the
// home directory is unavailable.
func HomePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, AppDir, name)
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
