package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileNames are the file names searched for, in priority order
var ConfigFileNames = []string{"stimgen.yaml", ".stimgen.yaml"}

// FindConfigFile walks up from start looking for a stimgen config file.
// Returns an empty path when none is found before the filesystem root.
func FindConfigFile(start string) (string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(current, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			return "", nil
		}
		current = parent
	}
}

// LoadConfigFromDir loads the nearest config file at or above dir.
// Defaults are returned when there is none.
func LoadConfigFromDir(dir string) (*Config, error) {
	path, err := FindConfigFile(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}
