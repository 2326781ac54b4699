package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a game into a value that starts as fallback(),
// so YAML files only need to mention the fields they change.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
//
// Only an explicit customPath can fail; discovered files that do not parse or
// validate are skipped.
func Load[T any](gameID, customPath string, fallback func() T) (T, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(data, fallback)
		if err != nil {
			return fallback(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(gameID + ".yaml"),
		filepath.Join("configs", gameID+".yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, fallback); err == nil {
			return cfg, nil
		}
	}

	if data := DefaultYAML(gameID); data != nil {
		if cfg, err := decode(data, fallback); err == nil {
			return cfg, nil
		}
	}
	return fallback(), nil
}

func decode[T any](data []byte, fallback func() T) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if v, ok := any(cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// IsNotFound reports whether a Load error came from a missing custom file.
func IsNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
