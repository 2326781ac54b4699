package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Analytics backends selectable in AppConfig.
const (
	AnalyticsNone  = "none"
	AnalyticsLog   = "log"
	AnalyticsStore = "store"
)

// AppConfig holds arcade-wide settings. CLI flags override these.
type AppConfig struct {
	TickRate  int    `yaml:"tick_rate"`
	DBPath    string `yaml:"db_path"`
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	Analytics string `yaml:"analytics"` // none, log or store
}

// DefaultAppConfig returns the built-in arcade settings.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		TickRate:  60,
		DBPath:    "~/.arcade/scores.db",
		LogLevel:  "info",
		LogFile:   "~/.arcade/arcade.log",
		Analytics: AnalyticsStore,
	}
}

// LoadApp reads the arcade settings.
// Search order: customPath -> ~/.arcade/arcade.yaml -> defaults.
func LoadApp(customPath string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	path := customPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".arcade", "arcade.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if customPath == "" && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultAppConfig(), fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	switch cfg.Analytics {
	case AnalyticsNone, AnalyticsLog, AnalyticsStore:
	default:
		return DefaultAppConfig(), fmt.Errorf("config: analytics %q: %w", cfg.Analytics, ErrInvalid)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
