package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/platform/tui"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

// logTarget selects where a command writes its log.
type logTarget int

const (
	logToStderr logTarget = iota
	logToFile             // Alt-screen commands must not write to the terminal
)

// app holds the process-wide collaborators built from flags and app config.
type app struct {
	cfg     config.AppConfig
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
}

// newApp loads the app config, applies flag overrides and builds the logger.
// The scores database is opened lazily by openStore.
func newApp(cmd *cobra.Command, target logTarget) *app {
	cfg, err := config.LoadApp(flagAppConfig)
	if err != nil {
		fail("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	a := &app{cfg: cfg}
	a.logger = a.newLogger(target)
	log.SetDefault(a.logger)
	return a
}

func (a *app) newLogger(target logTarget) *log.Logger {
	var w io.Writer = os.Stderr
	if target == logToFile {
		w = io.Discard
		if f, err := openLogFile(a.cfg.LogFile); err == nil {
			a.logFile = f
			w = f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	level, err := log.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", a.cfg.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// openStore opens the scores database. When required is false a failure is
// logged and play continues without persistence.
func (a *app) openStore(required bool) *storage.Store {
	store, err := storage.Open(a.cfg.DBPath)
	if err != nil {
		if required {
			fail("%v", err)
		}
		a.logger.Warn("could not open scores database", "path", a.cfg.DBPath, "err", err)
		return nil
	}
	a.store = store
	return store
}

// services wires best scores and analytics on the opened store.
func (a *app) services() tui.Services {
	return tui.NewServices(a.store, a.cfg.Analytics, a.logger)
}

// runtimeConfig builds the per-game settings for a terminal of the current size.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = a.cfg.TickRate
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty
	return cfg
}

// checkDifficulty rejects unknown presets before any game starts.
func checkDifficulty() {
	if flagDifficulty == "" {
		return
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fail("%v", err)
	}
}

// checkGameConfig fails before any game starts when --config cannot be
// loaded for one of the given games, or for every game when none are given.
func checkGameConfig(gameIDs ...string) {
	if len(gameIDs) == 0 {
		for _, info := range registry.List() {
			gameIDs = append(gameIDs, info.ID)
		}
	}
	if err := gameConfigError(flagConfig, gameIDs); err != nil {
		fail("%v", err)
	}
}

func gameConfigError(path string, gameIDs []string) error {
	if path == "" {
		return nil
	}
	for _, id := range gameIDs {
		err := config.Check(id, path)
		if config.IsNotFound(err) {
			return fmt.Errorf("config file %s not found", path)
		}
		if err != nil {
			return fmt.Errorf("%s config: %w", id, err)
		}
	}
	return nil
}

// Close releases the store and the log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing scores database", "err", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
