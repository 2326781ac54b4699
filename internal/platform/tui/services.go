package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/analytics"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/session"
	"github.com/vovakirdan/minigames/internal/storage"
)

// Services are the collaborators shared by every game played through the UI.
// Store may be nil when the scores database could not be opened.
type Services struct {
	Store   *storage.Store
	Best    storage.BestScores
	Tracker analytics.Tracker
	Logger  *log.Logger
}

// NewServices wires best scores and analytics on top of an optional store.
func NewServices(store *storage.Store, analyticsBackend string, logger *log.Logger) Services {
	if logger == nil {
		logger = log.Default()
	}
	return Services{
		Store:   store,
		Best:    storage.NewStoreBest(store, logger),
		Tracker: analytics.FromConfig(analyticsBackend, store, logger),
		Logger:  logger,
	}
}

// NewRunner creates a session runner for game using these services.
func (s Services) NewRunner(game registry.Game, cfg core.RuntimeConfig) *session.Runner {
	return session.New(game, cfg, s.Best, s.Tracker, s.Logger)
}

// WithLogger returns a copy of the services logging through logger.
func (s Services) WithLogger(logger *log.Logger) Services {
	s.Logger = logger
	return s
}
