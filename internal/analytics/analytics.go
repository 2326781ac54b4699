// Package analytics reports game_start and game_end events.
// Trackers are fire-and-forget: they never return errors to the game loop.
package analytics

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/storage"
)

// Event names written by trackers.
const (
	EventGameStart = "game_start"
	EventGameEnd   = "game_end"
)

// Tracker receives session lifecycle events.
type Tracker interface {
	GameStart(gameID, sessionID string)
	GameEnd(gameID, sessionID string, score int, duration time.Duration)
}

// NewSessionID returns a fresh identifier for one play session.
func NewSessionID() string {
	return uuid.NewString()
}

// Nop discards every event.
type Nop struct{}

func (Nop) GameStart(gameID, sessionID string)                                  {}
func (Nop) GameEnd(gameID, sessionID string, score int, duration time.Duration) {}

// LogTracker writes events as structured log lines.
type LogTracker struct {
	logger *log.Logger
}

// NewLogTracker creates a tracker that logs at info level.
func NewLogTracker(logger *log.Logger) *LogTracker {
	if logger == nil {
		logger = log.Default()
	}
	return &LogTracker{logger: logger.WithPrefix("analytics")}
}

func (t *LogTracker) GameStart(gameID, sessionID string) {
	t.logger.Info(EventGameStart, "game", gameID, "session", sessionID)
}

func (t *LogTracker) GameEnd(gameID, sessionID string, score int, duration time.Duration) {
	t.logger.Info(EventGameEnd, "game", gameID, "session", sessionID,
		"score", score, "duration", duration.Round(time.Millisecond))
}

// StoreTracker appends events to the SQLite sessions table.
// Write failures are logged at warn and dropped.
type StoreTracker struct {
	store  *storage.Store
	logger *log.Logger
}

// NewStoreTracker creates a tracker backed by store.
func NewStoreTracker(store *storage.Store, logger *log.Logger) *StoreTracker {
	if logger == nil {
		logger = log.Default()
	}
	return &StoreTracker{store: store, logger: logger}
}

func (t *StoreTracker) GameStart(gameID, sessionID string) {
	t.record(storage.SessionEvent{SessionID: sessionID, GameID: gameID, Event: EventGameStart})
}

func (t *StoreTracker) GameEnd(gameID, sessionID string, score int, duration time.Duration) {
	t.record(storage.SessionEvent{
		SessionID: sessionID,
		GameID:    gameID,
		Event:     EventGameEnd,
		Score:     score,
		Duration:  duration,
	})
}

func (t *StoreTracker) record(e storage.SessionEvent) {
	if t.store == nil {
		return
	}
	if err := t.store.RecordEvent(e); err != nil {
		t.logger.Warn("analytics event dropped", "event", e.Event, "game", e.GameID, "err", err)
	}
}

// Multi fans events out to several trackers in order.
type Multi []Tracker

func (m Multi) GameStart(gameID, sessionID string) {
	for _, t := range m {
		t.GameStart(gameID, sessionID)
	}
}

func (m Multi) GameEnd(gameID, sessionID string, score int, duration time.Duration) {
	for _, t := range m {
		t.GameEnd(gameID, sessionID, score, duration)
	}
}

// FromConfig builds the tracker selected by the app config analytics setting.
// The store backend also logs at debug level; without a store it falls back to logging.
func FromConfig(backend string, store *storage.Store, logger *log.Logger) Tracker {
	switch backend {
	case config.AnalyticsNone:
		return Nop{}
	case config.AnalyticsLog:
		return NewLogTracker(logger)
	default:
		if store == nil {
			return NewLogTracker(logger)
		}
		return Multi{NewStoreTracker(store, logger), debugTracker{logger}}
	}
}

// debugTracker mirrors events into the log at debug level.
type debugTracker struct {
	logger *log.Logger
}

func (t debugTracker) GameStart(gameID, sessionID string) {
	if t.logger != nil {
		t.logger.Debug(EventGameStart, "game", gameID, "session", sessionID)
	}
}

func (t debugTracker) GameEnd(gameID, sessionID string, score int, duration time.Duration) {
	if t.logger != nil {
		t.logger.Debug(EventGameEnd, "game", gameID, "session", sessionID, "score", score, "duration", duration)
	}
}

var (
	_ Tracker = Nop{}
	_ Tracker = (*LogTracker)(nil)
	_ Tracker = (*StoreTracker)(nil)
	_ Tracker = Multi(nil)
)
