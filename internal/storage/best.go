package storage

import (
	"sync"

	"github.com/charmbracelet/log"
)

// BestScores reads and updates the per-game best score.
// Implementations never fail the caller: unavailable storage reads as 0.
type BestScores interface {
	// Best returns the best score for a game, 0 if unknown.
	Best(gameID string) int
	// Submit records a finished run and reports whether it set a new best.
	Submit(gameID string, score int) bool
}

// StoreBest keeps best scores and run history in SQLite.
// Errors are logged and swallowed; a nil Store behaves as empty storage.
type StoreBest struct {
	store  *Store
	logger *log.Logger
}

// NewStoreBest wraps a Store. The store may be nil when the database could not be opened.
func NewStoreBest(store *Store, logger *log.Logger) *StoreBest {
	if logger == nil {
		logger = log.Default()
	}
	return &StoreBest{store: store, logger: logger}
}

// Best implements BestScores.
func (b *StoreBest) Best(gameID string) int {
	if b.store == nil {
		return 0
	}
	score, err := b.store.BestScore(gameID)
	if err != nil {
		b.logger.Warn("best score unavailable", "game", gameID, "err", err)
		return 0
	}
	return score
}

// Submit implements BestScores. Runs with a zero score are not recorded.
func (b *StoreBest) Submit(gameID string, score int) bool {
	if b.store == nil || score <= 0 {
		return false
	}
	if _, err := b.store.SaveScore(gameID, score); err != nil {
		b.logger.Warn("score not saved", "game", gameID, "score", score, "err", err)
	}
	isNew, err := b.store.SubmitBest(gameID, score)
	if err != nil {
		b.logger.Warn("best score not saved", "game", gameID, "score", score, "err", err)
		return false
	}
	return isNew
}

// MemoryBest keeps best scores in memory. Used by headless runs and tests.
type MemoryBest struct {
	mu     sync.Mutex
	scores map[string]int
}

// NewMemoryBest creates an empty in-memory best score table.
func NewMemoryBest() *MemoryBest {
	return &MemoryBest{scores: make(map[string]int)}
}

// Best implements BestScores.
func (m *MemoryBest) Best(gameID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[gameID]
}

// Submit implements BestScores.
func (m *MemoryBest) Submit(gameID string, score int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score <= m.scores[gameID] {
		return false
	}
	m.scores[gameID] = score
	return true
}

var (
	_ BestScores = (*StoreBest)(nil)
	_ BestScores = (*MemoryBest)(nil)
)
