// Package session drives one game through its play sessions.
// The Runner is the platform-independent controller shared by the terminal
// UI, the SSH server and headless simulation: it starts and restarts the
// game, consumes the events of each step, and reports best scores and
// analytics through collaborators passed in by the caller.
package session

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/analytics"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/storage"
)

// Runner owns one game instance and its collaborators.
type Runner struct {
	game    registry.Game
	cfg     core.RuntimeConfig
	best    storage.BestScores
	tracker analytics.Tracker
	logger  *log.Logger

	baseSeed  int64
	restarts  int
	sessionID string
	started   bool // game_start reported and no game_end yet
	bestScore int
	newBest   bool
	ticks     int // Simulated ticks of the current session
	last      core.StepResult
}

// New creates a runner and resets the game to Idle.
// A zero cfg.Seed picks a time-based seed. Nil collaborators are replaced
// with in-memory best scores, a no-op tracker and the default logger.
func New(game registry.Game, cfg core.RuntimeConfig, best storage.BestScores, tracker analytics.Tracker, logger *log.Logger) *Runner {
	if best == nil {
		best = storage.NewMemoryBest()
	}
	if tracker == nil {
		tracker = analytics.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	r := &Runner{
		game:     game,
		cfg:      cfg,
		best:     best,
		tracker:  tracker,
		logger:   logger.With("game", game.ID()),
		baseSeed: cfg.Seed,
	}
	r.reset()
	r.bestScore = best.Best(game.ID())
	return r
}

// seed returns the RNG seed for the current session.
// Explicit seeds advance by one per restart so replays stay deterministic.
func (r *Runner) seed() int64 {
	if r.baseSeed == 0 {
		return time.Now().UnixNano()
	}
	return r.baseSeed + int64(r.restarts)
}

func (r *Runner) reset() {
	r.cfg.Seed = r.seed()
	r.game.Reset(r.cfg)
	r.sessionID = ""
	r.started = false
	r.newBest = false
	r.ticks = 0
	r.last = core.StepResult{State: r.game.State()}
}

// Start begins play from Idle. The game_start event is reported when the
// game confirms the transition on the next Tick.
func (r *Runner) Start() bool {
	if !r.game.Start() {
		return false
	}
	r.sessionID = analytics.NewSessionID()
	return true
}

// Restart abandons the current session and returns the game to Idle with a new seed.
func (r *Runner) Restart() {
	r.Abandon()
	r.restarts++
	r.reset()
	r.logger.Debug("restart", "seed", r.cfg.Seed)
}

// Tick advances the game by one step.
// Confirm or Jump starts an Idle game; that press is not forwarded to the
// game. Restart after game over resets to Idle.
func (r *Runner) Tick(in core.InputFrame) core.StepResult {
	state := r.game.State()

	switch state.Phase {
	case core.PhaseIdle:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			r.Start()
			in = core.NewInputFrame()
		}
	case core.PhaseGameOver:
		if in.Has(core.ActionRestart) {
			r.Restart()
			return r.last
		}
	}

	res := r.game.Step(in)
	if res.State.Playing() && !res.State.Paused {
		r.ticks++
	}
	for _, e := range res.Events {
		r.handle(e, res.State)
	}
	r.last = res
	return res
}

func (r *Runner) handle(e core.Event, state core.GameState) {
	id := r.game.ID()

	switch e.Kind {
	case core.EventStarted:
		if r.sessionID == "" {
			r.sessionID = analytics.NewSessionID()
		}
		r.logger.Debug("game started", "session", r.sessionID)
		r.tracker.GameStart(id, r.sessionID)
		r.started = true

	case core.EventGameOver:
		score := e.Value
		duration := r.cfg.TicksToDuration(r.ticks)
		if r.best.Submit(id, score) {
			r.newBest = true
		}
		if score > r.bestScore {
			r.bestScore = score
		}
		r.logger.Info("game over", "score", score, "best", r.bestScore, "reason", e.Reason,
			"duration", duration.Round(time.Millisecond))
		r.tracker.GameEnd(id, r.sessionID, score, duration)
		r.started = false
	}
}

// Abandon reports the end of a session the player leaves before game over.
// The score is not submitted as a best. It does nothing when no session is open.
func (r *Runner) Abandon() {
	if !r.started {
		return
	}
	r.started = false
	state := r.game.State()
	duration := r.cfg.TicksToDuration(r.ticks)
	r.logger.Info("game abandoned", "score", state.Score, "duration", duration.Round(time.Millisecond))
	r.tracker.GameEnd(r.game.ID(), r.sessionID, state.Score, duration)
}

// Game returns the driven game.
func (r *Runner) Game() registry.Game {
	return r.game
}

// Config returns the runtime config of the current session.
func (r *Runner) Config() core.RuntimeConfig {
	return r.cfg
}

// State returns the game's current state.
func (r *Runner) State() core.GameState {
	return r.game.State()
}

// Last returns the result of the most recent Tick.
func (r *Runner) Last() core.StepResult {
	return r.last
}

// Best returns the best score known for this game, including the current session.
func (r *Runner) Best() int {
	return r.bestScore
}

// NewBest reports whether the finished session set a new best score.
func (r *Runner) NewBest() bool {
	return r.newBest
}

// SessionID returns the analytics id of the current session, empty while Idle.
func (r *Runner) SessionID() string {
	return r.sessionID
}

// Duration returns the simulated play time of the current session.
func (r *Runner) Duration() time.Duration {
	return r.cfg.TicksToDuration(r.ticks)
}

// Render draws the game into dst.
func (r *Runner) Render(dst *core.Screen) {
	r.game.Render(dst)
}
