package core

// Phase is the lifecycle stage of one play session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns a lowercase name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Lifecycle tracks the phase, score, pause flag and pending events of a game.
// Games embed it. The only transitions are Idle -> Playing (Start) and
// Playing -> GameOver (End); Reset returns to Idle.
type Lifecycle struct {
	phase  Phase
	score  int
	paused bool
	ticks  int
	events []Event
}

// ResetLifecycle returns to Idle and clears score, ticks and pending events.
func (l *Lifecycle) ResetLifecycle() {
	l.phase = PhaseIdle
	l.score = 0
	l.paused = false
	l.ticks = 0
	l.events = l.events[:0]
}

// Start moves from Idle to Playing. Returns false from any other phase.
func (l *Lifecycle) Start() bool {
	if l.phase != PhaseIdle {
		return false
	}
	l.phase = PhasePlaying
	l.emit(Event{Kind: EventStarted})
	return true
}

// End moves from Playing to GameOver with the given reason.
// Returns false if the game is not playing.
func (l *Lifecycle) End(reason string) bool {
	if l.phase != PhasePlaying {
		return false
	}
	l.phase = PhaseGameOver
	l.paused = false
	l.emit(Event{Kind: EventGameOver, Value: l.score, Reason: reason})
	return true
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	return l.phase
}

// IsPlaying reports whether the game is in progress.
func (l *Lifecycle) IsPlaying() bool {
	return l.phase == PhasePlaying
}

// Score returns the current score.
func (l *Lifecycle) Score() int {
	return l.score
}

// AddScore adds a positive amount to the score and emits EventScored.
// Non-positive amounts are ignored: the score never decreases.
func (l *Lifecycle) AddScore(delta int, reason string) {
	if delta <= 0 {
		return
	}
	l.score += delta
	l.emit(Event{Kind: EventScored, Value: delta, Reason: reason})
}

// Emit records a game-specific event for the current tick.
func (l *Lifecycle) Emit(e Event) {
	l.emit(e)
}

func (l *Lifecycle) emit(e Event) {
	l.events = append(l.events, e)
}

// TogglePause flips the pause flag while playing.
func (l *Lifecycle) TogglePause() {
	if l.phase == PhasePlaying {
		l.paused = !l.paused
	}
}

// Paused reports whether the game is paused.
func (l *Lifecycle) Paused() bool {
	return l.paused
}

// Advance counts one simulated tick and returns whether simulation should
// run this tick (playing and not paused). It also handles ActionPause.
func (l *Lifecycle) Advance(in InputFrame) bool {
	if in.Has(ActionPause) {
		l.TogglePause()
	}
	if l.phase != PhasePlaying || l.paused {
		return false
	}
	l.ticks++
	return true
}

// Ticks returns the number of simulated ticks since Start.
func (l *Lifecycle) Ticks() int {
	return l.ticks
}

// Result drains pending events into a StepResult with the given state.
func (l *Lifecycle) Result(state GameState) StepResult {
	var events []Event
	if len(l.events) > 0 {
		events = make([]Event, len(l.events))
		copy(events, l.events)
		l.events = l.events[:0]
	}
	return StepResult{State: state, Events: events}
}

// BaseState fills the lifecycle part of a GameState.
func (l *Lifecycle) BaseState() GameState {
	return GameState{
		Score:  l.score,
		Phase:  l.phase,
		Paused: l.paused,
	}
}
