package core

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventStarted  EventKind = iota // Session moved to Playing
	EventScored                    // Score increased by Value
	EventPenalty                   // Explicit penalty rule applied (Value is the amount)
	EventDamaged                   // Player lost Value health
	EventCombo                     // Combo counter reached Value
	EventGameOver                  // Terminal state reached, Value is the final score
)

// String returns a snake_case name, used in logs and analytics.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventScored:
		return "scored"
	case EventPenalty:
		return "penalty"
	case EventDamaged:
		return "damaged"
	case EventCombo:
		return "combo"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a single notification returned from Game.Step.
type Event struct {
	Kind   EventKind
	Value  int
	Reason string
}

// FindEvent returns the first event of the given kind.
func FindEvent(events []Event, kind EventKind) (Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}
