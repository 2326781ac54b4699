package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/minigames/internal/core"
)

// ErrBadScript is returned for input scripts that cannot be parsed.
var ErrBadScript = errors.New("invalid input script")

// maxRepeat bounds a single step's repeat count.
const maxRepeat = 1_000_000

type scriptStep struct {
	frame core.InputFrame
	count int
}

// Script is a deterministic input sequence for headless runs.
//
// The text form is a comma-separated list of steps. Each step names one or
// more actions joined by "+" and an optional "*count" repeat:
//
//	confirm,right*10,jump+fire,none*30
//
// "none" (or an empty action list) is a frame with no input.
type Script struct {
	steps []scriptStep
	total int
}

// ParseScript parses the text form of a script.
func ParseScript(text string) (Script, error) {
	var s Script
	text = strings.TrimSpace(text)
	if text == "" {
		return s, nil
	}

	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Script{}, fmt.Errorf("session: empty step: %w", ErrBadScript)
		}

		count := 1
		if name, rep, ok := strings.Cut(tok, "*"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rep))
			if err != nil || n < 1 || n > maxRepeat {
				return Script{}, fmt.Errorf("session: bad repeat %q: %w", tok, ErrBadScript)
			}
			tok, count = strings.TrimSpace(name), n
		}

		frame := core.NewInputFrame()
		for _, name := range strings.Split(tok, "+") {
			name = strings.TrimSpace(name)
			if strings.EqualFold(name, "none") {
				continue
			}
			a, ok := core.ParseAction(name)
			if !ok || a == core.ActionNone || a == core.ActionQuit {
				return Script{}, fmt.Errorf("session: unknown action %q: %w", name, ErrBadScript)
			}
			frame.Set(a)
		}

		s.steps = append(s.steps, scriptStep{frame: frame, count: count})
		s.total += count
	}
	return s, nil
}

// Len returns the number of frames in one pass of the script.
func (s Script) Len() int {
	return s.total
}

// Frame returns the input for tick i. Past the end the script repeats when
// loop is set and yields empty frames otherwise.
func (s Script) Frame(i int, loop bool) core.InputFrame {
	if s.total == 0 || i < 0 {
		return core.NewInputFrame()
	}
	if i >= s.total {
		if !loop {
			return core.NewInputFrame()
		}
		i %= s.total
	}
	for _, st := range s.steps {
		if i < st.count {
			// Copy so the caller may not mutate the script
			return core.Frame(actionsOf(st.frame)...)
		}
		i -= st.count
	}
	return core.NewInputFrame()
}

func actionsOf(f core.InputFrame) []core.Action {
	actions := make([]core.Action, 0, len(f.Actions))
	for a, on := range f.Actions {
		if on {
			actions = append(actions, a)
		}
	}
	return actions
}

// SimResult summarizes a headless run.
type SimResult struct {
	Ticks  int                    // Ticks fed to the runner
	State  core.GameState         // Final state
	Reason string                 // Game over reason, empty if the run was cut short
	Events map[core.EventKind]int // Number of events seen per kind
}

// Simulate starts the runner's game and feeds it the script for at most
// ticks steps, stopping early when the game ends.
func Simulate(r *Runner, script Script, ticks int, loop bool) SimResult {
	res := SimResult{Events: make(map[core.EventKind]int)}
	r.Start()

	for i := range ticks {
		step := r.Tick(script.Frame(i, loop))
		res.Ticks = i + 1
		for _, e := range step.Events {
			res.Events[e.Kind]++
			if e.Kind == core.EventGameOver {
				res.Reason = e.Reason
			}
		}
		if step.State.GameOver() {
			break
		}
	}

	res.State = r.State()
	return res
}
