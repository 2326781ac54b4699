package core

import "time"

// RuntimeConfig contains configuration passed to games at Reset.
// Everything a game needs from the outside travels here; games read no globals.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	ConfigPath string // Optional custom game config YAML
	Difficulty string // Optional difficulty preset (easy, normal, hard, fixed)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// DeltaTime returns the fixed simulation step in seconds.
func (c RuntimeConfig) DeltaTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// TicksToDuration converts a tick count to wall-clock duration at this tick rate.
func (c RuntimeConfig) TicksToDuration(ticks int) time.Duration {
	return time.Duration(float64(ticks) * c.DeltaTime() * float64(time.Second))
}

// GameState is the externally visible snapshot of a game.
type GameState struct {
	Score    int     // Current score
	Phase    Phase   // Idle, playing or game over
	Paused   bool    // Whether the game is paused
	Health   int     // Remaining health/lives, 0 when the game has none
	TimeLeft float64 // Seconds left on the countdown, 0 when the game has none
}

// GameOver reports whether the session reached its terminal state.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Playing reports whether the session is in progress.
func (s GameState) Playing() bool {
	return s.Phase == PhasePlaying
}

// StepResult is returned by Game.Step after each simulation tick.
// Events are the only notification channel from a game to its owner.
type StepResult struct {
	State  GameState
	Events []Event
}
