package core

import "fmt"

// DrawOverlay draws the standard idle, pause and game over messages for a game.
// Nothing is drawn while playing.
func DrawOverlay(dst *Screen, s GameState, title string) {
	switch {
	case s.Phase == PhaseIdle:
		dst.DrawMessage(title, "Press Enter or Space to start")
	case s.Paused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case s.Phase == PhaseGameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	}
}
