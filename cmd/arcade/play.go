package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/platform/tui"
	"github.com/vovakirdan/minigames/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Enter/Space      - Start
  Arrows/WASD      - Move, aim, cursor
  Space            - Jump, drop, launch, whack
  F/X              - Fire
  P/Esc            - Pause
  R                - Restart (after game over)
  B                - Back (when paused or after game over)
  Ctrl+S           - Save a text screenshot to ~/.arcade/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play stack
  arcade play runner --difficulty easy
  arcade play arena --difficulty hard
  arcade play catcher --seed 42
  arcade play slingshot --config ./my-slingshot.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	checkDifficulty()
	checkGameConfig(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fail("%v\nRun 'arcade list' to see available games.", err)
	}

	a := newApp(cmd, logToFile)
	a.openStore(false)

	a.logger.Info("play", "game", gameID, "seed", flagSeed, "difficulty", flagDifficulty)
	runErr := tui.Run(game, a.services(), a.runtimeConfig())

	// Close store before potential exit
	a.Close()
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
