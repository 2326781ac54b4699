package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game, press B to return to the menu and play another.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	checkDifficulty()
	checkGameConfig()

	a := newApp(cmd, logToFile)
	a.openStore(false)

	runErr := tui.RunArcade(a.services(), a.runtimeConfig())

	a.Close()
	if runErr != nil {
		fail("%v", runErr)
	}
}
