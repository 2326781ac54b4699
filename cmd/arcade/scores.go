package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/registry"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

The best score is kept separately from the run history: --clear removes
the history but never lowers the best score.

Examples:
  arcade scores stack
  arcade scores runner --limit 20
  arcade scores whack --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history for this game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		fail("%v\nRun 'arcade list' to see available games.", err)
	}
	title := game.Title()

	a := newApp(cmd, logToStderr)
	store := a.openStore(true)
	defer a.Close()

	if flagScoresClear {
		top, err := store.HighScore(gameID)
		if err != nil {
			a.Close()
			fail("retrieving scores: %v", err)
		}
		if err := store.ClearScores(gameID); err != nil {
			a.Close()
			fail("clearing scores: %v", err)
		}
		fmt.Printf("Cleared run history for %s (top run was %d).\n", title, top)
		if best, err := store.BestScore(gameID); err == nil && best > 0 {
			fmt.Printf("Best score %d is kept.\n", best)
		}
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		a.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
