package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/analytics"
	"github.com/vovakirdan/minigames/internal/registry"
)

var flagStatsSessions int

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show play statistics",
	Long: `Display games played, best and average score for every game.
With a game id, also lists the most recent session events recorded by
the store analytics backend.

Examples:
  arcade stats
  arcade stats memory --sessions 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsSessions, "sessions", 10, "Number of recent session events to show for one game")
}

func runStats(cmd *cobra.Command, args []string) {
	a := newApp(cmd, logToStderr)
	store := a.openStore(true)
	defer a.Close()

	if len(args) == 1 {
		showGameStats(a, args[0])
		return
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		a.Close()
		fail("retrieving stats: %v", err)
	}

	fmt.Printf("  %-12s  %6s  %8s  %8s  %s\n", "Game", "Played", "Best", "Avg", "Last played")
	fmt.Printf("  %-12s  %6s  %8s  %8s  %s\n", "----", "------", "----", "---", "-----------")
	for _, g := range registry.List() {
		s, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-12s  %6d  %8s  %8s  %s\n", g.ID, 0, "-", "-", "never")
			continue
		}
		fmt.Printf("  %-12s  %6d  %8d  %8.0f  %s\n",
			g.ID, s.GamesCount, s.BestScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func showGameStats(a *app, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		a.Close()
		fail("%v\nRun 'arcade list' to see available games.", err)
	}

	s, err := a.store.GetGameStats(gameID)
	if err != nil {
		a.Close()
		fail("retrieving stats: %v", err)
	}

	fmt.Printf("Statistics - %s\n", game.Title())
	fmt.Println()
	fmt.Printf("  Played:  %d\n", s.GamesCount)
	fmt.Printf("  Best:    %d\n", s.BestScore)
	fmt.Printf("  Average: %.1f\n", s.AvgScore)
	fmt.Printf("  Total:   %d\n", s.TotalScore)
	if !s.LastPlayed.IsZero() {
		fmt.Printf("  Last:    %s\n", s.LastPlayed.Format("2006-01-02 15:04"))
	}

	events, err := a.store.RecentSessions(gameID, flagStatsSessions)
	if err != nil || len(events) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent sessions:")
	for _, e := range events {
		line := fmt.Sprintf("  %s  %-10s  %s", e.CreatedAt.Format("2006-01-02 15:04"), e.Event, shortID(e.SessionID))
		if e.Event == analytics.EventGameEnd {
			line += fmt.Sprintf("  score %d  %s", e.Score, e.Duration)
		}
		fmt.Println(line)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
