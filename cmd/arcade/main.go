// arcade is a collection of small arcade games for the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade sim <game>        - Run a game headless with a scripted input
//	arcade scores <game>     - Show high scores for a game
//	arcade stats             - Show play statistics for every game
//	arcade serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--app-config <path>   - Arcade settings YAML (default: ~/.arcade/arcade.yaml)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/minigames/internal/games/arena"
	_ "github.com/vovakirdan/minigames/internal/games/catcher"
	_ "github.com/vovakirdan/minigames/internal/games/match3"
	_ "github.com/vovakirdan/minigames/internal/games/memory"
	_ "github.com/vovakirdan/minigames/internal/games/runner"
	_ "github.com/vovakirdan/minigames/internal/games/slingshot"
	_ "github.com/vovakirdan/minigames/internal/games/stack"
	_ "github.com/vovakirdan/minigames/internal/games/whack"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagAppConfig  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Minigames - small arcade games in your terminal",
	Long: `Minigames is a collection of small arcade games that run in your
terminal, headless, or over SSH.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  sim      - Run a game headless with a scripted input
  scores   - View high scores
  stats    - View play statistics
  serve    - Start SSH server for remote play

Examples:
  arcade list
  arcade play stack
  arcade menu
  arcade sim runner --ticks 600 --script "jump,none*40" --loop
  arcade serve --ssh :2222
  arcade scores match3`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Path to scores database (default from app config: ~/.arcade/scores.db)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagAppConfig, "app-config", "", "Path to arcade settings YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
