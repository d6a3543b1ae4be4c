// survive2020 is a collection of three arcade levels played in the
// terminal: put out wildfires, swat murder hornets and survive covid.
//
// Usage:
//
//	survive2020                  - Level-select menu
//	survive2020 list             - List available levels
//	survive2020 play <level>     - Play a level directly
//	survive2020 scores [level]   - Show the run history (--csv to export)
//	survive2020 serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.survive2020/scores.db)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--config-dir <dir>    - Directory with <level>.yaml tuning files
//	--watch               - Reload tuning files when they change
//	--mute                - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/survive2020/internal/games/covid"
	_ "github.com/vovakirdan/survive2020/internal/games/hornets"
	_ "github.com/vovakirdan/survive2020/internal/games/wildfires"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagDifficulty string
	flagConfigDir  string
	flagWatch      bool
	flagMute       bool
	flagKeyHold    int
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "survive2020",
	Short: "Survive 2020 - three arcade levels in your terminal",
	Long: `Survive 2020 is a collection of three short arcade levels:

  1. Wildfires - spray water on the fires before they take over
  2. Hornets   - swat the murder hornets with the mouse
  3. Covid     - stay healthy for as long as you can

Running without a command opens the level-select menu.

Controls:
  WASD        - Move
  Left/Right  - Turn
  Space       - Spray
  Mouse       - Swat (Hornets)
  1-5         - Abilities
  P           - Pause
  Esc         - Back to menu
  Q/Ctrl+C    - Quit`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.survive2020/scores.db", "Path to scores database")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagConfigDir, "config-dir", "", "Directory with level tuning files (default ./configs)")
	pf.BoolVar(&flagWatch, "watch", false, "Reload level tuning files when they change")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.IntVar(&flagKeyHold, "key-hold", 0, "Ticks a key press counts as held (0 = default)")
	pf.StringVar(&flagLogFile, "log-file", "~/.survive2020/survive2020.log", "Log file for interactive commands")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
