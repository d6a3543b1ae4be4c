package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/survive2020/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level. The program exits when the level ends.

Difficulty options:
  easy   - Start at the lowest difficulty, progress slowly
  normal - Start at the level's configured difficulty
  hard   - Start halfway up
  fixed  - No progression

Examples:
  survive2020 play wildfires
  survive2020 play hornets --difficulty hard
  survive2020 play covid --config ./my-covid.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom level config YAML")
}

func runPlay(cmd *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown level %q, run 'survive2020 list' to see available levels", id)
	}

	e, err := openEnv(nil, id, flagConfig, true)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := e.sessionOptions()
	opts.ExitAfterLevel = true
	return runTUI(opts, id)
}
