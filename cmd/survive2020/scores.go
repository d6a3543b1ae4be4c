package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/survive2020/internal/platform/tui"
	"github.com/vovakirdan/survive2020/internal/registry"
	"github.com/vovakirdan/survive2020/internal/storage"
)

var (
	flagCSV   bool
	flagTable bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the run history",
	Long: `Display the top runs and a summary for a level, or for every level when
none is given.

Examples:
  survive2020 scores
  survive2020 scores covid
  survive2020 scores hornets --table
  survive2020 scores --csv > runs.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagCSV, "csv", false, "Export the run history as CSV")
	scoresCmd.Flags().BoolVar(&flagTable, "table", false, "Browse the runs in an interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (best scores are kept)")
}

func runScores(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
		if !registry.Exists(id) {
			return fmt.Errorf("unknown level %q, run 'survive2020 list' to see available levels", id)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagClear:
		for _, info := range selected(id) {
			if err := store.ClearRuns(info.ID); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, "Run history cleared.")
		return nil
	case flagCSV:
		n, err := store.ExportCSV(out, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d runs exported\n", n)
		return nil
	case flagTable:
		w, h := terminalSize()
		return tui.RunScoreboard(store, id, w, h)
	}

	for _, info := range selected(id) {
		if err := printLevel(cmd, store, info); err != nil {
			return err
		}
	}
	return nil
}

// selected returns the named level, or every level when id is empty.
func selected(id string) []registry.Info {
	if info, ok := registry.Lookup(id); ok {
		return []registry.Info{info}
	}
	return registry.List()
}

func printLevel(cmd *cobra.Command, store *storage.Store, info registry.Info) error {
	out := cmd.OutOrStdout()
	stats, err := store.Stats(info.ID)
	if err != nil {
		return err
	}
	runs, err := store.TopRuns(info.ID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", info.Title)
	if len(runs) == 0 {
		fmt.Fprintln(out, "  No runs recorded yet.")
		fmt.Fprintln(out)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-8s  %s\n", "----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-8d  %-8s  %s\n", i+1, r.Score, fmt.Sprintf("%.0fs", r.Seconds), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(out, "\n  Runs: %d  Best: %d  Mean: %.1f  StdDev: %.1f  Played: %.0fs\n\n",
		stats.Runs, stats.Best, stats.Mean, stats.StdDev, stats.Seconds)
	return nil
}
