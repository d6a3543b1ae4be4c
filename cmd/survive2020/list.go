package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/survive2020/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	levels := registry.List()
	out := cmd.OutOrStdout()
	if len(levels) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return
	}

	maxIDLen := 2
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Fprintln(out, "Available levels:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  #  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  -  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, l := range levels {
		fmt.Fprintf(out, "  %d  %-*s  %s\n", l.Number, maxIDLen, l.ID, l.Title)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'survive2020 play <id>' to play a level.")
}
