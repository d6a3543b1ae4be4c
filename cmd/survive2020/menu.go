package main

import (
	"github.com/spf13/cobra"
)

func runMenu(cmd *cobra.Command, args []string) error {
	e, err := openEnv(nil, "", "", true)
	if err != nil {
		return err
	}
	defer e.Close()

	return runTUI(e.sessionOptions(), "")
}
