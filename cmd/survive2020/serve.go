package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/survive2020/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level-select menu.
Scores are stored per-server (all users share the same high scores).
Sound is disabled for remote sessions and logs go to stderr.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.survive2020/host_key

Examples:
  survive2020 serve                           # Listen on :23234
  survive2020 serve --ssh :2222               # Listen on port 2222
  survive2020 serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(os.Stderr, "", "", false)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Runtime = e.runtime()
	cfg.KeyHold = flagKeyHold

	server, err := tui.NewSSHServer(cfg, e.store, e.loader, e.logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Starting Survive 2020 SSH server on %s\n", cfg.Address)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
	return server.ListenAndServe()
}
