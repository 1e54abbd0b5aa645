package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racetrack/internal/platform/tui"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   time.Duration
	flagServeSpectate string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the racetrack SSH server",
	Long: `Start an SSH server that allows users to connect and race.

Each SSH connection gets its own session with the track picker menu.
Results are stored per-server (all users share the same results).
With a spectator address every race is also streamed over WebSocket:
  GET /races        - races in progress
  GET /races/{id}   - one race
  GET /ws/{id}      - live events of one race

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.racetrack/host_key

Examples:
  racetrack serve                           # Listen on the configured address
  racetrack serve --ssh :2222               # Listen on port 2222
  racetrack serve --host-key ./my_host_key  # Use specific host key
  racetrack serve --spectate :8080          # Also serve spectators

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting (default from config)")
	serveCmd.Flags().StringVar(&flagServeSpectate, "spectate", "", "Spectator WebSocket address (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}
	logger := newLogger(cfg)

	store := openStore(cfg)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	spectator := startSpectator(ctx, cfg, flagServeSpectate, logger)

	server, err := tui.NewSSHServer(cfg, store, spectator, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting racetrack SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
