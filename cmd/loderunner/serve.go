package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/levels"
	"github.com/vovakirdan/tui-loderunner/internal/logging"
	"github.com/vovakirdan/tui-loderunner/internal/multiplayer"
	"github.com/vovakirdan/tui-loderunner/internal/platform/tui"
	"github.com/vovakirdan/tui-loderunner/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxPlayers  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and websocket feed",
	Long: `Start an SSH server where every connection plays in shared rooms,
one room per level. Players on the same level meet on the same board.

A websocket feed streams room snapshots as JSON:
  /ws?level=<id>               spectate a room
  /ws?level=<id>&name=<name>   join as a player and send commands
  /rooms                       list running rooms
  /healthz                     liveness probe

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.loderunner/host_key

Examples:
  loderunner serve
  loderunner serve --ssh :2222 --ws :8080
  loderunner serve --ws ""                # SSH only
  loderunner serve --max-players 4 --difficulty hard

Users can connect with:
  ssh localhost -p 2222`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Websocket feed address, empty to disable")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxPlayers, "max-players", 0, "Players per room")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Server.SSHAddress = flagSSHAddr
	}
	if flags.Changed("ws") {
		cfg.Server.WSAddress = flagWSAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeoutMinutes = flagIdleTimeout
	}
	if flags.Changed("max-players") {
		cfg.Server.MaxPlayers = flagMaxPlayers
	}

	logger, closer := logging.New(cfg.Logging, "loderunner")
	defer closer.Close()

	loader := levels.NewLoader(cfg.Simulation.LevelsDir)
	lvls, err := loader.LoadAll()
	if err != nil {
		return err
	}
	if _, err := loader.LoadByID(cfg.Simulation.Level); err != nil {
		return fmt.Errorf("default level: %w", err)
	}

	var (
		saver   multiplayer.ResultSaver
		results tui.ResultSource
	)
	store := openStore(cfg.Server.DBPath)
	if store != nil {
		defer store.Close()
		saver, results = store, store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := multiplayer.NewManager(ctx, cfg, loader, saver, logger)

	sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Server.SSHAddress,
		HostKeyPath: cfg.Server.HostKeyPath,
		IdleTimeout: cfg.Server.IdleTimeout(),
		TickRate:    cfg.Simulation.TickRate,
	}, manager, lvls, results, logger)
	if err != nil {
		return fmt.Errorf("creating SSH server: %w", err)
	}

	fmt.Printf("Starting Lode Runner server on %s\n", cfg.Server.SSHAddress)
	if cfg.Server.WSAddress != "" {
		fmt.Printf("Websocket feed on %s\n", cfg.Server.WSAddress)
	}
	fmt.Println("Press Ctrl+C to stop")

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- sshServer.ListenAndServe(ctx) }()
	if cfg.Server.WSAddress != "" {
		running++
		feed := web.NewServer(manager, logger)
		go func() { errCh <- feed.ListenAndServe(ctx, cfg.Server.WSAddress) }()
	}

	// The first listener to fail takes the others down with it.
	var firstErr error
	for ; running > 0; running-- {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}

	done := make(chan struct{})
	go func() {
		manager.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		logger.Warn("rooms did not stop in time")
	}

	if firstErr != nil {
		logger.Error("server stopped", "error", firstErr)
		return firstErr
	}
	logger.Info("server stopped")
	return nil
}
