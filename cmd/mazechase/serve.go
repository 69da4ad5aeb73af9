package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/pacman"
	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/platform/web"
	"github.com/vovakirdan/mazechase/internal/storage"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over SSH and a websocket renderer bridge",
	Long: `Start the remote hosts.

SSH: every connection plays its own game. All SSH players share one
leaderboard, keyed by SSH user name, kept in memory until the server stops.

Websocket bridge: every connection to /ws drives its own engine session.
Send {"type":"dir","dir":"up"}, {"type":"start"}, {"type":"pause"},
{"type":"menu"} or {"type":"next"}; each tick the server replies with
{"snapshot":...,"events":[...]}. GET /layout returns the maze and GET
/healthz answers "ok".

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.mazechase/host_key

Examples:
  mazechase serve                      # SSH on :23234
  mazechase serve --ssh "" --ws :8080  # websocket bridge only
  mazechase serve --ssh :2222 --ws :8080

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Websocket bridge address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagWSAddr == "" {
		return errors.New("nothing to serve: set --ssh and/or --ws")
	}
	if err := validateFPS(); err != nil {
		return err
	}
	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	logger := newLogger("mazechase")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	type server interface {
		ListenAndServe(ctx context.Context) error
	}
	var servers []server

	if flagSSHAddr != "" {
		store, storeErr := storage.OpenMemory()
		if storeErr != nil {
			logger.Warn("leaderboard disabled", "error", storeErr)
			store = nil
		}
		if store != nil {
			defer store.Close()
		}

		sshLogger := logger.WithPrefix("ssh")
		newGame := func() (core.Game, error) {
			return pacman.New(cfg, pacman.WithLogger(sshLogger))
		}
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.TickRate = flagFPS
		srv, srvErr := tui.NewSSHServer(sshCfg, newGame, store, sshLogger)
		if srvErr != nil {
			return srvErr
		}
		servers = append(servers, srv)
	}

	if flagWSAddr != "" {
		wsLogger := logger.WithPrefix("ws")
		wsCfg := web.DefaultConfig()
		wsCfg.Address = flagWSAddr
		wsCfg.TickRate = flagFPS
		srv, srvErr := web.NewServer(wsCfg, sessionFactory(cfg, wsLogger), wsLogger)
		if srvErr != nil {
			return srvErr
		}
		servers = append(servers, srv)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(servers))
	for i, srv := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.ListenAndServe(ctx); err != nil {
				errs[i] = err
				// One host failing takes the others down with it.
				stop()
			}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// sessionFactory builds live bridge sessions on the system clock.
// A fixed --seed gives every connection the same ghost choices.
func sessionFactory(cfg config.PacmanConfig, logger *log.Logger) web.SessionFactory {
	return func() (*pacman.Session, error) {
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return pacman.NewSession(cfg, pacman.WithSeed(seed), pacman.WithLogger(logger))
	}
}
