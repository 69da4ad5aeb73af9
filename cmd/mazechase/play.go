package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/games/pacman"
	"github.com/vovakirdan/mazechase/internal/platform/tui"
	"github.com/vovakirdan/mazechase/internal/storage"
)

var (
	flagPlayer  string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the local terminal",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD/HJKL - Steer
  Enter            - Start
  P                - Pause
  R                - Restart after game over or victory
  N                - Next level after victory
  Esc              - Back to the title screen
  Tab              - Leaderboard (title screen)
  Ctrl+Y           - Copy the current frame to the clipboard
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 lives, longer power mode, ghosts start slow
  normal - ghosts start at 30% of the level speed-up
  hard   - 2 lives, shorter power mode, ghosts start fast
  fixed  - ghost speed never scales with the level

Scores live only as long as the process.

Examples:
  mazechase play
  mazechase play --difficulty easy --name ann
  mazechase play --config ./my-maze.yaml
  mazechase play --debug --log-file /tmp/mazechase.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "name", "", "Name shown on the leaderboard (default: $USER)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "mazechase-debug.log", "Where --debug writes engine events while playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if err := validateFPS(); err != nil {
		return err
	}
	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	width, height := 80, 36
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	logger, closeLog, err := playLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck
	game, err := pacman.New(cfg, pacman.WithLogger(logger))
	if err != nil {
		return err
	}

	store, err := storage.OpenMemory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: leaderboard disabled: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if err := tui.Run(game, store, rt, tui.WithPlayer(player), tui.WithClipboard()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// playLogger returns the engine logger for local play. Stderr belongs to
// the alternate screen, so --debug output goes to path instead.
func playLogger(path string) (*log.Logger, func() error, error) {
	if !flagDebug {
		return log.New(io.Discard), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "mazechase",
		Level:           log.DebugLevel,
	})
	return logger, f.Close, nil
}
