// mazechase is an arcade maze-chase game for the terminal.
//
// Usage:
//
//	mazechase play           - Play in the local terminal
//	mazechase serve          - Serve games over SSH and/or a websocket bridge
//	mazechase sim            - Run a headless session and print the result
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--debug               - Log engine lifecycle events (play writes them to --log-file)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mazechase/internal/config"
)

var (
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazechase",
	Short: "Maze Chase - eat the dots, dodge the ghosts",
	Long: `Maze Chase is a terminal arcade game: steer through the maze, eat every
dot and pellet, and stay away from the four ghosts. Pellets turn the tables
for a few seconds.

Available commands:
  play   - Play in this terminal
  serve  - Host games over SSH and a websocket renderer bridge
  sim    - Run a headless session and print the final snapshot

Examples:
  mazechase play
  mazechase play --difficulty hard
  mazechase serve --ssh :2222 --ws :8080
  mazechase sim --ticks 5000 --seed 42 --autopilot`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log engine lifecycle events")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig reads the game config and applies the difficulty preset.
func loadConfig(path, difficulty string) (config.PacmanConfig, error) {
	preset, ok := config.ParsePreset(difficulty)
	if !ok {
		return config.PacmanConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", difficulty)
	}
	cfg, err := config.LoadPacman(path)
	if err != nil {
		return config.PacmanConfig{}, err
	}
	config.ApplyPacmanPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.PacmanConfig{}, err
	}
	return cfg, nil
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func validateFPS() error {
	if flagFPS <= 0 || flagFPS > 1000 {
		return fmt.Errorf("--fps must be between 1 and 1000, got %d", flagFPS)
	}
	return nil
}
