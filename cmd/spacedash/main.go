// spacedash is a terminal arcade game: collect every item, reach the goal,
// dodge what moves. Steer with the keyboard, the mouse or a hand-tracking
// gesture producer.
//
// Usage:
//
//	spacedash play                 - Play locally
//	spacedash levels               - Show level progress
//	spacedash history              - Show completed runs (sqlite store)
//	spacedash settings show|set    - Inspect or change settings
//	spacedash reset                - Wipe level progress
//	spacedash serve                - Start SSH server for remote play
//	spacedash gesture              - Relay gesture frames from stdin to a running game
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--config <path>   - Game config YAML
//	--store <kind>    - Progress backend: gdata, sqlite or memory
//	--db <path>       - Database path for the sqlite backend
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dash/internal/config"
)

const appName = "spacedash"

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagConfig string
	flagStore  string
	flagDBPath string
	flagEnv    string

	gameConfig config.GameConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacedash",
	Short: "Space Dash - dodge, collect and reach the goal in your terminal",
	Long: `Space Dash is a terminal arcade game. Each level asks you to collect
every item and reach the goal zone on the right while avoiding bouncing
and orbiting obstacles.

Available commands:
  play      - Play locally
  levels    - Show unlocked levels and best runs
  history   - Show completed runs
  settings  - Show or change settings
  reset     - Wipe level progress
  serve     - Start SSH server for remote play
  gesture   - Relay gesture frames into a running game

Examples:
  spacedash play
  spacedash play --gesture
  spacedash settings set difficultyLevel hard
  spacedash serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "gdata", "Progress backend: gdata, sqlite, memory (env "+config.EnvStore+")")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.spacedash/spacedash.db", "Path to sqlite database (env "+config.EnvDB+")")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", ".env", "Optional .env file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gestureCmd)
}

// setup loads the environment and the game config before any command runs.
// Environment values apply only to flags left at their defaults.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(flagEnv); err != nil {
		return fmt.Errorf("cannot load %s: %w", flagEnv, err)
	}

	flags := cmd.Flags()
	if !flags.Changed("store") {
		flagStore = config.GetEnv(config.EnvStore, flagStore)
	}
	if !flags.Changed("db") {
		flagDBPath = config.GetEnv(config.EnvDB, flagDBPath)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	gameConfig = cfg
	return nil
}
