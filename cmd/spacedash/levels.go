package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dash/internal/platform/tui"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show level progress",
	Long: `List every level with its unlock state and best run.

A level's best run is the completion with the fewest deaths.

Examples:
  spacedash levels
  spacedash levels --store sqlite`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	logger := newLogger(appName)
	b := openBackend(logger)
	defer b.Close()

	tracker := b.tracker(logger)
	fmt.Printf("Space Dash - %d of %d levels unlocked\n\n", tracker.Watermark(), tracker.MaxLevel())
	fmt.Print(tui.FormatLevels(tracker.Levels()))
}
