package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagResetHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe level progress",
	Long: `Lock every level but the first and forget best runs.
Settings are kept. With --history the local player's sqlite run history is
cleared as well.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also clear the run history (sqlite store)")
}

func runReset(_ *cobra.Command, _ []string) error {
	logger := newLogger(appName)
	b := openBackend(logger)
	defer b.Close()

	if err := b.tracker(logger).Reset(); err != nil {
		return err
	}

	if flagResetHistory {
		store, err := requireSQLite(b)
		if err != nil {
			return err
		}
		if err := store.ClearRuns(localPlayer()); err != nil {
			return err
		}
	}

	fmt.Println("Progress reset.")
	return nil
}
