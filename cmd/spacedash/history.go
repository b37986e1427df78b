package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dash/internal/storage"
)

var (
	flagHistoryLevel  int
	flagHistoryLimit  int
	flagHistoryPlayer string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed runs",
	Long: `Display completed levels recorded in the sqlite store.

Without --level the most recent runs are listed. With --level the best
runs of that level across all players are listed, fewest deaths first.

Examples:
  spacedash history --store sqlite
  spacedash history --store sqlite --level 4
  spacedash history --store sqlite --player alice`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLevel, "level", 0, "Show the best runs of this level")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only this player's runs (recent mode)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	b := openBackend(newLogger(appName))
	defer b.Close()

	store, err := requireSQLite(b)
	if err != nil {
		return err
	}

	var runs []storage.Run
	if flagHistoryLevel > 0 {
		runs, err = store.BestRuns(flagHistoryLevel, flagHistoryLimit)
		fmt.Printf("Best runs - level %d\n\n", flagHistoryLevel)
	} else {
		runs, err = store.RecentRuns(flagHistoryPlayer, flagHistoryLimit)
		fmt.Println("Recent runs")
		fmt.Println()
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %-5s  %-6s  %-6s  %s\n", "Player", "Level", "Deaths", "Time", "Date")
	fmt.Printf("  %-12s  %-5s  %-6s  %-6s  %s\n", "------", "-----", "------", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-12s  %-5d  %-6d  %-6s  %s\n",
			r.Player, r.Level, r.Deaths, fmt.Sprintf("%ds", r.Seconds), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
