package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dash/internal/config"
	"github.com/vovakirdan/space-dash/internal/progress"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		b := openBackend(newLogger(appName))
		defer b.Close()

		s, err := progress.LoadSettings(b.kv)
		if err != nil {
			return err
		}
		for _, key := range config.SettingKeys() {
			v, _ := s.Get(key)
			fmt.Printf("  %-20s %s\n", key, v)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it.

Examples:
  spacedash settings set difficultyLevel hard
  spacedash settings set livesEnabled true
  spacedash settings set playerSpeed 9`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		b := openBackend(newLogger(appName))
		defer b.Close()

		s, err := progress.LoadSettings(b.kv)
		if err != nil {
			return err
		}
		s, err = s.With(args[0], args[1])
		if err != nil {
			return err
		}
		if err := progress.SaveSettings(b.kv, s); err != nil {
			return err
		}
		v, _ := s.Get(args[0])
		fmt.Printf("%s = %s\n", args[0], v)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		b := openBackend(newLogger(appName))
		defer b.Close()
		return progress.SaveSettings(b.kv, config.DefaultSettings())
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)
}
