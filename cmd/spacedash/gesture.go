package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dash/internal/config"
	"github.com/vovakirdan/space-dash/internal/gesture"
)

var flagRelayURL string

var gestureCmd = &cobra.Command{
	Use:   "gesture",
	Short: "Relay gesture frames from stdin to a running game",
	Long: `Read one JSON frame per line from stdin and forward it to the gesture
bridge of a game started with 'spacedash play --gesture'. Hand trackers
that print frames can be piped straight in.

Frame format:
  {"type":"pointing","x":0.4,"y":0.6}   x and y normalized to [0,1]
  {"type":"open_hand"}                   pause, or restart after game over
  {"type":"none"}                        no hand in view

Examples:
  tracker.py | spacedash gesture
  echo '{"type":"open_hand"}' | spacedash gesture --url ws://127.0.0.1:8765/ws`,
	Args: cobra.NoArgs,
	RunE: runGesture,
}

func init() {
	gestureCmd.Flags().StringVar(&flagRelayURL, "url", "", "Bridge URL (default from config or env "+config.EnvGestureAddr+")")
}

func runGesture(cmd *cobra.Command, _ []string) error {
	logger := newLogger("gesture")

	url := flagRelayURL
	if url == "" {
		addr := config.GetEnv(config.EnvGestureAddr, gameConfig.Gesture.Address)
		url = "ws://" + addr + gameConfig.Gesture.Path
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client, err := gesture.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer client.Close()
	logger.Info("relaying frames", "url", url)

	return relay(ctx, bufio.NewScanner(os.Stdin), client, logger.Warn)
}

// relay forwards valid lines until input ends or ctx is cancelled.
func relay(ctx context.Context, sc *bufio.Scanner, client *gesture.Client, warn func(msg any, keyvals ...any)) error {
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		msg, err := gesture.Decode([]byte(line))
		if err != nil {
			warn("skipping line", "error", err)
			continue
		}
		if err := client.Send(msg); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	return nil
}
