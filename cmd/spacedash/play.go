package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-dash/internal/config"
	"github.com/vovakirdan/space-dash/internal/core"
	"github.com/vovakirdan/space-dash/internal/games/spacedash"
	"github.com/vovakirdan/space-dash/internal/gesture"
	"github.com/vovakirdan/space-dash/internal/platform/tui"
	"github.com/vovakirdan/space-dash/internal/progress"
)

var (
	flagGesture     bool
	flagGestureAddr string
	flagLevel       int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Space Dash",
	Long: `Start a local game.

Controls:
  WASD/Arrows  - Move
  Mouse        - Hold the left button to pull the ship toward the pointer
  Space/Enter  - Restart after game over
  P/Esc        - Pause
  R            - Restart level
  L            - Level menu
  V / T / F / Z - Toggle lives mode, trail, particles, screen shake
  Ctrl+S       - Screenshot to ~/.spacedash/screenshots
  Q/Ctrl+C     - Quit

With --gesture a WebSocket bridge accepts frames such as
  {"type":"pointing","x":0.4,"y":0.6}
  {"type":"open_hand"}
  {"type":"none"}
from a hand-tracking producer.

Examples:
  spacedash play
  spacedash play --level 3
  spacedash play --gesture --gesture-addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagGesture, "gesture", false, "Start the gesture WebSocket bridge")
	playCmd.Flags().StringVar(&flagGestureAddr, "gesture-addr", "", "Gesture bridge address (env "+config.EnvGestureAddr+")")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start on an unlocked level")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger("spacedash.log")
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	if width < spacedash.MinScreenW || height < spacedash.MinScreenH {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, at least %dx%d is needed\n",
			width, height, spacedash.MinScreenW, spacedash.MinScreenH)
	}

	b := openBackend(logger)
	defer b.Close()
	tracker := b.tracker(logger)

	settings, err := progress.LoadSettings(b.kv)
	if err != nil {
		logger.Warn("saved settings unreadable, using defaults", "error", err)
	}

	game := spacedash.New(gameConfig, tracker, spacedash.WithSettings(settings))

	opts := tui.Options{
		Game:    game,
		Tracker: tracker,
		Store:   b.kv,
		Logger:  logger,
		KeyHold: time.Duration(gameConfig.Input.KeyHoldMS) * time.Millisecond,
	}
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		opts.ScreenshotDir = filepath.Join(home, ".spacedash", "screenshots")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if flagGesture {
		addr := flagGestureAddr
		if addr == "" {
			addr = config.GetEnv(config.EnvGestureAddr, gameConfig.Gesture.Address)
		}
		rate := gesture.WithFPS(int(settings.FPSLimit))
		if settings.FPSLimit.Unlimited() {
			rate = gesture.WithInterval(0)
		}
		slot := gesture.NewSlot()
		bridge := gesture.NewServer(slot, game.Arena(),
			gesture.WithLogger(logger.WithPrefix("gesture")),
			gesture.WithPath(gameConfig.Gesture.Path),
			rate,
		)
		go func() {
			if err := bridge.ListenAndServe(ctx, addr); err != nil {
				logger.Error("gesture bridge stopped", "error", err)
			}
		}()
		opts.Gesture = slot
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	model := tui.NewModel(opts, rc)
	if flagLevel > 0 {
		if flagLevel > tracker.Watermark() {
			return fmt.Errorf("level %d is locked, highest unlocked is %d", flagLevel, tracker.Watermark())
		}
		model = model.StartAt(flagLevel)
	}

	return tui.RunModel(model)
}
