package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slots/internal/platform/tui"
	"github.com/vovakirdan/tui-slots/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [machine]",
	Short: "Play a machine",
	Long: `Start the given machine, or the default "slots" machine.

Controls:
  Space      - Spin, or stop early while spinning
  S          - Stop early
  +/Up       - Insert a token into the bet (bridge modes)
  -/Down     - Remove a token from the bet (bridge modes)
  R          - Start a new game on the bridge
  N          - Start or end a bridge round
  P          - Pause
  ?          - Full help
  Q/Ctrl+C   - Quit

Pace options:
  relaxed - Slower reels, longer spins, wider reel stagger
  normal  - Values from slots.yaml
  turbo   - Fast reels, short spins
  fixed   - All reels start together

Examples:
  slots play
  slots play slots_mini
  slots play --pace turbo --seed 7
  slots play --config ./my-slots.yaml --log /tmp/slots.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	id := "slots"
	if len(args) == 1 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return fmt.Errorf("unknown machine %q (run 'slots list')", id)
	}

	logger, closer, err := openLog()
	if err != nil {
		return err
	}
	defer closer.Close()

	if _, err := configureMachines(logger); err != nil {
		return err
	}

	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	logger.Info("starting machine", "id", id, "seed", flagSeed, "fps", flagFPS)
	if err := tui.Run(game, runtimeConfig()); err != nil {
		return fmt.Errorf("running machine: %w", err)
	}
	return nil
}
