package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slots/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a machine interactively",
	Long: `Opens the machine picker. Esc in a machine returns to the menu once
the reels have stopped; Tab in the menu lists the symbols and their grid
indices.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closer, err := openLog()
	if err != nil {
		return err
	}
	defer closer.Close()

	catalog, err := configureMachines(logger)
	if err != nil {
		return err
	}

	if err := tui.RunSession(runtimeConfig(), catalog); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
