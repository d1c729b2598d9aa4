package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slots/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available machines",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	machines := registry.List()

	if len(machines) == 0 {
		fmt.Println("No machines available.")
		return
	}

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, m := range machines {
		maxIDLen = max(maxIDLen, len(m.ID))
		maxTitleLen = max(maxTitleLen, len(m.Title))
	}

	fmt.Println("Available machines:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Summary")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------")
	for _, m := range machines {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, m.ID, maxTitleLen, m.Title, m.Summary)
	}

	fmt.Println()
	fmt.Println("Run 'slots play <id>' to play a machine.")
}
