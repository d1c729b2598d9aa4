package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slots/internal/sprite"
)

var spritesCmd = &cobra.Command{
	Use:   "sprites",
	Short: "Symbol sprite tools",
}

var spritesExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the built-in symbol sprites as PNG files",
	Long: `Writes <name>.png for every symbol. Edit the files and point
display.sprites_dir at the directory to use them in place of the built-in
art.`,
	Args: cobra.ExactArgs(1),
	RunE: runSpritesExport,
}

func init() {
	spritesCmd.AddCommand(spritesExportCmd)
}

func runSpritesExport(_ *cobra.Command, args []string) error {
	paths, err := sprite.Builtin().Export(args[0])
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	fmt.Printf("Wrote %d sprites.\n", len(paths))
	return nil
}
