// slots is a terminal slot machine: animated reels driven by a tween
// scheduler, with results from a random source or a game backend bridge.
//
// Usage:
//
//	slots list                  - List available machines
//	slots play [machine]        - Play a machine (default: slots)
//	slots menu                  - Pick a machine interactively
//	slots serve                 - Start SSH server for remote play
//	slots bridge serve          - Serve recorded snapshots over HTTP
//	slots sprites export <dir>  - Write the symbol sprites as PNG files
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible spins
//	--config <path>   - Custom slots.yaml
//	--pace <preset>   - relaxed, normal, turbo or fixed
//	--log <path>      - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import machines to register them
	_ "github.com/vovakirdan/tui-slots/internal/games/slots"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagConfig string
	flagPace   string
	flagLog    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slots",
	Short: "Slots - a slot machine in your terminal",
	Long: `Slots animates a grid of reels in the terminal. Each spin winds the
reels up, scrolls them at a fixed speed and settles them onto the result
grid one reel at a time.

Results come from a local random source, a game backend over HTTP, or a
directory of recorded snapshots (see the bridge section of slots.yaml).

Examples:
  slots play
  slots play slots_mini --pace turbo
  slots menu --seed 42
  slots serve --ssh :2222
  slots bridge serve --cache ./cache --addr :8787
  slots sprites export ./sprites`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom slots.yaml")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Pace preset: relaxed, normal, turbo, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "", "Write debug logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bridgeCmd)
	rootCmd.AddCommand(spritesCmd)
}
