package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slots/internal/bridge"
)

var (
	flagBridgeAddr  string
	flagBridgeCache string
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Backend bridge tools",
}

var bridgeServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded snapshots over the bridge HTTP protocol",
	Long: `Replays *.json snapshot files from a directory (lexical order, cycling)
behind the same HTTP routes the game backend exposes:

  POST /new_game?seed=N
  POST /insert_token
  POST /remove_token
  POST /spin
  GET  /snapshot

Point a machine at it with bridge.mode: http and bridge.url.

Examples:
  slots bridge serve --cache ./cache
  slots bridge serve --cache ./cache --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runBridgeServe,
}

func init() {
	bridgeServeCmd.Flags().StringVar(&flagBridgeAddr, "addr", "127.0.0.1:8787", "HTTP listen address")
	bridgeServeCmd.Flags().StringVar(&flagBridgeCache, "cache", "", "Snapshot directory (default: bridge.cache_dir from config)")
	bridgeCmd.AddCommand(bridgeServeCmd)
}

func runBridgeServe(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bridge",
	})

	dir := flagBridgeCache
	if dir == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.Bridge.CacheDir
	}

	cache, err := bridge.NewCacheBridge(dir)
	if err != nil {
		return err
	}
	logger.Info("loaded snapshots", "dir", dir, "frames", cache.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("listening", "addr", flagBridgeAddr)
	if err := bridge.ListenAndServe(ctx, flagBridgeAddr, bridge.NewRouter(cache, logger)); err != nil {
		return fmt.Errorf("bridge server: %w", err)
	}
	logger.Info("stopped")
	return nil
}
