package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-slots/internal/bridge"
	"github.com/vovakirdan/tui-slots/internal/config"
	"github.com/vovakirdan/tui-slots/internal/core"
	"github.com/vovakirdan/tui-slots/internal/games/slots"
	"github.com/vovakirdan/tui-slots/internal/sprite"
)

// loadConfig reads slots.yaml and applies the pace preset.
func loadConfig() (config.SlotsConfig, error) {
	cfg, err := config.LoadSlots(flagConfig)
	if err != nil {
		return cfg, err
	}
	pace, err := config.ParsePace(flagPace)
	if err != nil {
		return cfg, err
	}
	config.ApplyPace(&cfg.Machine, pace)
	return cfg, nil
}

// openLog returns the interactive logger. Without --log output is discarded
// so the alt screen stays clean. The returned closer is never nil.
func openLog() (*log.Logger, io.Closer, error) {
	if flagLog == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(flagLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "slots",
	})
	return logger, f, nil
}

// loadCatalog returns the built-in sprites, overridden by sprites_dir.
func loadCatalog(cfg config.SlotsConfig, logger *log.Logger) (*sprite.Catalog, error) {
	if cfg.Display.SpritesDir == "" {
		return sprite.Builtin(), nil
	}
	catalog, err := sprite.LoadDir(cfg.Display.SpritesDir)
	if err != nil {
		return nil, err
	}
	if skipped := catalog.Skipped(); len(skipped) > 0 {
		logger.Warn("sprite files name no symbol", "dir", cfg.Display.SpritesDir, "files", skipped)
	}
	return catalog, nil
}

// bridgeFactory opens one bridge session per machine, or returns nil for
// free play.
func bridgeFactory(cfg config.BridgeConfig, logger *log.Logger) func() (bridge.Bridge, error) {
	switch cfg.Mode {
	case config.BridgeHTTP:
		logger.Info("using HTTP bridge", "url", cfg.URL)
		return func() (bridge.Bridge, error) {
			return bridge.NewHTTPClient(cfg.URL, cfg.Timeout), nil
		}
	case config.BridgeCache:
		logger.Info("using cache bridge", "dir", cfg.CacheDir)
		return func() (bridge.Bridge, error) {
			return bridge.NewCacheBridge(cfg.CacheDir)
		}
	}
	return nil
}

// configureMachines loads config, sprites and the bridge and hands them to
// the slots package.
func configureMachines(logger *log.Logger) (*sprite.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}
	slots.Configure(slots.Options{
		Config:    cfg,
		Catalog:   catalog,
		NewBridge: bridgeFactory(cfg.Bridge, logger),
		Logger:    logger,
	})
	return catalog, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
