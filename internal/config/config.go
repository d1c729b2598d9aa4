// Package config provides YAML-based machine configuration loading and
// pace presets for the slots platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SlotsConfig contains all configuration for a slot machine session.
type SlotsConfig struct {
	Machine MachineConfig `yaml:"machine"`
	Bridge  BridgeConfig  `yaml:"bridge"`
	Display DisplayConfig `yaml:"display"`
}

// MachineConfig defines reel geometry and spin timing.
// Times are in seconds, distances in terminal cells.
type MachineConfig struct {
	Reels          int     `yaml:"reels"`
	TilesPerReel   int     `yaml:"tiles_per_reel"`
	TileWidth      int     `yaml:"tile_width"`
	TileHeight     int     `yaml:"tile_height"`
	Runtime        float64 `yaml:"runtime"`          // Nominal spin length before the stop phase
	Speed          float64 `yaml:"speed"`            // Moves per second
	ReelDelay      float64 `yaml:"reel_delay"`       // Stagger between reel starts
	SpinUpDistance float64 `yaml:"spin_up_distance"` // Wind-up pose amplitude
	PoseDuration   float64 `yaml:"pose_duration"`    // Spin-up and spin-down length
}

// BridgeMode selects where spin results come from.
type BridgeMode string

const (
	BridgeRandom BridgeMode = "random"
	BridgeHTTP   BridgeMode = "http"
	BridgeCache  BridgeMode = "cache"
)

// BridgeConfig defines the backend connection.
type BridgeConfig struct {
	Mode     BridgeMode    `yaml:"mode"`
	URL      string        `yaml:"url"`
	CacheDir string        `yaml:"cache_dir"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DisplayMode selects how symbols are drawn.
type DisplayMode string

const (
	DisplaySprite DisplayMode = "sprite"
	DisplayGlyph  DisplayMode = "glyph"
)

// DisplayConfig defines symbol rendering.
type DisplayConfig struct {
	Mode       DisplayMode `yaml:"mode"`
	SpritesDir string      `yaml:"sprites_dir"` // Optional PNG overrides
}

// Viewport returns the reel window size in cells.
func (m MachineConfig) Viewport() (w, h int) {
	return m.Reels * m.TileWidth, m.TilesPerReel * m.TileHeight
}

// Validate reports the first invalid setting.
func (c SlotsConfig) Validate() error {
	m := c.Machine
	switch {
	case m.Reels < 1:
		return fmt.Errorf("config: reels must be >= 1, got %d", m.Reels)
	case m.TilesPerReel < 1:
		return fmt.Errorf("config: tiles_per_reel must be >= 1, got %d", m.TilesPerReel)
	case m.TileWidth <= 0 || m.TileHeight <= 0:
		return fmt.Errorf("config: tile size must be positive, got %dx%d", m.TileWidth, m.TileHeight)
	case m.Speed <= 0:
		return fmt.Errorf("config: speed must be positive, got %v", m.Speed)
	case m.Runtime < 0 || m.ReelDelay < 0 || m.SpinUpDistance < 0 || m.PoseDuration < 0:
		return errors.New("config: runtime, reel_delay, spin_up_distance and pose_duration must not be negative")
	}

	switch c.Bridge.Mode {
	case BridgeRandom:
	case BridgeHTTP:
		if c.Bridge.URL == "" {
			return errors.New("config: bridge.url is required in http mode")
		}
	case BridgeCache:
		if c.Bridge.CacheDir == "" {
			return errors.New("config: bridge.cache_dir is required in cache mode")
		}
	default:
		return fmt.Errorf("config: unknown bridge mode %q", c.Bridge.Mode)
	}

	switch c.Display.Mode {
	case DisplaySprite, DisplayGlyph:
	default:
		return fmt.Errorf("config: unknown display mode %q", c.Display.Mode)
	}
	return nil
}
