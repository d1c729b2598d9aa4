package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/slots.yaml
var defaultSlotsYAML []byte

// DefaultSlotsConfig returns the hardcoded slots configuration.
func DefaultSlotsConfig() SlotsConfig {
	return SlotsConfig{
		Machine: MachineConfig{
			Reels:          5,
			TilesPerReel:   3,
			TileWidth:      10,
			TileHeight:     4,
			Runtime:        1.0,
			Speed:          8.0,
			ReelDelay:      0.15,
			SpinUpDistance: 6,
			PoseDuration:   0.2,
		},
		Bridge: BridgeConfig{
			Mode:     BridgeRandom,
			URL:      "http://127.0.0.1:8787",
			CacheDir: "cache",
			Timeout:  2 * time.Second,
		},
		Display: DisplayConfig{
			Mode: DisplaySprite,
		},
	}
}
