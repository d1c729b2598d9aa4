package core

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for reels, symbols and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB is a plain 8-bit color triple used to map sprite pixels onto the palette.
type RGB struct {
	R, G, B uint8
}

// paletteRGB holds the approximate xterm values for each palette entry.
// ColorDefault is treated as white on dark terminals.
var paletteRGB = [...]RGB{
	ColorDefault:       {229, 229, 229},
	ColorRed:           {205, 0, 0},
	ColorGreen:         {0, 205, 0},
	ColorYellow:        {205, 205, 0},
	ColorBlue:          {0, 0, 238},
	ColorMagenta:       {205, 0, 205},
	ColorCyan:          {0, 205, 205},
	ColorWhite:         {229, 229, 229},
	ColorBrightRed:     {255, 0, 0},
	ColorBrightGreen:   {0, 255, 0},
	ColorBrightYellow:  {255, 255, 0},
	ColorBrightBlue:    {92, 92, 255},
	ColorBrightMagenta: {255, 0, 255},
	ColorBrightCyan:    {0, 255, 255},
	ColorBrightWhite:   {255, 255, 255},
	ColorOrange:        {255, 135, 0},
	ColorGray:          {138, 138, 138},
}

// paletteLab holds paletteRGB as go-colorful colors, ready for Lab distance.
var paletteLab = func() [len(paletteRGB)]colorful.Color {
	var out [len(paletteRGB)]colorful.Color
	for i, p := range paletteRGB {
		out[i] = p.lab()
	}
	return out
}()

func (c RGB) lab() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// NearestColor returns the palette color perceptually closest to c, by
// CIE Lab distance. ColorDefault is never returned.
func NearestColor(c RGB) Color {
	target := c.lab()
	best := ColorWhite
	bestDist := math.Inf(1)
	for i := ColorRed; int(i) < len(paletteLab); i++ {
		if d := target.DistanceLab(paletteLab[i]); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
