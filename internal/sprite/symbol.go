// Package sprite holds the slot symbol catalog and the textures drawn on tiles.
package sprite

import "github.com/vovakirdan/tui-slots/internal/core"

// Symbol is an index into the catalog. Backend grids carry these indices.
type Symbol int

const (
	Cherry Symbol = iota
	Strawberry
	Seven
	Lemon
	Banana
	Bell
	Watermelon
	GreenApple
	Clover
	Unknown
	Rainbow

	// Count is the number of catalog entries.
	Count = int(Rainbow) + 1
)

// Placeholder is shown for missing or out-of-range indices.
const Placeholder = Unknown

type symbolInfo struct {
	name  string
	glyph rune
	color core.Color
}

var symbols = [Count]symbolInfo{
	Cherry:     {"cherry", '@', core.ColorBrightRed},
	Strawberry: {"strawberry", '%', core.ColorRed},
	Seven:      {"seven", '7', core.ColorBrightYellow},
	Lemon:      {"lemon", 'o', core.ColorYellow},
	Banana:     {"banana", ')', core.ColorBrightYellow},
	Bell:       {"bell", 'A', core.ColorOrange},
	Watermelon: {"watermelon", 'W', core.ColorGreen},
	GreenApple: {"green_apple", 'Q', core.ColorBrightGreen},
	Clover:     {"clover", '&', core.ColorGreen},
	Unknown:    {"unknown", '?', core.ColorGray},
	Rainbow:    {"rainbow", '*', core.ColorBrightMagenta},
}

// Valid reports whether s is inside the catalog.
func (s Symbol) Valid() bool {
	return s >= 0 && int(s) < Count
}

// Clamp maps out-of-range symbols to the placeholder.
func (s Symbol) Clamp() Symbol {
	if !s.Valid() {
		return Placeholder
	}
	return s
}

func (s Symbol) String() string {
	return symbols[s.Clamp()].name
}

// Glyph returns the single-rune stand-in used in glyph display mode.
func (s Symbol) Glyph() rune {
	return symbols[s.Clamp()].glyph
}

// Color returns the dominant palette color of the symbol.
func (s Symbol) Color() core.Color {
	return symbols[s.Clamp()].color
}

// IsWild reports whether the symbol substitutes for others.
func (s Symbol) IsWild() bool {
	return s == Rainbow
}

// Parse returns the symbol for a backend name. Unknown names give the
// placeholder and false.
func Parse(name string) (Symbol, bool) {
	for i, info := range symbols {
		if info.name == name {
			return Symbol(i), true
		}
	}
	return Placeholder, false
}
