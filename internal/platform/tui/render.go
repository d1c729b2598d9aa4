package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-slots/internal/core"
)

// blockRune is the cell machines use to paint sprite pixels.
const blockRune = '█'

// ansiCodes maps each palette entry to its terminal color.
var ansiCodes = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// textStyles color the rune; pixelStyles also fill the background so sprite
// blocks render without gaps between rows.
var textStyles, pixelStyles = buildStyles()

func buildStyles() (text, pixel [len(ansiCodes)]lipgloss.Style) {
	for i, code := range ansiCodes {
		if code == "" {
			text[i] = lipgloss.NewStyle()
			pixel[i] = lipgloss.NewStyle()
			continue
		}
		c := lipgloss.Color(code)
		text[i] = lipgloss.NewStyle().Foreground(c)
		pixel[i] = lipgloss.NewStyle().Foreground(c).Background(c)
	}
	return text, pixel
}

func styleFor(cell core.Cell) lipgloss.Style {
	if int(cell.Color) >= len(textStyles) {
		return textStyles[core.ColorDefault]
	}
	if cell.Rune == blockRune {
		return pixelStyles[cell.Color]
	}
	return textStyles[cell.Color]
}

// sameRun reports whether b can share an escape sequence with a.
func sameRun(a, b core.Cell) bool {
	return a.Color == b.Color && (a.Rune == blockRune) == (b.Rune == blockRune)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same style share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !sameRun(start, cell) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(start).Render(run.String()))
		}
	}
	return sb.String()
}
