package slots

import (
	"github.com/vovakirdan/tui-slots/internal/core"
	"github.com/vovakirdan/tui-slots/internal/sprite"
)

const blockRune = '█'

// Draw paints the reel window with its top-left corner at (ox, oy). Tiles
// outside the window are clipped. In glyph mode each tile shows its symbol
// glyph and name instead of the sprite.
func (m *Machine) Draw(dst *core.Screen, ox, oy int, glyph bool) {
	vp := m.layout.Viewport()
	clip := core.NewRect(0, 0, int(vp.W), int(vp.H))

	set := func(x, y int, r rune, c core.Color) {
		if clip.Contains(x, y) {
			dst.SetColored(ox+x, oy+y, r, c)
		}
	}

	for _, tiles := range m.tiles {
		for _, t := range tiles {
			x0, y0 := t.Position().Round()
			if glyph {
				drawGlyph(set, t, x0, y0)
			} else {
				drawRaster(set, t.Raster(), x0, y0)
			}
		}
	}
}

func drawRaster(set func(x, y int, r rune, c core.Color), r *sprite.Raster, x0, y0 int) {
	if r == nil {
		return
	}
	for dy := range r.H {
		for dx := range r.W {
			if c := r.At(dx, dy); c != core.ColorDefault {
				set(x0+dx, y0+dy, blockRune, c)
			}
		}
	}
}

func drawGlyph(set func(x, y int, r rune, c core.Color), t *Tile, x0, y0 int) {
	w, h := int(t.Size().W), int(t.Size().H)
	if w <= 0 || h <= 0 {
		return
	}
	s := t.Symbol()
	cy := y0 + (h-1)/2
	set(x0+w/2, cy, s.Glyph(), s.Color())

	name := []rune(s.String())
	if h < 3 || len(name) > w {
		return
	}
	nx := x0 + (w-len(name))/2
	for i, r := range name {
		set(nx+i, cy+1, r, core.ColorGray)
	}
}
