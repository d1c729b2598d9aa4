package sprite

import (
	"image"
	"image/color"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/tui-slots/internal/core"
)

// alphaCutoff is the minimum alpha for a pixel to count as opaque.
const alphaCutoff = 0x8000

// Texture is a symbol image plus its terminal fallbacks.
// Fitted rasters are cached per size; Image must not change after first use.
type Texture struct {
	Symbol Symbol
	Image  image.Image

	mu   sync.Mutex
	fits map[[2]int]*Raster
}

// Name returns the symbol name.
func (t *Texture) Name() string {
	return t.Symbol.String()
}

// SourceSize returns the pixel size of the underlying image.
func (t *Texture) SourceSize() core.Size {
	if t == nil || t.Image == nil {
		return core.Size{}
	}
	b := t.Image.Bounds()
	return core.Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

// Raster is a texture resampled to terminal cells. Transparent cells hold
// ColorDefault.
type Raster struct {
	W, H  int
	Cells []core.Color
}

// At returns the cell color, or ColorDefault outside the raster.
func (r *Raster) At(x, y int) core.Color {
	if r == nil || x < 0 || y < 0 || x >= r.W || y >= r.H {
		return core.ColorDefault
	}
	return r.Cells[y*r.W+x]
}

// Opaque counts non-transparent cells.
func (r *Raster) Opaque() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, c := range r.Cells {
		if c != core.ColorDefault {
			n++
		}
	}
	return n
}

// Scale returns the factor that maps the texture's source size onto size.
// A zero size or an empty texture gives a zero scale.
func (t *Texture) Scale(size core.Size) core.Vec {
	src := t.SourceSize()
	if src.IsZero() || size.IsZero() {
		return core.Vec{}
	}
	return core.Vec{X: size.W / src.W, Y: size.H / src.H}
}

// Fit resamples the texture to size cells using Catmull-Rom filtering and
// maps each cell onto the terminal palette. The result is shared; callers
// must not modify it.
func (t *Texture) Fit(size core.Size) *Raster {
	w, h := int(size.W), int(size.H)
	if t == nil || t.Image == nil || w <= 0 || h <= 0 {
		return &Raster{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	key := [2]int{w, h}
	if r, ok := t.fits[key]; ok {
		return r
	}
	r := t.resample(w, h)
	if t.fits == nil {
		t.fits = make(map[[2]int]*Raster)
	}
	t.fits[key] = r
	return r
}

func (t *Texture) resample(w, h int) *Raster {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), t.Image, t.Image.Bounds(), xdraw.Over, nil)

	r := &Raster{W: w, H: h, Cells: make([]core.Color, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Cells[y*w+x] = paletteOf(dst.At(x, y))
		}
	}
	return r
}

func paletteOf(c color.Color) core.Color {
	r, g, b, a := c.RGBA()
	if a < alphaCutoff {
		return core.ColorDefault
	}
	// un-premultiply
	r = r * 0xffff / a
	g = g * 0xffff / a
	b = b * 0xffff / a
	return core.NearestColor(core.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
}
