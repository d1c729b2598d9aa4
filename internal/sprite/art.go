package sprite

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ArtSize is the pixel size of the built-in symbol art.
const ArtSize = 32

// kappa places cubic control points so four arcs approximate a circle.
const kappa = 0.5522847

var (
	red       = color.RGBA{220, 30, 40, 255}
	darkRed   = color.RGBA{150, 10, 20, 255}
	green     = color.RGBA{40, 170, 60, 255}
	lime      = color.RGBA{120, 220, 60, 255}
	yellow    = color.RGBA{250, 220, 40, 255}
	gold      = color.RGBA{240, 170, 20, 255}
	brown     = color.RGBA{120, 70, 20, 255}
	gray      = color.RGBA{140, 140, 140, 255}
	white     = color.RGBA{245, 245, 245, 255}
	blue      = color.RGBA{60, 90, 250, 255}
	violet    = color.RGBA{200, 40, 220, 255}
	orange    = color.RGBA{255, 140, 0, 255}
	deepGreen = color.RGBA{20, 110, 40, 255}
)

// painter fills vector shapes onto one RGBA canvas.
type painter struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func newPainter() *painter {
	return &painter{
		dst: image.NewRGBA(image.Rect(0, 0, ArtSize, ArtSize)),
		z:   vector.NewRasterizer(ArtSize, ArtSize),
	}
}

func (p *painter) fill(c color.Color) {
	p.z.DrawOp = xdraw.Over
	p.z.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{})
	p.z.Reset(ArtSize, ArtSize)
}

func (p *painter) circle(cx, cy, r float32, c color.Color) {
	k := r * kappa
	p.z.MoveTo(cx+r, cy)
	p.z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	p.z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	p.z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	p.z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	p.z.ClosePath()
	p.fill(c)
}

func (p *painter) poly(c color.Color, pts ...float32) {
	if len(pts) < 6 {
		return
	}
	p.z.MoveTo(pts[0], pts[1])
	for i := 2; i+1 < len(pts); i += 2 {
		p.z.LineTo(pts[i], pts[i+1])
	}
	p.z.ClosePath()
	p.fill(c)
}

func (p *painter) rect(x0, y0, x1, y1 float32, c color.Color) {
	p.poly(c, x0, y0, x1, y0, x1, y1, x0, y1)
}

// drawSymbol renders the built-in art for s.
func drawSymbol(s Symbol) *image.RGBA {
	p := newPainter()

	switch s {
	case Cherry:
		p.poly(deepGreen, 16, 4, 18, 4, 12, 18, 10, 18)
		p.poly(deepGreen, 16, 4, 18, 4, 23, 18, 21, 18)
		p.circle(10, 22, 6, red)
		p.circle(22, 22, 6, darkRed)
	case Strawberry:
		p.poly(red, 5, 10, 27, 10, 16, 29)
		p.circle(16, 12, 10, red)
		p.poly(green, 10, 4, 22, 4, 16, 10)
	case Seven:
		p.rect(6, 5, 26, 10, gold)
		p.poly(gold, 21, 10, 26, 10, 15, 28, 10, 28)
	case Lemon:
		p.circle(16, 16, 11, yellow)
		p.poly(yellow, 2, 16, 6, 12, 6, 20)
		p.poly(yellow, 30, 16, 26, 12, 26, 20)
	case Banana:
		p.z.MoveTo(4, 8)
		p.z.CubeTo(6, 26, 24, 30, 29, 18)
		p.z.CubeTo(22, 24, 10, 20, 8, 8)
		p.z.ClosePath()
		p.fill(yellow)
		p.rect(3, 5, 8, 9, brown)
	case Bell:
		p.poly(gold, 16, 4, 24, 10, 27, 24, 5, 24, 8, 10)
		p.rect(4, 24, 28, 27, orange)
		p.circle(16, 28, 3, brown)
	case Watermelon:
		p.z.MoveTo(2, 10)
		p.z.CubeTo(2, 30, 30, 30, 30, 10)
		p.z.ClosePath()
		p.fill(green)
		p.z.MoveTo(5, 10)
		p.z.CubeTo(5, 26, 27, 26, 27, 10)
		p.z.ClosePath()
		p.fill(red)
	case GreenApple:
		p.circle(16, 18, 11, lime)
		p.rect(15, 3, 17, 9, brown)
		p.poly(green, 17, 6, 25, 3, 21, 9)
	case Clover:
		p.circle(16, 9, 6, green)
		p.circle(9, 16, 6, green)
		p.circle(23, 16, 6, green)
		p.circle(16, 21, 5, green)
		p.rect(15, 22, 17, 30, deepGreen)
	case Rainbow:
		p.circle(16, 20, 14, red)
		p.circle(16, 20, 11, orange)
		p.circle(16, 20, 8, yellow)
		p.circle(16, 20, 5, blue)
		// open arc: wipe everything below the horizon
		for y := 20; y < ArtSize; y++ {
			for x := 0; x < ArtSize; x++ {
				p.dst.SetRGBA(x, y, color.RGBA{})
			}
		}
		p.rect(15, 22, 17, 31, violet)
	default:
		p.circle(16, 16, 13, gray)
		p.rect(11, 7, 21, 11, white)
		p.rect(17, 11, 21, 17, white)
		p.rect(14, 15, 18, 20, white)
		p.rect(14, 23, 18, 27, white)
	}

	return p.dst
}
