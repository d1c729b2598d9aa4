package slots

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-slots/internal/core"
)

// Layout is the fixed reel geometry of a machine. Each reel holds Rows
// tiles: Extra/2 above the window, TilesPerReel visible, Extra/2 below.
type Layout struct {
	Reels        int
	TilesPerReel int
	Cell         core.Size
	Extra        int
	Rows         int
}

// NewLayout divides viewport into reels x tilesPerReel cells and adds enough
// off-screen rows to cover the spin-up wind-up on both sides.
func NewLayout(reels, tilesPerReel int, viewport core.Size, spinUpDistance float64) (Layout, error) {
	if reels < 1 {
		return Layout{}, fmt.Errorf("slots: reels must be >= 1, got %d", reels)
	}
	if tilesPerReel < 1 {
		return Layout{}, fmt.Errorf("slots: tiles per reel must be >= 1, got %d", tilesPerReel)
	}

	cell := core.Size{
		W: viewport.W / float64(reels),
		H: viewport.H / float64(tilesPerReel),
	}

	extra := 0
	if cell.H > 0 && spinUpDistance > 0 {
		extra = int(math.Ceil(spinUpDistance/cell.H)) * 2
	}

	return Layout{
		Reels:        reels,
		TilesPerReel: tilesPerReel,
		Cell:         cell,
		Extra:        extra,
		Rows:         tilesPerReel + extra,
	}, nil
}

// Above returns the number of off-screen rows above the window.
func (l Layout) Above() int {
	return l.Extra / 2
}

// Position returns the top-left corner of (reel, row). Rows above the
// window have negative Y.
func (l Layout) Position(reel, row int) core.Vec {
	return core.Vec{
		X: float64(reel) * l.Cell.W,
		Y: float64(row-l.Above()) * l.Cell.H,
	}
}

// VisibleRow maps a buffer row to its window row.
func (l Layout) VisibleRow(row int) (int, bool) {
	r := row - l.Above()
	return r, r >= 0 && r < l.TilesPerReel
}

// Step is the displacement of one single-row move.
func (l Layout) Step() core.Vec {
	return core.Vec{Y: l.Cell.H}
}

// Viewport returns the size of the visible window.
func (l Layout) Viewport() core.Size {
	return core.Size{
		W: l.Cell.W * float64(l.Reels),
		H: l.Cell.H * float64(l.TilesPerReel),
	}
}
