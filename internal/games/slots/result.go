package slots

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tui-slots/internal/sprite"
)

// ErrNoResult means a source returned no usable grid.
var ErrNoResult = errors.New("slots: no result data")

// Grid maps (reel, visible row) to a symbol index. It is column-major:
// g[reel][row].
type Grid [][]int

// NewGrid returns a reels x rows grid filled with fill.
func NewGrid(reels, rows, fill int) Grid {
	g := make(Grid, reels)
	for i := range g {
		g[i] = make([]int, rows)
		for j := range g[i] {
			g[i][j] = fill
		}
	}
	return g
}

// At returns the symbol at (reel, row), or the placeholder outside the grid.
func (g Grid) At(reel, row int) int {
	if reel < 0 || reel >= len(g) || row < 0 || row >= len(g[reel]) {
		return int(sprite.Placeholder)
	}
	return g[reel][row]
}

// Empty reports whether the grid has no cells.
func (g Grid) Empty() bool {
	for _, col := range g {
		if len(col) > 0 {
			return false
		}
	}
	return true
}

// Normalize returns a reels x rows copy. Missing cells and out-of-range
// symbols become the placeholder; extra cells are dropped.
func (g Grid) Normalize(reels, rows int) Grid {
	out := NewGrid(reels, rows, int(sprite.Placeholder))
	for r := range out {
		for row := range out[r] {
			out[r][row] = int(sprite.Symbol(g.At(r, row)).Clamp())
		}
	}
	return out
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, col := range g {
		out[i] = append([]int(nil), col...)
	}
	return out
}

// ResultSource supplies the outcome of one spin. It is called once per
// Start and must not block for long.
type ResultSource interface {
	Result(reels, rows int) (Grid, error)
}

// ResultFunc adapts a function to ResultSource.
type ResultFunc func(reels, rows int) (Grid, error)

// Result calls f.
func (f ResultFunc) Result(reels, rows int) (Grid, error) {
	return f(reels, rows)
}

// RandomSource produces uniformly random grids. It never yields the
// placeholder.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a source drawing from rng.
func NewRandomSource(rng *rand.Rand) *RandomSource {
	return &RandomSource{rng: rng}
}

// Result returns a fresh random grid.
func (s *RandomSource) Result(reels, rows int) (Grid, error) {
	g := NewGrid(reels, rows, 0)
	for r := range g {
		for row := range g[r] {
			g[r][row] = randomSymbol(s.rng)
		}
	}
	return g, nil
}

// randomSymbol picks any catalog symbol except the placeholder.
func randomSymbol(rng *rand.Rand) int {
	n := rng.Intn(sprite.Count - 1)
	if n >= int(sprite.Placeholder) {
		n++
	}
	return n
}
