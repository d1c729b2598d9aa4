package slots

import (
	"fmt"

	"github.com/vovakirdan/tui-slots/internal/anim"
	"github.com/vovakirdan/tui-slots/internal/core"
	"github.com/vovakirdan/tui-slots/internal/sprite"
)

// Tile is one animated reel cell. Its reel never changes; row is its slot in
// the reel's circular buffer and advances by one per completed move.
type Tile struct {
	reel int
	row  int

	pos    core.Vec // resting or tweened position
	offset core.Vec // pose displacement, zero outside spin-up/down
	size   core.Size
	speed  float64

	spinDistance float64
	poseDuration float64

	texture *sprite.Texture
	raster  *sprite.Raster
	scale   core.Vec

	moving  bool
	posing  bool
	moves   int
	sched   *anim.Scheduler
	onMoved func(*Tile)
}

// NewTile creates a tile at pos. Animations run on sched.
func NewTile(sched *anim.Scheduler, reel, row int, pos core.Vec) *Tile {
	return &Tile{
		sched: sched,
		reel:  reel,
		row:   row,
		pos:   pos,
		speed: 1,
	}
}

// OnMoved registers the move-completed handler.
func (t *Tile) OnMoved(fn func(*Tile)) {
	t.onMoved = fn
}

// Reel returns the tile's column.
func (t *Tile) Reel() int { return t.reel }

// Row returns the tile's slot in the reel buffer.
func (t *Tile) Row() int { return t.row }

// Position returns where the tile is drawn, pose offset included.
func (t *Tile) Position() core.Vec { return t.pos.Add(t.offset) }

// Offset returns the current pose displacement.
func (t *Tile) Offset() core.Vec { return t.offset }

// Size returns the cell size.
func (t *Tile) Size() core.Size { return t.size }

// Speed returns the move speed multiplier.
func (t *Tile) Speed() float64 { return t.speed }

// Texture returns the current texture, or nil.
func (t *Tile) Texture() *sprite.Texture { return t.texture }

// Symbol returns the symbol of the current texture.
func (t *Tile) Symbol() sprite.Symbol {
	if t.texture == nil {
		return sprite.Placeholder
	}
	return t.texture.Symbol
}

// Raster returns the texture fitted to the tile size.
func (t *Tile) Raster() *sprite.Raster { return t.raster }

// Scale returns the factor mapping the texture onto the tile size.
func (t *Tile) Scale() core.Vec { return t.scale }

// Moving reports whether a move is in flight.
func (t *Tile) Moving() bool { return t.moving }

// Posing reports whether a spin-up or spin-down pose is playing.
func (t *Tile) Posing() bool { return t.posing }

// Moves returns the number of completed moves.
func (t *Tile) Moves() int { return t.moves }

// SetTexture replaces the image and refits it to the tile size.
func (t *Tile) SetTexture(tex *sprite.Texture) {
	t.texture = tex
	t.refit()
}

// SetSize sets the cell size and refits the current texture.
func (t *Tile) SetSize(size core.Size) {
	t.size = size
	t.refit()
}

// SetSpeed scales the duration of subsequent moves. Non-positive values are
// ignored.
func (t *Tile) SetSpeed(multiplier float64) {
	if multiplier > 0 {
		t.speed = multiplier
	}
}

// SetPose configures the spin-up amplitude and pose length.
func (t *Tile) SetPose(distance, duration float64) {
	t.spinDistance = distance
	t.poseDuration = duration
}

func (t *Tile) refit() {
	if t.texture == nil {
		t.raster = nil
		t.scale = core.Vec{}
		return
	}
	t.scale = t.texture.Scale(t.size)
	t.raster = t.texture.Fit(t.size)
}

// MoveTo animates the tile to target over 1/speed seconds and then raises
// the move-completed handler once. Starting a second move while one is in
// flight panics.
func (t *Tile) MoveTo(target core.Vec) {
	if t.moving {
		panic(fmt.Sprintf("slots: tile %d/%d already moving", t.reel, t.row))
	}
	t.moving = true

	from := t.pos
	t.sched.Tween(1/t.speed, anim.Linear,
		func(p float64) { t.pos = from.Lerp(target, p) },
		func() {
			t.pos = target
			t.moving = false
			t.moves++
			if t.onMoved != nil {
				t.onMoved(t)
			}
		})
}

// MoveBy moves relative to the current position.
func (t *Tile) MoveBy(delta core.Vec) {
	t.MoveTo(t.pos.Add(delta))
}

// SpinUp plays the wind-up pose (a lift against the spin direction) and then
// calls then.
func (t *Tile) SpinUp(then func()) {
	t.pose(-t.spinDistance, then)
}

// SpinDown plays the settle pose (a half-amplitude overshoot) and then calls
// then.
func (t *Tile) SpinDown(then func()) {
	t.pose(t.spinDistance/2, then)
}

func (t *Tile) pose(amplitude float64, then func()) {
	t.posing = true
	t.sched.Tween(t.poseDuration, anim.Bounce,
		func(p float64) { t.offset = core.Vec{Y: amplitude * p} },
		func() {
			t.offset = core.Vec{}
			t.posing = false
			if then != nil {
				then()
			}
		})
}

// place snaps the tile into a buffer slot.
func (t *Tile) place(row int, pos core.Vec) {
	t.row = row
	t.pos = pos
}
