package slots

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-slots/internal/anim"
	"github.com/vovakirdan/tui-slots/internal/config"
	"github.com/vovakirdan/tui-slots/internal/core"
	"github.com/vovakirdan/tui-slots/internal/sprite"
)

// State is the machine lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopRequested
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopRequested:
		return "stop_requested"
	default:
		return "unknown"
	}
}

// Config is the machine geometry and timing. Times are in seconds.
type Config struct {
	Reels          int
	TilesPerReel   int
	Viewport       core.Size
	Runtime        float64
	Speed          float64 // single-row moves per second
	ReelDelay      float64
	SpinUpDistance float64
	PoseDuration   float64
}

// ConfigFrom converts the YAML machine section.
func ConfigFrom(m config.MachineConfig) Config {
	w, h := m.Viewport()
	return Config{
		Reels:          m.Reels,
		TilesPerReel:   m.TilesPerReel,
		Viewport:       core.Size{W: float64(w), H: float64(h)},
		Runtime:        m.Runtime,
		Speed:          m.Speed,
		ReelDelay:      m.ReelDelay,
		SpinUpDistance: m.SpinUpDistance,
		PoseDuration:   m.PoseDuration,
	}
}

// Machine is the reel spin engine. It owns every tile, counts completed
// moves per reel and decides when each tile keeps moving, shows the result
// and settles. All work happens inside Scheduler.Advance.
type Machine struct {
	cfg     Config
	layout  Layout
	sched   *anim.Scheduler
	rng     *rand.Rand
	catalog *sprite.Catalog

	source   ResultSource
	fallback *RandomSource

	tiles [][]*Tile // [reel][initial row]

	state   State
	target  int
	moved   []int
	stopped []int
	settled []bool // reel has begun spinning down
	result  Grid
	last    Grid
	lastErr error
	spins   int

	onStopped func()
}

// NewMachine builds the tile grid with random textures.
func NewMachine(cfg Config, sched *anim.Scheduler, catalog *sprite.Catalog, rng *rand.Rand) (*Machine, error) {
	layout, err := NewLayout(cfg.Reels, cfg.TilesPerReel, cfg.Viewport, cfg.SpinUpDistance)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:      cfg,
		layout:   layout,
		sched:    sched,
		rng:      rng,
		catalog:  catalog,
		fallback: NewRandomSource(rng),
		moved:    make([]int, cfg.Reels),
		stopped:  make([]int, cfg.Reels),
		settled:  make([]bool, cfg.Reels),
	}
	m.source = m.fallback

	m.tiles = make([][]*Tile, cfg.Reels)
	for reel := range m.tiles {
		m.tiles[reel] = make([]*Tile, layout.Rows)
		for row := range m.tiles[reel] {
			t := NewTile(sched, reel, row, layout.Position(reel, row))
			t.SetSize(layout.Cell)
			t.SetSpeed(cfg.Speed)
			t.SetPose(cfg.SpinUpDistance, cfg.PoseDuration)
			t.SetTexture(m.randomTexture())
			t.OnMoved(m.tileMoved)
			m.tiles[reel][row] = t
		}
	}
	return m, nil
}

// SetResultSource replaces where spin results come from. Nil restores the
// random source.
func (m *Machine) SetResultSource(src ResultSource) {
	if src == nil {
		m.source = m.fallback
		return
	}
	m.source = src
}

// OnStopped registers the callback raised when the machine returns to idle.
func (m *Machine) OnStopped(fn func()) {
	m.onStopped = fn
}

// State returns the lifecycle state.
func (m *Machine) State() State { return m.state }

// Layout returns the reel geometry.
func (m *Machine) Layout() Layout { return m.layout }

// Tiles returns the tiles of one reel in creation order.
func (m *Machine) Tiles(reel int) []*Tile { return m.tiles[reel] }

// Target returns the run count at which reels settle.
func (m *Machine) Target() int { return m.target }

// Moved returns completed single-row moves for reel during this spin.
func (m *Machine) Moved(reel int) int { return m.moved[reel] }

// Stopped returns tiles of reel that finished spinning down.
func (m *Machine) Stopped(reel int) int { return m.stopped[reel] }

// Runs returns how many full steps reel has made: ceil(moved / rows).
func (m *Machine) Runs(reel int) int {
	return (m.moved[reel] + m.layout.Rows - 1) / m.layout.Rows
}

// Result returns the grid of the spin in progress, or nil when idle.
func (m *Machine) Result() Grid { return m.result.Clone() }

// LastResult returns the grid of the most recent spin.
func (m *Machine) LastResult() Grid { return m.last.Clone() }

// ResultErr returns why the last spin fell back to random symbols, if it did.
func (m *Machine) ResultErr() error { return m.lastErr }

// Spins returns the number of spins started.
func (m *Machine) Spins() int { return m.spins }

// Start begins a spin. It returns false unless the machine is idle and
// every tile is at rest.
func (m *Machine) Start() bool {
	if m.state != StateIdle || m.animating() {
		return false
	}
	m.state = StateRunning
	m.target = int(math.Floor(m.cfg.Runtime * m.cfg.Speed * float64(m.cfg.TilesPerReel)))
	m.result = m.fetchResult()
	m.last = m.result
	m.spins++

	for reel := range m.tiles {
		delay := float64(reel) * m.cfg.ReelDelay
		if delay <= 0 {
			m.startReel(reel)
			continue
		}
		m.sched.After(delay, func() { m.startReel(reel) })
	}
	return true
}

// Stop requests the reels to settle tiles_per_reel+1 runs after reel 0's
// current run. The target never rises, so reels that already settled keep
// their runs. It returns false when idle.
func (m *Machine) Stop() bool {
	if m.state == StateIdle {
		return false
	}
	m.state = StateStopRequested
	m.target = min(m.target, m.Runs(0)+m.cfg.TilesPerReel+1)
	return true
}

// StopWith replaces the result with a late-arriving grid and requests stop.
// Reels that already settled are repainted so the window matches the new
// result.
func (m *Machine) StopWith(g Grid) bool {
	if m.state == StateIdle {
		return false
	}
	m.result = g.Normalize(m.cfg.Reels, m.cfg.TilesPerReel)
	m.last = m.result
	for reel, done := range m.settled {
		if done {
			m.paintResult(reel)
		}
	}
	return m.Stop()
}

// paintResult shows the result on every tile of reel resting on a window row.
func (m *Machine) paintResult(reel int) {
	for _, t := range m.tiles[reel] {
		if r, ok := m.layout.VisibleRow(t.Row()); ok {
			t.SetTexture(m.catalog.Lookup(m.result.At(reel, r)))
		}
	}
}

// Visible returns the symbols currently resting on the window rows.
func (m *Machine) Visible() Grid {
	g := NewGrid(m.cfg.Reels, m.cfg.TilesPerReel, int(sprite.Placeholder))
	for reel, tiles := range m.tiles {
		for _, t := range tiles {
			if r, ok := m.layout.VisibleRow(t.Row()); ok {
				g[reel][r] = int(t.Symbol())
			}
		}
	}
	return g
}

func (m *Machine) fetchResult() Grid {
	g, err := m.source.Result(m.cfg.Reels, m.cfg.TilesPerReel)
	if err == nil && g.Empty() {
		err = ErrNoResult
	}
	m.lastErr = err
	if err != nil {
		g, _ = m.fallback.Result(m.cfg.Reels, m.cfg.TilesPerReel)
	}
	return g.Normalize(m.cfg.Reels, m.cfg.TilesPerReel)
}

func (m *Machine) startReel(reel int) {
	step := m.layout.Step()
	for _, t := range m.tiles[reel] {
		t.SpinUp(func() { t.MoveBy(step) })
	}
}

// tileMoved runs once per tile per single-row move.
func (m *Machine) tileMoved(t *Tile) {
	reel := t.Reel()

	row := t.Row() + 1
	if row >= m.layout.Rows {
		row = 0
	}
	t.place(row, m.layout.Position(reel, row))

	if m.state == StateIdle {
		t.SetTexture(m.randomTexture())
		t.SpinDown(nil)
		return
	}

	m.moved[reel]++
	runs := m.Runs(reel)

	final := m.settled[reel] || m.target-runs < m.cfg.TilesPerReel
	if r, ok := m.layout.VisibleRow(row); ok && final {
		t.SetTexture(m.catalog.Lookup(m.result.At(reel, r)))
	} else {
		t.SetTexture(m.randomTexture())
	}

	if !m.settled[reel] && runs < m.target {
		t.MoveBy(m.layout.Step())
		return
	}

	m.settled[reel] = true
	t.SpinDown(func() { m.tileStopped(reel) })
}

func (m *Machine) tileStopped(reel int) {
	m.stopped[reel]++
	if reel == m.cfg.Reels-1 && m.stopped[reel] == m.layout.Rows {
		m.finish()
	}
}

func (m *Machine) finish() {
	m.state = StateIdle
	m.target = 0
	m.result = nil
	for i := range m.moved {
		m.moved[i] = 0
		m.stopped[i] = 0
		m.settled[i] = false
	}
	if m.onStopped != nil {
		m.onStopped()
	}
}

func (m *Machine) animating() bool {
	for _, tiles := range m.tiles {
		for _, t := range tiles {
			if t.Moving() || t.Posing() {
				return true
			}
		}
	}
	return false
}

func (m *Machine) randomTexture() *sprite.Texture {
	return m.catalog.Lookup(randomSymbol(m.rng))
}
