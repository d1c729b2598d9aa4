// Package slots implements the slot machine: animated reel tiles, the spin
// engine that synchronizes them, and the registry game that wraps both with
// a bridge-backed HUD.
package slots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-slots/internal/anim"
	"github.com/vovakirdan/tui-slots/internal/bridge"
	"github.com/vovakirdan/tui-slots/internal/config"
	"github.com/vovakirdan/tui-slots/internal/core"
	"github.com/vovakirdan/tui-slots/internal/registry"
	"github.com/vovakirdan/tui-slots/internal/sprite"
)

const (
	hudHeight    = 2
	footerHeight = 1
	messageTicks = 180

	// Delay before reading back a spin whose reply was lost, in seconds.
	lateRetry = 0.25

	// Lever pull and spring-back, in seconds.
	leverPull   = 0.2
	leverReturn = 0.5

	// Smallest tile that still shows a sprite; below this glyph mode is used.
	minSpriteW = 6
	minSpriteH = 3
)

// Variant is a registered machine shape. Zero reels or rows keep the
// configured value.
type Variant struct {
	ID           string
	Title        string
	Summary      string
	Reels        int
	TilesPerReel int
}

// Variants lists the machines registered at init.
var Variants = []Variant{
	{ID: "slots", Title: "Slots", Summary: "Configured machine (5x3 by default)"},
	{ID: "slots_mini", Title: "Slots Mini", Summary: "Three reels, three rows", Reels: 3, TilesPerReel: 3},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, v.Summary, func() registry.Game {
			return New(v)
		})
	}
}

// Options apply to every Game created after Configure.
type Options struct {
	Config config.SlotsConfig
	// Catalog defaults to the built-in sprites.
	Catalog *sprite.Catalog
	// NewBridge opens a backend session per game. Nil means free play with
	// random results.
	NewBridge func() (bridge.Bridge, error)
	// Logger defaults to discarding output.
	Logger *log.Logger
}

var (
	optsMu  sync.RWMutex
	options = Options{Config: config.DefaultSlotsConfig()}

	builtinCatalog = sync.OnceValue(sprite.Builtin)
)

// Configure sets the options used by subsequent Reset calls.
func Configure(o Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	options = o
}

func currentOptions() Options {
	optsMu.RLock()
	o := options
	optsMu.RUnlock()

	if o.Catalog == nil {
		o.Catalog = builtinCatalog()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Game is a playable slot machine.
type Game struct {
	variant Variant
	opts    Options
	logger  *log.Logger

	rng     *rand.Rand
	seed    int64
	dt      float64
	tick    uint64
	sched   *anim.Scheduler
	machine *Machine

	bridge    bridge.Bridge
	source    *BridgeSource
	hud       bridge.Snapshot
	betAtSpin int

	message      string
	messageTicks int
	paused       bool
	glyph        bool
	tooSmall     bool
	failure      string

	lever     float64 // 0 at rest, 1 fully pulled
	leverAnim anim.Handle
	leverBusy bool

	screenW, screenH int
}

// New creates a machine of the given variant. Reset builds it.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.Title }

// Machine returns the spin engine, or nil before Reset.
func (g *Game) Machine() *Machine { return g.machine }

// Reset builds a fresh machine for the screen and opens a bridge session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.opts = currentOptions()
	g.logger = g.opts.Logger
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seed = cfg.Seed
	g.dt = cfg.TickSeconds()
	g.tick = 0
	g.sched = anim.NewScheduler()
	g.hud = bridge.Snapshot{}
	g.message = ""
	g.messageTicks = 0
	g.paused = false
	g.lever, g.leverBusy = 0, false
	g.bridge = nil
	g.source = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.build()
	if g.machine != nil {
		g.connect()
	}
}

// Resize rebuilds the machine for a new screen size and keeps the bridge
// session and HUD. It returns false while any tile is still animating.
func (g *Game) Resize(w, h int) bool {
	if g.sched == nil {
		return false
	}
	if g.machine != nil && (g.machine.State() != StateIdle || g.machine.animating()) {
		return false
	}
	g.screenW, g.screenH = w, h
	g.sched.Clear()
	g.lever, g.leverBusy = 0, false
	g.build()
	switch {
	case g.machine == nil:
	case g.source != nil:
		g.machine.SetResultSource(g.source)
	default:
		g.connect()
	}
	return true
}

func (g *Game) build() {
	g.machine = nil
	g.failure = ""

	mc := g.opts.Config.Machine
	if g.variant.Reels > 0 {
		mc.Reels = g.variant.Reels
	}
	if g.variant.TilesPerReel > 0 {
		mc.TilesPerReel = g.variant.TilesPerReel
	}
	g.fitTiles(&mc)
	if g.tooSmall {
		return
	}
	g.glyph = g.opts.Config.Display.Mode == config.DisplayGlyph ||
		mc.TileWidth < minSpriteW || mc.TileHeight < minSpriteH

	m, err := NewMachine(ConfigFrom(mc), g.sched, g.opts.Catalog, g.rng)
	if err != nil {
		g.failure = err.Error()
		g.logger.Error("build machine", "error", err)
		return
	}
	m.OnStopped(g.onStopped)
	g.machine = m
}

// fitTiles shrinks tiles until the cabinet and lever fit the screen.
func (g *Game) fitTiles(mc *config.MachineConfig) {
	availW := g.screenW - 4
	availH := g.screenH - hudHeight - footerHeight - 2
	if mc.Reels > 0 && mc.Reels*mc.TileWidth > availW {
		mc.TileWidth = availW / mc.Reels
	}
	if mc.TilesPerReel > 0 && mc.TilesPerReel*mc.TileHeight > availH {
		mc.TileHeight = availH / mc.TilesPerReel
	}
	g.tooSmall = mc.TileWidth < 1 || mc.TileHeight < 1
}

func (g *Game) connect() {
	if g.opts.NewBridge == nil {
		return
	}

	b, err := g.opts.NewBridge()
	if err != nil {
		g.logger.Warn("bridge unavailable, playing offline", "error", err)
		g.flash("Bridge unavailable: random symbols")
		return
	}
	g.bridge = b
	g.source = NewBridgeSource(b, g.opts.Config.Bridge.Timeout, g.logger)
	g.machine.SetResultSource(g.source)
	g.newGame()
}

func (g *Game) newGame() {
	ctx, cancel := g.callContext()
	defer cancel()
	snap, err := g.bridge.NewGame(ctx, g.seed)
	g.apply(snap, err)
	if err == nil {
		g.flash("New game")
	}
}

func (g *Game) callContext() (context.Context, context.CancelFunc) {
	if t := g.opts.Config.Bridge.Timeout; t > 0 {
		return context.WithTimeout(context.Background(), t)
	}
	return context.WithCancel(context.Background())
}

// apply copies snapshot fields into the HUD and surfaces any error.
func (g *Game) apply(snap *bridge.Snapshot, err error) {
	if snap != nil && snap.Error != "no_game" {
		g.hud.Tokens = snap.Tokens
		g.hud.PendingBet = snap.PendingBet
		g.hud.MaxBet = snap.MaxBet
		g.hud.Round = snap.Round
		g.hud.InRound = snap.InRound
		if snap.Seed != 0 {
			g.hud.Seed = snap.Seed
		}
	}
	if err != nil {
		g.logger.Debug("bridge call", "error", err)
		g.flash(describe(err))
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, bridge.ErrMaxBetReached):
		return "Max bet reached"
	case errors.Is(err, bridge.ErrNoTokens):
		return "Out of tokens"
	case errors.Is(err, bridge.ErrNoBetToRemove):
		return "No bet to remove"
	case errors.Is(err, bridge.ErrNoGame):
		return "No game: press R"
	case errors.Is(err, bridge.ErrNoGrid):
		return "No grid from backend: random symbols"
	}
	var re *bridge.RemoteError
	if errors.As(err, &re) {
		return "Backend: " + re.Code
	}
	return "Bridge error: random symbols"
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

// onStopped reveals the spin snapshot once the reels have settled.
func (g *Game) onStopped() {
	if g.source != nil {
		if last := g.source.Last(); last != nil {
			g.apply(last, nil)
		}
	}
	g.logger.Debug("reels stopped", "spins", g.machine.Spins(), "result", g.machine.LastResult())
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.machine == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.sched.Advance(g.dt)

	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	switch g.machine.State() {
	case StateIdle:
		switch {
		case in.Has(core.ActionSpin):
			g.spin()
		case in.Has(core.ActionBetUp):
			g.bet(true)
		case in.Has(core.ActionBetDown):
			g.bet(false)
		case in.Has(core.ActionRestart):
			if g.bridge != nil {
				g.newGame()
			}
		case in.Has(core.ActionRound):
			if g.bridge != nil {
				g.toggleRound()
			}
		}
	case StateRunning:
		if in.Has(core.ActionSpin) || in.Has(core.ActionStop) {
			if !g.recoverLate() {
				g.machine.Stop()
			}
		}
	}
}

func (g *Game) spin() {
	g.betAtSpin = g.hud.PendingBet
	if !g.machine.Start() {
		return
	}
	g.pullLever()
	if err := g.machine.ResultErr(); err != nil && g.bridge != nil {
		g.flash(describe(err))
		if g.source.Lost() {
			g.sched.After(lateRetry, func() { g.recoverLate() })
		}
	}
}

// recoverLate lands the reels on a spin result that arrived after the
// machine fell back to random symbols.
func (g *Game) recoverLate() bool {
	if g.source == nil || g.machine.State() == StateIdle {
		return false
	}
	grid, ok := g.source.Recover(g.betAtSpin)
	if !ok {
		return false
	}
	g.machine.StopWith(grid)
	g.flash("Late result")
	return true
}

// pullLever restarts the lever animation. It is cosmetic and never holds
// up the reels.
func (g *Game) pullLever() {
	if g.leverBusy {
		g.sched.Cancel(g.leverAnim)
	}
	g.leverBusy = true
	g.leverAnim = g.sched.Tween(leverPull, anim.EaseOutQuad,
		func(p float64) { g.lever = p },
		func() {
			g.leverAnim = g.sched.Tween(leverReturn, anim.EaseInOutSine,
				func(p float64) { g.lever = 1 - p },
				func() {
					g.lever = 0
					g.leverBusy = false
				})
		})
}

// toggleRound ends the open bridge round or starts the next one. Either way
// the backend drops the pending bet.
func (g *Game) toggleRound() {
	ctx, cancel := g.callContext()
	defer cancel()

	var (
		snap *bridge.Snapshot
		err  error
		msg  string
	)
	if g.hud.InRound {
		snap, err = g.bridge.EndRound(ctx)
		msg = "Round over"
	} else {
		snap, err = g.bridge.StartRound(ctx)
		msg = "Round started"
	}
	g.apply(snap, err)
	if err == nil {
		g.flash(msg)
	}
}

func (g *Game) bet(up bool) {
	if g.bridge == nil {
		return
	}
	ctx, cancel := g.callContext()
	defer cancel()

	var (
		snap *bridge.Snapshot
		err  error
	)
	if up {
		snap, err = g.bridge.InsertToken(ctx)
	} else {
		snap, err = g.bridge.RemoveToken(ctx)
	}
	g.apply(snap, err)
}

// State returns the current game state. Score is the token balance.
func (g *Game) State() core.GameState {
	busy := g.machine != nil && g.machine.State() != StateIdle
	return core.GameState{
		Score:  g.hud.Tokens,
		Busy:   busy,
		Paused: g.paused,
	}
}

// Render draws the HUD, the cabinet and the reels.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}
	if g.machine == nil {
		dst.DrawTextCentered(dst.Height()/2, "Machine unavailable: "+g.failure)
		return
	}

	g.renderHUD(dst)

	vp := g.machine.Layout().Viewport()
	vw, vh := int(vp.W), int(vp.H)
	frame := core.NewRect((dst.Width()-vw-2)/2, hudHeight, vw+2, vh+2)
	dst.DrawBoxColored(frame, core.ColorGray)
	g.machine.Draw(dst, frame.X+1, frame.Y+1, g.glyph)

	// lever: the knob slides down the shaft while pulled
	lx := frame.Right() + 1
	shaft := max(frame.H/2, 1)
	knob := core.ColorBrightRed
	if g.machine.State() != StateIdle {
		knob = core.ColorRed
	}
	pull := int(g.lever*float64(shaft) + 0.5)
	dst.DrawVLine(lx, frame.Y, shaft+1, '│', core.ColorGray)
	dst.SetColored(lx, frame.Y+pull, 'O', knob)

	status := g.machine.State().String()
	if g.paused {
		status = "paused"
	}
	dst.DrawTextColored(frame.X, frame.Bottom(), fmt.Sprintf("[%s]", status), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, g.Title(), core.ColorBrightYellow)

	var info string
	if g.bridge != nil {
		round := fmt.Sprintf("Round %d", g.hud.Round)
		if g.hud.InRound {
			round += "*"
		}
		info = fmt.Sprintf("Tokens %d  Bet %d/%d  %s", g.hud.Tokens, g.hud.PendingBet, g.hud.MaxBet, round)
	} else {
		info = fmt.Sprintf("Free play  Spins %d", g.machine.Spins())
	}
	dst.DrawTextColored(dst.Width()-len(info)-1, 0, info, core.ColorBrightWhite)

	if g.message != "" {
		dst.DrawTextColored(1, 1, g.message, core.ColorCyan)
	}
}
