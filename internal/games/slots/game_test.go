package slots

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-slots/internal/bridge"
	"github.com/vovakirdan/tui-slots/internal/config"
	"github.com/vovakirdan/tui-slots/internal/core"
	"github.com/vovakirdan/tui-slots/internal/registry"
)

func useOptions(t *testing.T, o Options) {
	t.Helper()
	Configure(o)
	t.Cleanup(func() { Configure(Options{Config: config.DefaultSlotsConfig()}) })
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(Variants[0])
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	if g.Machine() == nil {
		t.Fatalf("Reset() built no machine: %s", g.failure)
	}
	return g
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

// stepUntilIdle steps with no input until the reels settle.
func stepUntilIdle(t *testing.T, g *Game) int {
	t.Helper()
	for i := 1; i <= 2000; i++ {
		g.Step(core.NewInputFrame())
		if !g.State().Busy {
			return i
		}
	}
	t.Fatal("game still busy after 2000 ticks")
	return 0
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q not registered", v.ID)
		}
	}

	g, err := registry.Create("slots_mini")
	if err != nil {
		t.Fatalf("Create(slots_mini) failed: %v", err)
	}
	g.Reset(core.DefaultConfig())
	l := g.(*Game).Machine().Layout()
	if l.Reels != 3 || l.TilesPerReel != 3 {
		t.Errorf("mini layout = %dx%d, expected 3x3", l.Reels, l.TilesPerReel)
	}
}

func TestGameFreePlaySpin(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})
	g := newTestGame(t, 42)

	g.Step(press(core.ActionSpin))
	if !g.State().Busy {
		t.Fatal("spin did not start")
	}
	stepUntilIdle(t, g)

	m := g.Machine()
	if m.Spins() != 1 {
		t.Errorf("Spins() = %d, expected 1", m.Spins())
	}
	if !reflect.DeepEqual(m.Visible(), m.LastResult()) {
		t.Errorf("Visible() = %v, expected %v", m.Visible(), m.LastResult())
	}
}

func TestGameStopShortensSpin(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})

	full := newTestGame(t, 3)
	full.Step(press(core.ActionSpin))
	fullTicks := stepUntilIdle(t, full)

	early := newTestGame(t, 3)
	early.Step(press(core.ActionSpin))
	early.Step(core.NewInputFrame())
	early.Step(press(core.ActionStop))
	if early.Machine().State() != StateStopRequested {
		t.Fatalf("state = %s, expected stop_requested", early.Machine().State())
	}
	earlyTicks := stepUntilIdle(t, early)

	if earlyTicks >= fullTicks {
		t.Errorf("stopped spin took %d ticks, full spin %d", earlyTicks, fullTicks)
	}
}

func TestGamePause(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})
	g := newTestGame(t, 1)
	g.Step(press(core.ActionSpin))

	g.Step(press(core.ActionPause))
	before := g.Machine().Snapshot()
	for range 30 {
		g.Step(core.NewInputFrame())
	}
	if !reflect.DeepEqual(g.Machine().Snapshot(), before) {
		t.Error("machine advanced while paused")
	}
	if !g.State().Paused {
		t.Error("State().Paused should be true")
	}

	g.Step(press(core.ActionPause))
	stepUntilIdle(t, g)
}

func TestGameBridgeHUD(t *testing.T) {
	grid := [][]int{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}, {5, 5, 5}}
	frames := []*bridge.Snapshot{{GridIndices: grid, Tokens: 20, MaxBet: 3}}
	useOptions(t, Options{
		Config: config.DefaultSlotsConfig(),
		NewBridge: func() (bridge.Bridge, error) {
			return bridge.NewCacheBridgeFrames(frames)
		},
	})
	g := newTestGame(t, 9)

	if s := g.Snapshot(); s.Tokens != 20 || s.Round != 0 {
		t.Fatalf("after new game: tokens %d round %d, expected 20/0", s.Tokens, s.Round)
	}

	for range 4 {
		g.Step(press(core.ActionBetUp))
	}
	if s := g.Snapshot(); s.Bet != 3 {
		t.Errorf("Bet = %d, expected 3 (max bet)", s.Bet)
	}
	if g.message != "Max bet reached" {
		t.Errorf("message = %q, expected max bet notice", g.message)
	}
	g.Step(press(core.ActionBetDown))

	g.Step(press(core.ActionSpin))
	if s := g.Snapshot(); s.Round != 0 || s.Bet != 2 {
		t.Errorf("HUD updated before reels stopped: round %d bet %d", s.Round, s.Bet)
	}
	stepUntilIdle(t, g)

	s := g.Snapshot()
	if s.Round != 1 || s.Bet != 0 {
		t.Errorf("after stop: round %d bet %d, expected 1/0", s.Round, s.Bet)
	}
	if !reflect.DeepEqual(g.Machine().Visible(), Grid(grid)) {
		t.Errorf("Visible() = %v, expected %v", g.Machine().Visible(), grid)
	}

	g.Step(press(core.ActionRestart))
	if s := g.Snapshot(); s.Round != 0 {
		t.Errorf("Round after restart = %d, expected 0", s.Round)
	}
}

func TestGameRender(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})
	g := newTestGame(t, 5)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()
	for _, want := range []string{"Slots", "Free play", "[idle]"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestGameTooSmall(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})
	g := New(Variants[0])
	g.Reset(core.RuntimeConfig{ScreenW: 8, ScreenH: 5, TickRate: 60})

	if g.Machine() != nil {
		t.Error("machine built on a tiny screen")
	}
	scr := core.NewScreen(8, 5)
	g.Render(scr)
	g.Step(press(core.ActionSpin))
	if g.State().Busy {
		t.Error("tiny game should stay idle")
	}
}

func TestGameGlyphFallback(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})
	g := New(Variants[0])
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 12, TickRate: 60})
	if g.Machine() == nil {
		t.Fatal("no machine at 30x12")
	}
	if !g.glyph {
		t.Error("small tiles should switch to glyph mode")
	}
}

func TestGameDeterminism(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})

	run := func() []Snapshot {
		g := newTestGame(t, 777)
		var out []Snapshot
		for i := range 300 {
			in := core.NewInputFrame()
			switch i {
			case 0, 150:
				in.Set(core.ActionSpin)
			case 40:
				in.Set(core.ActionStop)
			}
			g.Step(in)
			if i%10 == 0 {
				out = append(out, g.Snapshot())
			}
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different snapshots")
	}
}

func TestGameResizeKeepsSession(t *testing.T) {
	frames := []*bridge.Snapshot{{GridIndices: [][]int{{1}}, Tokens: 10}}
	useOptions(t, Options{
		Config: config.DefaultSlotsConfig(),
		NewBridge: func() (bridge.Bridge, error) {
			return bridge.NewCacheBridgeFrames(frames)
		},
	})
	g := newTestGame(t, 2)
	g.Step(press(core.ActionBetUp))

	g.Step(press(core.ActionSpin))
	if g.Resize(60, 20) {
		t.Error("Resize() should refuse while spinning")
	}
	stepUntilIdle(t, g)
	for range 60 {
		g.Step(core.NewInputFrame())
	}

	if !g.Resize(40, 16) {
		t.Fatal("Resize() refused while idle")
	}
	if g.Machine() == nil {
		t.Fatal("no machine after resize")
	}
	if s := g.Snapshot(); s.Round != 1 || s.Tokens != 10 {
		t.Errorf("HUD after resize: round %d tokens %d, expected 1/10", s.Round, s.Tokens)
	}
	if vp := g.Machine().Layout().Viewport(); vp.W > 36 {
		t.Errorf("viewport width %v does not fit a 40 column screen", vp.W)
	}

	g.Step(press(core.ActionSpin))
	stepUntilIdle(t, g)
	if s := g.Snapshot(); s.Round != 2 {
		t.Errorf("Round after second spin = %d, expected 2", s.Round)
	}
}

func TestGameLeverAnimation(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})
	g := newTestGame(t, 5)

	g.Step(press(core.ActionSpin))
	if g.lever <= 0 {
		t.Fatalf("lever = %v after spin, expected pulled", g.lever)
	}

	peak := g.lever
	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
		peak = max(peak, g.lever)
	}
	if peak != 1 {
		t.Errorf("lever peak = %v, expected 1", peak)
	}
	if g.lever != 0 || g.leverBusy {
		t.Errorf("lever = %v busy=%v after one second, expected at rest", g.lever, g.leverBusy)
	}
	if clock := g.Snapshot().Clock; clock <= 1 {
		t.Errorf("Snapshot().Clock = %v, expected > 1s", clock)
	}
}

func TestGameRounds(t *testing.T) {
	grid := [][]int{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}, {5, 5, 5}}
	frames := []*bridge.Snapshot{{GridIndices: grid, Tokens: 20, MaxBet: 3}}
	useOptions(t, Options{
		Config: config.DefaultSlotsConfig(),
		NewBridge: func() (bridge.Bridge, error) {
			return bridge.NewCacheBridgeFrames(frames)
		},
	})
	g := newTestGame(t, 3)

	g.Step(press(core.ActionBetUp))
	g.Step(press(core.ActionRound))
	if s := g.Snapshot(); s.Round != 1 || !s.InRound || s.Bet != 0 {
		t.Errorf("after start: round %d in_round %v bet %d, expected 1/true/0", s.Round, s.InRound, s.Bet)
	}
	if g.message != "Round started" {
		t.Errorf("message = %q, expected round start notice", g.message)
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Round 1*") {
		t.Error("HUD does not mark the open round")
	}

	g.Step(press(core.ActionSpin))
	stepUntilIdle(t, g)
	if s := g.Snapshot(); s.Round != 1 || !s.InRound {
		t.Errorf("spin inside round: round %d in_round %v, expected 1/true", s.Round, s.InRound)
	}

	g.Step(press(core.ActionRound))
	if s := g.Snapshot(); s.Round != 1 || s.InRound {
		t.Errorf("after end: round %d in_round %v, expected 1/false", s.Round, s.InRound)
	}
	if g.message != "Round over" {
		t.Errorf("message = %q, expected round end notice", g.message)
	}
}

func TestGameRoundNeedsBridge(t *testing.T) {
	useOptions(t, Options{Config: config.DefaultSlotsConfig()})
	g := newTestGame(t, 3)

	g.Step(press(core.ActionRound))
	if s := g.Snapshot(); s.Round != 0 || s.InRound {
		t.Errorf("free play round toggle changed HUD: %+v", s)
	}
}

// lostReplyBridge plays every spin on the backend but never delivers the
// reply, like a read timeout after the request went through.
type lostReplyBridge struct {
	*bridge.CacheBridge
}

func (b lostReplyBridge) Spin(ctx context.Context) (*bridge.Snapshot, error) {
	if _, err := b.CacheBridge.Spin(ctx); err != nil {
		return nil, err
	}
	return nil, errors.New("read tcp: i/o timeout")
}

func TestGameRecoversLateResult(t *testing.T) {
	grid := [][]int{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}, {5, 5, 5}}
	frames := []*bridge.Snapshot{{GridIndices: grid, Tokens: 20, MaxBet: 3}}
	useOptions(t, Options{
		Config: config.DefaultSlotsConfig(),
		NewBridge: func() (bridge.Bridge, error) {
			c, err := bridge.NewCacheBridgeFrames(frames)
			return lostReplyBridge{c}, err
		},
	})

	t.Run("bet consumed", func(t *testing.T) {
		g := newTestGame(t, 4)
		g.Step(press(core.ActionBetUp))
		g.Step(press(core.ActionSpin))
		if !g.source.Lost() {
			t.Fatal("spin reply should count as lost")
		}

		stepUntilIdle(t, g)
		if g.source.Lost() {
			t.Error("late result was not recovered")
		}
		if !reflect.DeepEqual(g.Machine().LastResult(), Grid(grid)) {
			t.Errorf("LastResult() = %v, expected %v", g.Machine().LastResult(), grid)
		}
		if !reflect.DeepEqual(g.Machine().Visible(), Grid(grid)) {
			t.Errorf("Visible() = %v, expected %v", g.Machine().Visible(), grid)
		}
		if s := g.Snapshot(); s.Round != 1 || s.Bet != 0 {
			t.Errorf("HUD after late result: round %d bet %d, expected 1/0", s.Round, s.Bet)
		}
	})

	t.Run("no bet sent", func(t *testing.T) {
		g := newTestGame(t, 4)
		g.Step(press(core.ActionSpin))
		g.Step(press(core.ActionStop))
		stepUntilIdle(t, g)

		if !g.source.Lost() {
			t.Error("a spin without a bet cannot be confirmed and should stay lost")
		}
		if reflect.DeepEqual(g.Machine().LastResult(), Grid(grid)) {
			t.Error("reels landed on the backend grid without confirmation")
		}
	})
}
