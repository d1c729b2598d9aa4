package slots

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-slots/internal/bridge"
)

// BridgeSource is a ResultSource that spins on a bridge session. Failures are
// logged and reported so the machine falls back to random symbols.
type BridgeSource struct {
	bridge  bridge.Bridge
	timeout time.Duration
	logger  *log.Logger
	last    *bridge.Snapshot
	lost    bool // last spin reply failed in transport, not at the backend
}

// NewBridgeSource wraps b. A zero timeout means no deadline.
func NewBridgeSource(b bridge.Bridge, timeout time.Duration, logger *log.Logger) *BridgeSource {
	return &BridgeSource{bridge: b, timeout: timeout, logger: logger}
}

func (s *BridgeSource) context() (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(context.Background(), s.timeout)
	}
	return context.WithCancel(context.Background())
}

// Result spins the backend and returns its grid.
func (s *BridgeSource) Result(reels, rows int) (Grid, error) {
	ctx, cancel := s.context()
	defer cancel()

	snap, err := s.bridge.Spin(ctx)
	s.last = snap
	var re *bridge.RemoteError
	s.lost = err != nil && !errors.As(err, &re)
	if err != nil {
		s.logger.Warn("spin failed, using random symbols", "error", err)
		return nil, err
	}
	if !snap.HasGrid() {
		s.logger.Warn("spin snapshot has no grid, using random symbols", "round", snap.Round)
		return nil, bridge.ErrNoGrid
	}

	g := Grid(snap.GridIndices)
	if len(g) != reels || len(g[0]) != rows {
		s.logger.Debug("grid shape mismatch", "reels", len(g), "rows", len(g[0]), "want_reels", reels, "want_rows", rows)
	}
	return g.Clone(), nil
}

// Lost reports whether the last spin reply was lost in transport, so the
// backend may still have played it.
func (s *BridgeSource) Lost() bool {
	return s.lost
}

// Recover reads back a spin whose reply was lost. bet is the pending bet when
// the spin was sent; the spin counts as played once the backend shows that
// bet consumed and a grid. On success the snapshot becomes Last.
func (s *BridgeSource) Recover(bet int) (Grid, bool) {
	if !s.lost || bet <= 0 {
		return nil, false
	}
	ctx, cancel := s.context()
	defer cancel()

	snap, err := s.bridge.Snapshot(ctx)
	if err != nil {
		s.logger.Debug("late result unavailable", "error", err)
		return nil, false
	}
	if snap.PendingBet != 0 || !snap.HasGrid() {
		return nil, false
	}
	s.lost = false
	s.last = snap
	s.logger.Info("recovered late spin result", "round", snap.Round)
	return Grid(snap.GridIndices).Clone(), true
}

// Last returns the snapshot of the most recent spin call. It may carry an
// error code.
func (s *BridgeSource) Last() *bridge.Snapshot {
	return s.last
}
