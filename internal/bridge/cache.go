package bridge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// defaultMaxBet applies when recorded frames carry no max_bet.
const defaultMaxBet = 5

// CacheBridge replays recorded spin snapshots from a directory. Files named
// *.json are played in lexical order and the sequence cycles. Token, bet and
// round bookkeeping is local and follows the backend's error codes.
//
// A spin outside a started round counts as a round of its own; spins inside
// one keep its number until EndRound.
type CacheBridge struct {
	mu      sync.Mutex
	frames  []*Snapshot
	next    int
	started bool
	current Snapshot
}

// NewCacheBridge loads every *.json snapshot in dir.
func NewCacheBridge(dir string) (*CacheBridge, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("bridge: cache glob: %w", err)
	}
	sort.Strings(paths)

	frames := make([]*Snapshot, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("bridge: cache read: %w", err)
		}
		s, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("bridge: cache %s: %w", filepath.Base(p), err)
		}
		frames = append(frames, s)
	}
	return NewCacheBridgeFrames(frames)
}

// NewCacheBridgeFrames replays the given snapshots.
func NewCacheBridgeFrames(frames []*Snapshot) (*CacheBridge, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("bridge: cache has no snapshots")
	}
	return &CacheBridge{frames: frames}, nil
}

// Len returns the number of recorded frames.
func (c *CacheBridge) Len() int {
	return len(c.frames)
}

func (c *CacheBridge) NewGame(_ context.Context, seed int64) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	first := c.frames[0]
	c.next = 0
	c.started = true
	c.current = Snapshot{
		Tokens: first.Tokens,
		MaxBet: first.MaxBet,
		Seed:   seed,
	}
	if c.current.MaxBet <= 0 {
		c.current.MaxBet = defaultMaxBet
	}
	return c.current.Clone(), nil
}

// StartRound opens the next round and drops the pending bet.
func (c *CacheBridge) StartRound(context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return noGame(OpStartRound)
	}
	c.current.Round++
	c.current.InRound = true
	c.current.PendingBet = 0
	return c.reply(OpStartRound, "")
}

// EndRound closes the current round, if any, and drops the pending bet.
func (c *CacheBridge) EndRound(context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return noGame(OpEndRound)
	}
	c.current.InRound = false
	c.current.PendingBet = 0
	return c.reply(OpEndRound, "")
}

func (c *CacheBridge) InsertToken(context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return noGame(OpInsertToken)
	}
	switch {
	case c.current.PendingBet >= c.current.MaxBet:
		return c.reply(OpInsertToken, "max_bet_reached")
	case c.current.Tokens-c.current.PendingBet <= 0:
		return c.reply(OpInsertToken, "no_tokens")
	}
	c.current.PendingBet++
	return c.reply(OpInsertToken, "")
}

func (c *CacheBridge) RemoveToken(context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return noGame(OpRemoveToken)
	}
	if c.current.PendingBet <= 0 {
		return c.reply(OpRemoveToken, "no_bet_to_remove")
	}
	c.current.PendingBet--
	return c.reply(OpRemoveToken, "")
}

// Spin plays the next recorded frame. The recorded tokens replace the local
// count; the pending bet is consumed.
func (c *CacheBridge) Spin(context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return noGame(OpSpin)
	}

	frame := c.frames[c.next%len(c.frames)]
	c.next++

	seed, maxBet := c.current.Seed, c.current.MaxBet
	round, inRound := c.current.Round, c.current.InRound
	if !inRound {
		round++
	}
	c.current = *frame.Clone()
	c.current.Error = ""
	c.current.PendingBet = 0
	c.current.Seed = seed
	c.current.Round = round
	c.current.InRound = inRound
	if c.current.MaxBet <= 0 {
		c.current.MaxBet = maxBet
	}
	return c.current.Clone(), nil
}

func (c *CacheBridge) Snapshot(context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return noGame(OpSnapshot)
	}
	return c.current.Clone(), nil
}

func (c *CacheBridge) reply(op, code string) (*Snapshot, error) {
	s := c.current.Clone()
	s.Error = code
	return s, remoteError(op, s)
}

func noGame(op string) (*Snapshot, error) {
	s := &Snapshot{Error: "no_game"}
	return s, remoteError(op, s)
}
