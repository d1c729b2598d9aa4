// Package bridge talks to the slots backend. Every operation returns a JSON
// snapshot of game state; failures are reported in the snapshot's "error"
// field.
package bridge

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Operation names, shared by the HTTP client and the dev server routes.
const (
	OpNewGame     = "new_game"
	OpStartRound  = "start_round"
	OpEndRound    = "end_round"
	OpInsertToken = "insert_token"
	OpRemoveToken = "remove_token"
	OpSpin        = "spin"
	OpSnapshot    = "snapshot"
)

// Snapshot is the subset of backend state the front end consumes.
// GridIndices is column-major: GridIndices[reel][row].
type Snapshot struct {
	GridIndices [][]int `json:"grid_indices,omitempty"`
	Error       string  `json:"error,omitempty"`
	Tokens      int     `json:"tokens"`
	PendingBet  int     `json:"pending_bet"`
	MaxBet      int     `json:"max_bet"`
	Seed        int64   `json:"seed,omitempty"`
	Round       int     `json:"round"`
	InRound     bool    `json:"in_round"`
}

// Decode parses a snapshot. Unknown fields are ignored.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("bridge: decode snapshot: %w", err)
	}
	return &s, nil
}

// Encode serializes a snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	if s.GridIndices != nil {
		c.GridIndices = make([][]int, len(s.GridIndices))
		for i, col := range s.GridIndices {
			c.GridIndices[i] = append([]int(nil), col...)
		}
	}
	return &c
}

// HasGrid reports whether the snapshot carries at least one grid cell.
func (s *Snapshot) HasGrid() bool {
	if s == nil {
		return false
	}
	for _, col := range s.GridIndices {
		if len(col) > 0 {
			return true
		}
	}
	return false
}

// Bridge is a backend session. Methods return the snapshot even when the
// backend reports an error code, alongside a *RemoteError.
type Bridge interface {
	NewGame(ctx context.Context, seed int64) (*Snapshot, error)
	StartRound(ctx context.Context) (*Snapshot, error)
	EndRound(ctx context.Context) (*Snapshot, error)
	InsertToken(ctx context.Context) (*Snapshot, error)
	RemoveToken(ctx context.Context) (*Snapshot, error)
	Spin(ctx context.Context) (*Snapshot, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
}
