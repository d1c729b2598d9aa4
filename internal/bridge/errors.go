package bridge

import (
	"errors"
	"fmt"
)

// Sentinels for the well-known backend error codes. Use errors.Is against a
// *RemoteError.
var (
	ErrNoGame        = errors.New("bridge: no game")
	ErrMaxBetReached = errors.New("bridge: max bet reached")
	ErrNoTokens      = errors.New("bridge: no tokens")
	ErrNoBetToRemove = errors.New("bridge: no bet to remove")

	// ErrNoGrid means a spin snapshot carried no usable grid.
	ErrNoGrid = errors.New("bridge: snapshot has no grid")
)

var codeSentinels = map[string]error{
	"no_game":          ErrNoGame,
	"max_bet_reached":  ErrMaxBetReached,
	"no_tokens":        ErrNoTokens,
	"no_bet_to_remove": ErrNoBetToRemove,
}

// RemoteError is an error code reported by the backend in a snapshot's
// "error" field.
type RemoteError struct {
	Op   string
	Code string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bridge: %s: %s", e.Op, e.Code)
}

// Is matches the sentinel for the error code.
func (e *RemoteError) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

// remoteError returns a *RemoteError for a snapshot carrying an error code.
func remoteError(op string, s *Snapshot) error {
	if s == nil || s.Error == "" {
		return nil
	}
	return &RemoteError{Op: op, Code: s.Error}
}
