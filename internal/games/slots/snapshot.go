package slots

// MachineSnapshot captures engine state for determinism testing.
type MachineSnapshot struct {
	State   State
	Target  int
	Moved   []int
	Stopped []int
	Runs    []int
	Visible Grid
	Spins   int
}

// Snapshot returns the current engine state.
func (m *Machine) Snapshot() MachineSnapshot {
	s := MachineSnapshot{
		State:   m.state,
		Target:  m.target,
		Moved:   append([]int(nil), m.moved...),
		Stopped: append([]int(nil), m.stopped...),
		Runs:    make([]int, m.cfg.Reels),
		Visible: m.Visible(),
		Spins:   m.spins,
	}
	for reel := range s.Runs {
		s.Runs[reel] = m.Runs(reel)
	}
	return s
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Clock   float64 // scheduler time in seconds
	Lever   float64
	Machine MachineSnapshot
	Tokens  int
	Bet     int
	Round   int
	InRound bool
	Paused  bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    g.tick,
		Lever:   g.lever,
		Tokens:  g.hud.Tokens,
		Bet:     g.hud.PendingBet,
		Round:   g.hud.Round,
		InRound: g.hud.InRound,
		Paused:  g.paused,
	}
	if g.sched != nil {
		s.Clock = g.sched.Now()
	}
	if g.machine != nil {
		s.Machine = g.machine.Snapshot()
	}
	return s
}
