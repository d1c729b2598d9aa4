package config

import "fmt"

// PacePreset represents a named spin tempo.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceTurbo   PacePreset = "turbo"
	PaceFixed   PacePreset = "fixed"
)

// paceScale holds the multipliers a preset applies.
type paceScale struct {
	speed, runtime, delay float64
}

var paceScales = map[PacePreset]paceScale{
	PaceRelaxed: {speed: 0.75, runtime: 1.25, delay: 1.5},
	PaceNormal:  {speed: 1, runtime: 1, delay: 1},
	PaceTurbo:   {speed: 2, runtime: 0.6, delay: 0.5},
	PaceFixed:   {speed: 1, runtime: 1, delay: 0},
}

// ParsePace validates a preset name. Empty means normal.
func ParsePace(name string) (PacePreset, error) {
	if name == "" {
		return PaceNormal, nil
	}
	p := PacePreset(name)
	if _, ok := paceScales[p]; !ok {
		return "", fmt.Errorf("config: unknown pace %q (relaxed, normal, turbo, fixed)", name)
	}
	return p, nil
}

// ApplyPace scales machine timing for a preset. Fixed keeps the tempo but
// starts and stops all reels together.
func ApplyPace(m *MachineConfig, preset PacePreset) {
	s, ok := paceScales[preset]
	if !ok {
		return
	}
	m.Speed *= s.speed
	m.Runtime *= s.runtime
	m.ReelDelay *= s.delay
}
