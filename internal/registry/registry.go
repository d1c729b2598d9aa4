// Package registry provides a global registry for machine factories.
// Machine variants register themselves in init() functions, allowing the
// platform to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-slots/internal/core"
)

// Game is the interface every playable machine implements.
// Implementations contain pure logic with no Bubble Tea dependency; the
// platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier (e.g. "slots", "slots_mini").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds or rebuilds the machine for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo contains metadata about a registered machine.
type GameInfo struct {
	ID      string
	Title   string
	Summary string
}

// Factory is a function that creates a new instance of a machine.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a machine factory to the registry.
// Panics if a machine with the same ID is already registered.
func Register(id, summary string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: machine %q already registered", id))
	}

	// Title comes from a throwaway instance
	entries[id] = entry{
		factory: f,
		info:    GameInfo{ID: id, Title: f().Title(), Summary: summary},
	}
}

// List returns information about all registered machines, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new machine by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown machine %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a machine with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
