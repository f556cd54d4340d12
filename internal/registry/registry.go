// Package registry maps game IDs to factories. Games register in init so
// the terminal and SSH front ends can build them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/jump-quest/internal/core"
)

// Game is a fixed-step simulation driven by a front end.
// Implementations never touch the terminal: the front end maps keys to an
// InputFrame, calls Step once per tick and hands a Screen to Render.
type Game interface {
	// ID is the stable name used on the command line and in score rows.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts over with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick and reports state plus any events raised.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Factory builds a fresh game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// IDs returns the registered IDs in sorted order.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Create builds a new instance of the game registered as id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}
