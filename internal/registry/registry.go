// Package registry provides a global registry for enemy brain factories.
// Brains register themselves in init() functions, allowing levels and the
// command line to pick enemy behaviour by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
)

// BrainInfo contains metadata about a registered brain.
type BrainInfo struct {
	ID          string
	Description string
}

// Factory creates a new brain. Brains that need randomness draw it from
// dice so that a seeded game stays reproducible.
type Factory func(dice engine.Dice) engine.Brain

type entry struct {
	factory     Factory
	description string
}

var (
	brains = make(map[string]entry)
	mu     sync.RWMutex
)

// Register adds a brain factory to the registry.
// Typically called from an init() function.
// Panics if a brain with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := brains[id]; exists {
		panic(fmt.Sprintf("registry: brain %q already registered", id))
	}

	brains[id] = entry{factory: f, description: description}
}

// List returns information about all registered brains, sorted by ID.
func List() []BrainInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BrainInfo, 0, len(brains))
	for id, e := range brains {
		result = append(result, BrainInfo{
			ID:          id,
			Description: e.description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new brain by its ID.
// Returns an error if the brain ID is not registered.
func Create(id string, dice engine.Dice) (engine.Brain, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := brains[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown brain %q", id)
	}

	return e.factory(dice), nil
}

// Exists checks if a brain with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := brains[id]
	return ok
}
