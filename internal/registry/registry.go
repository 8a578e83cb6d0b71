// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the session
// manager to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the contract every playable game implements.
// Games hold no host dependencies; everything they touch comes in through Env.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "snake", "tetris").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Start binds input and schedules the first frame. Calling it again while
	// running is a no-op; calling it after disposal fails.
	Start() error

	// Update advances the simulation if the game's cadence says a step is due.
	Update(ts time.Duration)

	// Draw renders the current state. It never mutates simulation state.
	Draw()
}

// Resizer is implemented by games that cache size-derived geometry.
type Resizer interface {
	Resize()
}

// Disposer is implemented by games that hold listeners, frames or UI.
type Disposer interface {
	Dispose()
}

// Env is everything a game may use. The session manager builds a fresh Env
// for each game so teardown can revoke it wholesale.
type Env struct {
	Surface  core.Surface
	Frames   core.FrameScheduler
	Input    core.InputSource
	UI       core.HostUI
	Reporter core.Reporter
	Cues     core.CuePlayer
	Rand     *rand.Rand
	Config   config.Config
	Logger   *log.Logger

	// Exit asks the session to return to game selection.
	Exit func()
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a game bound to env.
type Factory func(env Env) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}

	factories[info.ID] = f
	titles[info.ID] = info.Title
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(env)
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the registered title for id, or id itself when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}

// Unregister removes a game. Intended for tests that register fakes.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(factories, id)
	delete(titles, id)
}
