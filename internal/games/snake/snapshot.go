package snake

import "time"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateWaiting  GameStateType = "waiting"
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Steps    int
	Score    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Point
	FoodX    int
	FoodY    int
	Speed    time.Duration
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.ended:
		state = StateGameOver
	case !g.started:
		state = StateWaiting
	}

	return Snapshot{
		Steps:    g.stepCount,
		Score:    g.score,
		SnakeLen: len(g.body),
		HeadX:    g.body[0].X,
		HeadY:    g.body[0].Y,
		Dir:      g.dir,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		Speed:    g.speed,
		State:    state,
	}
}
