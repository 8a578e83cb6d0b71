package flappy

// GameStateType represents the current game state.
type GameStateType string

const (
	StateWaiting  GameStateType = "waiting"
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Frames   int
	Score    int
	BirdY    float64
	Velocity float64
	Speed    float64
	Pipes    int
	FirstGap float64
	Rounds   int
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver:
		state = StateGameOver
	case !g.started:
		state = StateWaiting
	}

	snap := Snapshot{
		Frames:   g.frames,
		Score:    g.score,
		BirdY:    g.birdY,
		Velocity: g.velocity,
		Speed:    g.speed,
		Pipes:    len(g.pipes.Pipes()),
		Rounds:   g.rounds,
		State:    state,
	}
	if pipes := g.pipes.Pipes(); len(pipes) > 0 {
		snap.FirstGap = pipes[0].TopHeight
	}
	return snap
}
