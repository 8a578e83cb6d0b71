package tictactoe

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Board   Board
	Current Mark
	Score   int
	Ended   bool
	Rounds  int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:   g.board,
		Current: g.current,
		Score:   g.score,
		Ended:   g.ended,
		Rounds:  g.rounds,
	}
}
