package tetris

import "time"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Score    int
	Level    int
	Lines    int
	Interval time.Duration
	Piece    Kind
	PieceX   int
	PieceY   int
	Next     Kind
	Filled   int
	Resets   int
	Started  bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Score:    g.score,
		Level:    g.level,
		Lines:    g.lines,
		Interval: g.interval,
		Piece:    g.current.Kind,
		PieceX:   g.current.X,
		PieceY:   g.current.Y,
		Next:     g.next.Kind,
		Filled:   g.board.Filled(),
		Resets:   g.resets,
		Started:  g.started,
	}
}
