package tetris

import "github.com/vovakirdan/canvas-arcade/internal/core"

// Kind identifies one of the seven pieces.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindL
	KindJ
	KindS
	KindZ
	kindCount
)

type pieceDef struct {
	name  string
	shape Shape
	color core.Color
}

var pieceDefs = [kindCount]pieceDef{
	KindI: {"I", Shape{{true, true, true, true}}, core.MustHex("#00FFFF")},
	KindO: {"O", Shape{{true, true}, {true, true}}, core.MustHex("#FFFF00")},
	KindT: {"T", Shape{{true, true, true}, {false, true, false}}, core.MustHex("#800080")},
	KindL: {"L", Shape{{true, true, true}, {true, false, false}}, core.MustHex("#FFA500")},
	KindJ: {"J", Shape{{true, true, true}, {false, false, true}}, core.MustHex("#0000FF")},
	KindS: {"S", Shape{{true, true, false}, {false, true, true}}, core.MustHex("#00FF00")},
	KindZ: {"Z", Shape{{false, true, true}, {true, true, false}}, core.MustHex("#FF0000")},
}

// String returns the piece letter.
func (k Kind) String() string {
	if k >= kindCount {
		return "?"
	}
	return pieceDefs[k].name
}

// Color returns the piece color.
func (k Kind) Color() core.Color {
	return pieceDefs[k%kindCount].color
}

// cellColor maps a board cell value back to its piece color.
func cellColor(v uint8) core.Color {
	return Kind(v - 1).Color()
}

// NewPiece returns a fresh copy of the piece's spawn shape at (x, y).
func NewPiece(k Kind, x, y int) Piece {
	src := pieceDefs[k].shape
	shape := make(Shape, len(src))
	for i, row := range src {
		shape[i] = append([]bool(nil), row...)
	}
	return Piece{Kind: k, Shape: shape, X: x, Y: y}
}
