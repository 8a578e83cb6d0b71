package tictactoe

// Mark is the content of a cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// String returns "X", "O" or "".
func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Other returns the opposing mark.
func (m Mark) Other() Mark {
	if m == X {
		return O
	}
	return X
}

// Board is the 3x3 grid in row-major order.
type Board [9]Mark

// Lines lists the winning triples: rows, then columns, then diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns the first completed triple in Lines order and its mark.
// ok is false when no triple is complete.
func (b Board) Winner() (line [3]int, m Mark, ok bool) {
	for _, l := range Lines {
		a := b[l[0]]
		if a != Empty && a == b[l[1]] && a == b[l[2]] {
			return l, a, true
		}
	}
	return [3]int{}, Empty, false
}

// Full reports whether every cell is taken.
func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}
