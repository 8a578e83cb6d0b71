package tetris

// Shape is a piece matrix. Row 0 is the top row of the piece.
type Shape [][]bool

// Rotate returns the shape turned a quarter clockwise (transpose, then
// reverse each row).
func (s Shape) Rotate() Shape {
	if len(s) == 0 {
		return nil
	}
	out := make(Shape, len(s[0]))
	for i := range out {
		out[i] = make([]bool, len(s))
		for j := range s {
			out[i][j] = s[len(s)-1-j][i]
		}
	}
	return out
}

// Cells calls fn for each occupied cell as a (col, row) offset.
func (s Shape) Cells(fn func(col, row int)) {
	for r, line := range s {
		for c, on := range line {
			if on {
				fn(c, r)
			}
		}
	}
}

// Piece is a falling piece. X is the board column of shape column 0 and Y
// the board row of shape row 0; shape row r lands on board row Y-r.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// Board is the locked-cell matrix. Row 0 is the bottom row; a cell holds
// Kind+1 of the piece that filled it, or 0 when empty.
type Board struct {
	cols, rows int
	cells      [][]uint8
}

// NewBoard creates an empty board.
func NewBoard(cols, rows int) *Board {
	b := &Board{cols: cols, rows: rows}
	b.Reset()
	return b
}

// Reset empties every cell.
func (b *Board) Reset() {
	b.cells = make([][]uint8, b.rows)
	for y := range b.cells {
		b.cells[y] = make([]uint8, b.cols)
	}
}

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// At returns the cell content at (x, y). Out-of-bounds cells read as empty.
func (b *Board) At(x, y int) uint8 {
	if !b.inBounds(x, y) {
		return 0
	}
	return b.cells[y][x]
}

// Set stores v at (x, y). Out-of-bounds writes are dropped.
func (b *Board) Set(x, y int, v uint8) {
	if b.inBounds(x, y) {
		b.cells[y][x] = v
	}
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// Collides reports whether p leaves the board or overlaps a locked cell.
func (b *Board) Collides(p Piece) bool {
	hit := false
	p.Shape.Cells(func(c, r int) {
		x, y := p.X+c, p.Y-r
		if !b.inBounds(x, y) || b.cells[y][x] != 0 {
			hit = true
		}
	})
	return hit
}

// Lock writes p into the board.
func (b *Board) Lock(p Piece) {
	p.Shape.Cells(func(c, r int) {
		b.Set(p.X+c, p.Y-r, uint8(p.Kind)+1)
	})
}

// ClearedRow describes a removed row before it was removed.
type ClearedRow struct {
	Y     int
	Cells []uint8
}

// ClearLines removes every full row, shifting the rows above it down and
// adding an empty row at the top. It returns the removed rows in the order
// they were found, with Y relative to the board at the time of removal.
func (b *Board) ClearLines() []ClearedRow {
	var cleared []ClearedRow
	for y := 0; y < b.rows; y++ {
		if !b.full(y) {
			continue
		}
		cleared = append(cleared, ClearedRow{Y: y, Cells: b.cells[y]})
		b.cells = append(b.cells[:y:y], b.cells[y+1:]...)
		b.cells = append(b.cells, make([]uint8, b.cols))
		y-- // recheck the row that moved down
	}
	return cleared
}

func (b *Board) full(y int) bool {
	for _, v := range b.cells[y] {
		if v == 0 {
			return false
		}
	}
	return true
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for _, row := range b.cells {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
