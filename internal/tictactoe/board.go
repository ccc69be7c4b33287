package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const (
	Size      = 3
	CellCount = Size * Size
)

// Board is a 3x3 grid of normalized cells in row-major order.
// Boards are values: comparing two boards with == compares their cells.
type Board struct {
	cells [Size][Size]Cell
}

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// ParseBoard builds a board from one flat token of nine markers ("XO-XO----"),
// three row tokens of three markers ("XO-", "XO-", "---") or nine single markers.
// With no arguments it returns an empty board.
func ParseBoard(markers ...string) (Board, error) {
	var tokens []string

	switch len(markers) {
	case 0:
		return NewBoard(), nil
	case 1:
		tokens = strings.Split(markers[0], "")
	case Size:
		for _, row := range markers {
			cells := strings.Split(row, "")
			if len(cells) != Size {
				return Board{}, fmt.Errorf("%w: row %q", apperror.ErrInvalidShape, row)
			}
			tokens = append(tokens, cells...)
		}
	case CellCount:
		tokens = markers
	default:
		return Board{}, fmt.Errorf("%w: got %d tokens", apperror.ErrInvalidShape, len(markers))
	}

	if len(tokens) != CellCount {
		return Board{}, fmt.Errorf("%w: got %d cells", apperror.ErrInvalidShape, len(tokens))
	}

	values := make([]any, len(tokens))
	for i, token := range tokens {
		values[i] = token
	}

	return boardFromValues(values)
}

// BoardFromGrid builds a board from a prebuilt 3x3 structure of markers.
// Any marker accepted by ParseCell may be used.
func BoardFromGrid(grid [][]any) (Board, error) {
	if len(grid) != Size {
		return Board{}, fmt.Errorf("%w: got %d rows", apperror.ErrInvalidShape, len(grid))
	}

	values := make([]any, 0, CellCount)
	for i, row := range grid {
		if len(row) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidShape, i, len(row))
		}
		values = append(values, row...)
	}

	return boardFromValues(values)
}

func boardFromValues(values []any) (Board, error) {
	var board Board

	for i, value := range values {
		cell, err := ParseCell(value)
		if err != nil {
			return Board{}, fmt.Errorf("cell %d: %w", i, err)
		}
		board.cells[i/Size][i%Size] = cell
	}

	return board, nil
}

// At returns the cell at row, col. It panics when either is outside [0, Size).
func (b Board) At(row, col int) Cell {
	return b.cells[row][col]
}

// Equal reports whether both boards hold the same cells.
func (b Board) Equal(other Board) bool {
	return b == other
}

// Count returns how many cells hold value.
func (b Board) Count(value Cell) int {
	n := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == value {
				n++
			}
		}
	}

	return n
}

// EmptyCoords lists empty cells in row-major order.
func (b Board) EmptyCoords() []Coord {
	coords := make([]Coord, 0, CellCount)
	for i, row := range b.cells {
		for j, cell := range row {
			if cell == Empty {
				coords = append(coords, Coord{Row: i, Col: j})
			}
		}
	}

	return coords
}

// IsFull reports whether no empty cell remains.
func (b Board) IsFull() bool {
	return b.Count(Empty) == 0
}

// Cells returns the cells in row-major order.
func (b Board) Cells() [CellCount]Cell {
	var cells [CellCount]Cell
	for i := range cells {
		cells[i] = b.cells[i/Size][i%Size]
	}

	return cells
}

func (b *Board) set(at Coord, value Cell) {
	b.cells[at.Row][at.Col] = value
}

// String renders the board as three rows separated by dashed lines.
func (b Board) String() string {
	rows := make([]string, 0, Size)
	for _, row := range b.cells {
		marks := make([]string, 0, Size)
		for _, cell := range row {
			marks = append(marks, " "+cell.String()+" ")
		}
		rows = append(rows, strings.Join(marks, "|"))
	}

	return strings.Join(rows, "\n"+strings.Repeat("-", 11)+"\n")
}
