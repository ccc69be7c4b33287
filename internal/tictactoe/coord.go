package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// Coord addresses a cell by row and column, both in [0, Size).
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CoordFromIndex converts a row-major flat index 0..8.
func CoordFromIndex(index int) (Coord, error) {
	if index < 0 || index >= CellCount {
		return Coord{}, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	return Coord{Row: index / Size, Col: index % Size}, nil
}

// Index returns the row-major flat index.
func (c Coord) Index() int {
	return c.Row*Size + c.Col
}

func (c Coord) valid() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
