package tictactoe

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// Cell is the value of one board position. The zero value is Empty.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

const emptyMark = " "

// String returns the mark of the cell, a single blank for Empty.
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return emptyMark
	}
}

// IsSide reports whether the cell holds a player mark.
func (c Cell) IsSide() bool {
	return c == X || c == O
}

// Other returns the opposing side. Empty has no opponent.
func (c Cell) Other() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// ParseCell normalizes an external marker. Blank strings, "-", "_", nil, false
// and a zero of any numeric type all mean Empty; "x" and "o" are accepted in any case.
func ParseCell(value any) (Cell, error) {
	switch v := value.(type) {
	case nil:
		return Empty, nil
	case Cell:
		if v == Empty || v.IsSide() {
			return v, nil
		}
	case bool:
		if !v {
			return Empty, nil
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		if reflect.ValueOf(v).IsZero() {
			return Empty, nil
		}
	case string:
		switch strings.ToUpper(v) {
		case "", " ", "-", "_":
			return Empty, nil
		case "X":
			return X, nil
		case "O":
			return O, nil
		}
	}

	return Empty, fmt.Errorf("%w: %v", apperror.ErrInvalidMarker, value)
}
