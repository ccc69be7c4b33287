package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// CurrentSide returns the side to move. It is derived from the mark counts:
// equal counts mean the first mover is up.
func (s *Session) CurrentSide() Cell {
	if s.board.Count(s.first) == s.board.Count(s.first.Other()) {
		return s.first
	}

	return s.first.Other()
}

// Winner returns the completed line, or nil while nobody has won.
func (s *Session) Winner() *Win {
	return s.board.winner()
}

// IsDraw reports whether the board is full. Asking after a win is a caller bug.
func (s *Session) IsDraw() (bool, error) {
	if win := s.Winner(); win != nil {
		return false, fmt.Errorf("%w: draw checked after %s won on %s", apperror.ErrInvariantViolation, win.Side, win.Line)
	}

	return s.board.IsFull(), nil
}

// IsOver reports whether the game has a winner or no empty cell left.
func (s *Session) IsOver() bool {
	return s.Winner() != nil || s.board.IsFull()
}

// ApplyMove places side at the given cell and returns the win it completed, if any.
// On error the session is left unchanged.
func (s *Session) ApplyMove(side Cell, at Coord) (*Win, error) {
	if s.Winner() != nil {
		return nil, apperror.ErrGameOver
	}

	if !at.valid() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidCell, at)
	}

	if current := s.CurrentSide(); side != current {
		return nil, fmt.Errorf("%w: %s moved, %s expected", apperror.ErrWrongSide, side, current)
	}

	if s.board.At(at.Row, at.Col) != Empty {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, at)
	}

	s.board.set(at, side)
	s.lastMove = &at

	return s.Winner(), nil
}

// ApplyIndex is ApplyMove addressed by a flat index 0..8.
func (s *Session) ApplyIndex(side Cell, index int) (*Win, error) {
	at, err := CoordFromIndex(index)
	if err != nil {
		return nil, err
	}

	return s.ApplyMove(side, at)
}
