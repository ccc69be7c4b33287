package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// Session is one game: a board, the side that moved first and the last move.
// A session owns its board; it is not safe for concurrent use.
type Session struct {
	board    Board
	first    Cell
	lastMove *Coord
}

type Option func(*Session)

// WithFirst sets the side that opens the game. Empty is ignored.
func WithFirst(side Cell) Option {
	return func(s *Session) {
		if side.IsSide() {
			s.first = side
		}
	}
}

// NewSession starts a game on an empty board with X moving first.
func NewSession(opts ...Option) *Session {
	s := &Session{board: NewBoard(), first: X}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ResumeSession continues a game from an existing board. The board must be
// reachable by legal play from the session's first mover.
func ResumeSession(board Board, opts ...Option) (*Session, error) {
	s := NewSession(opts...)

	lead := board.Count(s.first) - board.Count(s.first.Other())
	if lead != 0 && lead != 1 {
		return nil, fmt.Errorf("%w: %s leads by %d marks", apperror.ErrInvariantViolation, s.first, lead)
	}

	if board.lineOf(X) != nil && board.lineOf(O) != nil {
		return nil, fmt.Errorf("%w: both sides hold a line", apperror.ErrInvariantViolation)
	}

	s.board = board

	return s, nil
}

// Board returns a copy of the current board.
func (s *Session) Board() Board {
	return s.board
}

func (s *Session) First() Cell {
	return s.first
}

// LastMove returns the most recent move, if one was made in this session.
func (s *Session) LastMove() (Coord, bool) {
	if s.lastMove == nil {
		return Coord{}, false
	}

	return *s.lastMove, true
}
