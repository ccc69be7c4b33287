package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResume(t *testing.T, markers ...string) *Session {
	t.Helper()

	session, err := ResumeSession(mustBoard(t, markers...))
	require.NoError(t, err)

	return session
}

func TestSession_CurrentSide(t *testing.T) {
	t.Run("X moves first by default", func(t *testing.T) {
		assert.Equal(t, X, NewSession().CurrentSide())
	})

	t.Run("Configured first mover", func(t *testing.T) {
		session := NewSession(WithFirst(O))

		assert.Equal(t, O, session.CurrentSide())
		assert.Equal(t, O, session.First())
	})

	t.Run("Sides alternate when O opens", func(t *testing.T) {
		// Given: a game opened by O
		session := NewSession(WithFirst(O))

		// When: moves are played in order until the board is full
		for _, index := range []int{4, 0, 2, 6, 3, 5, 1, 7, 8} {
			side := session.CurrentSide()
			_, err := session.ApplyIndex(side, index)
			require.NoError(t, err)

			// Then: the turn passes to the other side and O never trails X
			assert.Equal(t, side.Other(), session.CurrentSide())
			lead := session.Board().Count(O) - session.Board().Count(X)
			assert.Contains(t, []int{0, 1}, lead)
		}

		assert.Equal(t, 5, session.Board().Count(O))
	})

	t.Run("Sides alternate after every legal move", func(t *testing.T) {
		// Given: a fresh game
		session := NewSession()

		// When: moves are played in order until the board is full
		for _, index := range []int{4, 0, 2, 6, 3, 5, 1, 7, 8} {
			side := session.CurrentSide()
			_, err := session.ApplyIndex(side, index)
			require.NoError(t, err)

			// Then: the turn passes to the other side
			assert.Equal(t, side.Other(), session.CurrentSide())
		}
	})
}

func TestSession_Winner(t *testing.T) {
	testCases := []struct {
		name  string
		board []string
		side  Cell
		line  Line
	}{
		{"Main diagonal", []string{"XO-", "OX-", "--X"}, X, DiagonalMain},
		{"Anti diagonal", []string{"-OX", "OX-", "X--"}, X, DiagonalAnti},
		{"First row", []string{"XXX", "OO-", "---"}, X, Row0},
		{"Second row", []string{"X-X", "OOO", "X--"}, O, Row1},
		{"Third row", []string{"OO-", "---", "XXX"}, X, Row2},
		{"First column", []string{"XO-", "XO-", "X--"}, X, Col0},
		{"Second column", []string{"XOX", "-O-", "XO-"}, O, Col1},
		{"Third column", []string{"O-X", "O-X", "--X"}, X, Col2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a board with exactly one line of three
			session := mustResume(t, tc.board...)

			// When: looking for a winner
			win := session.Winner()

			// Then: the line is reported with its tag
			require.NotNil(t, win)
			assert.Equal(t, tc.side, win.Side)
			assert.Equal(t, tc.line, win.Line)
			for _, at := range win.Coords {
				assert.Equal(t, tc.side, session.Board().At(at.Row, at.Col))
			}
		})
	}

	t.Run("Diagonals are reported before rows", func(t *testing.T) {
		// Given: X holds the main diagonal and the first row
		session := mustResume(t, "XXX", "OXO", "OOX")

		// Then: the diagonal wins the tie-break
		win := session.Winner()
		require.NotNil(t, win)
		assert.Equal(t, DiagonalMain, win.Line)
	})

	t.Run("No winner on an ongoing board", func(t *testing.T) {
		assert.Nil(t, mustResume(t, "XO-", "-X-", "--O").Winner())
	})
}

func TestSession_IsDraw(t *testing.T) {
	t.Run("Full board without a line", func(t *testing.T) {
		session := mustResume(t, "XXO", "OOX", "XXO")

		draw, err := session.IsDraw()

		require.NoError(t, err)
		assert.True(t, draw)
		assert.Nil(t, session.Winner())
		assert.True(t, session.IsOver())
	})

	t.Run("Board with empty cells", func(t *testing.T) {
		session := mustResume(t, "XXO", "OOX", "XX-")

		draw, err := session.IsDraw()

		require.NoError(t, err)
		assert.False(t, draw)
		assert.False(t, session.IsOver())
	})

	t.Run("Asking after a win is an invariant violation", func(t *testing.T) {
		session := mustResume(t, "XXX", "OO-", "---")

		_, err := session.IsDraw()

		require.ErrorIs(t, err, apperror.ErrInvariantViolation)
	})
}

func TestSession_ApplyMove(t *testing.T) {
	t.Run("First move", func(t *testing.T) {
		// Given: a fresh game
		session := NewSession()

		// When: X plays the top left corner
		win, err := session.ApplyMove(X, Coord{Row: 0, Col: 0})

		// Then: the cell is taken, nobody won and the move is remembered
		require.NoError(t, err)
		assert.Nil(t, win)
		assert.Equal(t, X, session.Board().At(0, 0))

		last, ok := session.LastMove()
		require.True(t, ok)
		assert.Equal(t, Coord{Row: 0, Col: 0}, last)
	})

	t.Run("Winning moves", func(t *testing.T) {
		testCases := []struct {
			board []string
			at    Coord
			line  Line
		}{
			{[]string{"XO-", "XO-", "---"}, Coord{2, 0}, Col0},
			{[]string{"XX-", "OO-", "---"}, Coord{0, 2}, Row0},
			{[]string{"XO-", "OX-", "---"}, Coord{2, 2}, DiagonalMain},
			{[]string{"-OX", "OX-", "---"}, Coord{2, 0}, DiagonalAnti},
		}

		for _, tc := range testCases {
			session := mustResume(t, tc.board...)

			win, err := session.ApplyMove(X, tc.at)

			require.NoError(t, err)
			require.NotNil(t, win)
			assert.Equal(t, X, win.Side)
			assert.Equal(t, tc.line, win.Line)
		}
	})

	t.Run("Move on an occupied cell leaves the board unchanged", func(t *testing.T) {
		// Given: O to move on a board where the centre is taken
		session := mustResume(t, "---", "-X-", "---")
		before := session.Board()

		// When: O tries the centre
		win, err := session.ApplyMove(O, Coord{Row: 1, Col: 1})

		// Then: ErrCellOccupied is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Nil(t, win)
		assert.Equal(t, before, session.Board())
		_, ok := session.LastMove()
		assert.False(t, ok)
	})

	t.Run("Move out of turn", func(t *testing.T) {
		// Given: a fresh game where X is up
		session := NewSession()

		// When: O tries to move
		_, err := session.ApplyIndex(O, 1)

		// Then: ErrWrongSide is returned and the board stays empty
		require.ErrorIs(t, err, apperror.ErrWrongSide)
		assert.Equal(t, NewBoard(), session.Board())
	})

	t.Run("Invalid cell", func(t *testing.T) {
		session := NewSession()

		_, err := session.ApplyIndex(X, 9)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)

		_, err = session.ApplyMove(X, Coord{Row: 3, Col: 0})
		require.ErrorIs(t, err, apperror.ErrInvalidCell)

		_, err = session.ApplyMove(X, Coord{Row: 0, Col: -1})
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Moves after a win fail with GameOver", func(t *testing.T) {
		// Given: X completes the first column
		session := mustResume(t, "XO-", "XO-", "---")
		win, err := session.ApplyMove(X, Coord{Row: 2, Col: 0})
		require.NoError(t, err)
		require.NotNil(t, win)
		assert.Equal(t, Col0, win.Line)

		// When: O tries to keep playing
		_, err = session.ApplyMove(O, Coord{Row: 2, Col: 2})

		// Then: ErrGameOver is returned
		require.ErrorIs(t, err, apperror.ErrGameOver)
	})
}

func TestResumeSession(t *testing.T) {
	t.Run("Reachable board", func(t *testing.T) {
		session, err := ResumeSession(mustBoard(t, "XO-", "-X-", "---"))

		require.NoError(t, err)
		assert.Equal(t, O, session.CurrentSide())
		_, ok := session.LastMove()
		assert.False(t, ok)
	})

	t.Run("Too many X marks", func(t *testing.T) {
		_, err := ResumeSession(mustBoard(t, "XX-", "---", "---"))

		require.ErrorIs(t, err, apperror.ErrInvariantViolation)
	})

	t.Run("O ahead of X", func(t *testing.T) {
		_, err := ResumeSession(mustBoard(t, "O--", "---", "---"))

		require.ErrorIs(t, err, apperror.ErrInvariantViolation)
	})

	t.Run("O ahead is fine when O opens", func(t *testing.T) {
		session, err := ResumeSession(mustBoard(t, "O--", "---", "---"), WithFirst(O))

		require.NoError(t, err)
		assert.Equal(t, X, session.CurrentSide())
	})

	t.Run("Both sides holding a line", func(t *testing.T) {
		_, err := ResumeSession(mustBoard(t, "XXX", "OOO", "---"))

		require.ErrorIs(t, err, apperror.ErrInvariantViolation)
	})
}
