package apperror

import "errors"

var (
	ErrInvalidShape  = errors.New("board must have exactly 9 cells")
	ErrInvalidMarker = errors.New("unknown cell marker")
	ErrInvalidCell   = errors.New("invalid cell index")

	ErrWrongSide    = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameOver     = errors.New("game is already finished")

	ErrNoLegalMove        = errors.New("no legal move available")
	ErrInvariantViolation = errors.New("game invariant violated")
)

// IsMoveRejected reports whether err is an expected rejection of a player move.
// Such errors leave the game untouched and are shown to the player.
func IsMoveRejected(err error) bool {
	return errors.Is(err, ErrWrongSide) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrGameOver) ||
		errors.Is(err, ErrInvalidCell)
}
