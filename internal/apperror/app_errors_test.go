package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMoveRejected(t *testing.T) {
	t.Run("Player rejections are recognized through wrapping", func(t *testing.T) {
		for _, err := range []error{ErrWrongSide, ErrCellOccupied, ErrGameOver, ErrInvalidCell} {
			// Given: a rejection wrapped by an upper layer
			wrapped := fmt.Errorf("failed to make turn: %w", err)

			// Then: it is classified as a rejection
			assert.True(t, IsMoveRejected(wrapped), err.Error())
		}
	})

	t.Run("Internal errors are not rejections", func(t *testing.T) {
		for _, err := range []error{ErrNoLegalMove, ErrInvariantViolation, ErrInvalidShape, ErrInvalidMarker, errors.New("boom")} {
			assert.False(t, IsMoveRejected(err), err.Error())
		}
	})
}
