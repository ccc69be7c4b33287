package tictactoe

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// Intn is the randomness an AutoPlayer draws from. *rand.Rand satisfies it.
type Intn interface {
	Intn(n int) int
}

// AutoPlayer picks a uniformly random empty cell. It is safe for concurrent use;
// the sessions passed to it are not shared.
type AutoPlayer struct {
	mu  sync.Mutex
	rnd Intn
}

// NewAutoPlayer uses rnd, or a time-seeded generator when rnd is nil.
func NewAutoPlayer(rnd Intn) *AutoPlayer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	return &AutoPlayer{rnd: rnd}
}

// Move plays for the side whose turn it is.
func (that *AutoPlayer) Move(s *Session) (*Win, error) {
	return that.MoveAs(s, s.CurrentSide())
}

// MoveAs plays for side. The game must still be running.
func (that *AutoPlayer) MoveAs(s *Session, side Cell) (*Win, error) {
	if s.Winner() != nil || s.board.IsFull() {
		return nil, apperror.ErrNoLegalMove
	}

	available := s.board.EmptyCoords()

	that.mu.Lock()
	chosen := available[that.rnd.Intn(len(available))]
	that.mu.Unlock()

	win, err := s.ApplyMove(side, chosen)
	if err != nil {
		return nil, fmt.Errorf("auto player failed to make turn: %w", err)
	}

	return win, nil
}
