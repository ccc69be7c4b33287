package usecase

import "github.com/rocketscienceinc/tictactoe-bot/internal/codec"

type UpdateKind int

const (
	UpdateUnrecognized UpdateKind = iota
	UpdateStart
	UpdateHelp
	UpdateNewGame
	UpdateMove
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateStart:
		return "start"
	case UpdateHelp:
		return "help"
	case UpdateNewGame:
		return "new_game"
	case UpdateMove:
		return "move"
	default:
		return "unrecognized"
	}
}

// Update is one event delivered by the chat platform.
type Update struct {
	ID       int
	ChatID   int64
	Kind     UpdateKind
	UserName string
	Text     string

	// Cell and Keyboard are set for moves: the tapped cell index and the
	// keyboard the tap came from.
	Cell     int
	Keyboard codec.Keyboard
}

// Reply is what the chat platform should show. A nil Keyboard sends text only.
type Reply struct {
	Text     string
	Keyboard codec.Keyboard
}
