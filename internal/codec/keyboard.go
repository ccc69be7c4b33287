// Package codec converts game sessions to and from the chat keyboard: nine
// playing buttons tagged with their cell index and one control button that
// starts a new game.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

const (
	// ControlTag identifies the new game button whatever its label says.
	// Sessions opened by O append oFirstSuffix so Decode can restore the opener.
	ControlTag   = "new"
	oFirstSuffix = ":o"

	LabelNewGame = "/new"
	LabelReset   = "reset"
)

// Button is one labeled, clickable keyboard cell.
type Button struct {
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

// Keyboard is a grid of buttons, row by row.
type Keyboard [][]Button

// Encode renders the session as three rows of playing buttons and a control row.
func Encode(session *tictactoe.Session) Keyboard {
	cells := session.Board().Cells()
	last, hasLast := session.LastMove()

	keyboard := make(Keyboard, 0, tictactoe.Size+1)
	for row := range tictactoe.Size {
		buttons := make([]Button, 0, tictactoe.Size)
		for col := range tictactoe.Size {
			index := row*tictactoe.Size + col
			label := cells[index].String()
			if hasLast && index != last.Index() {
				label = strings.ToLower(label)
			}

			buttons = append(buttons, Button{Label: label, Tag: strconv.Itoa(index)})
		}
		keyboard = append(keyboard, buttons)
	}

	control := Button{Label: LabelReset, Tag: ControlTag}
	if session.First() == tictactoe.O {
		control.Tag += oFirstSuffix
	}
	if session.IsOver() {
		control.Label = LabelNewGame
	}

	return append(keyboard, []Button{control})
}

// Decode rebuilds a session from a keyboard produced by Encode. Reading stops
// at the control button. The first mover comes from the control tag; without
// one, O is taken as the opener only when O is ahead.
func Decode(keyboard Keyboard) (*tictactoe.Session, error) {
	labels := make([]string, 0, tictactoe.CellCount)
	control := ""

read:
	for _, row := range keyboard {
		for _, button := range row {
			if IsControl(button.Tag) {
				control = button.Tag
				break read
			}
			labels = append(labels, button.Label)
		}
	}

	if len(labels) != tictactoe.CellCount {
		return nil, fmt.Errorf("%w: keyboard has %d playing buttons", apperror.ErrInvalidShape, len(labels))
	}

	board, err := tictactoe.ParseBoard(labels...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}

	first := tictactoe.X
	if control == ControlTag+oFirstSuffix || board.Count(tictactoe.O) > board.Count(tictactoe.X) {
		first = tictactoe.O
	}

	session, err := tictactoe.ResumeSession(board, tictactoe.WithFirst(first))
	if err != nil {
		return nil, fmt.Errorf("failed to resume session: %w", err)
	}

	return session, nil
}

// IsControl reports whether a tapped tag requests a new game.
func IsControl(tag string) bool {
	return tag == ControlTag || tag == ControlTag+oFirstSuffix
}
