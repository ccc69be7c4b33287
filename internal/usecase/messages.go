package usecase

import "fmt"

const (
	MsgYourTurn  = "your turn"
	MsgYouWon    = "you won!"
	MsgIWon      = "i won!"
	MsgDraw      = "draw"
	MsgWrongTurn = "wrong turn, try again"

	MsgNewGame = "Let's play! Your turn"
	MsgHelp    = `/new - to start new Tic Tac Toe Game
/start - to start bot
/help - to get help with commands`
)

func startMessage(userName string) string {
	return fmt.Sprintf("Hello %s, this is Tic Tac Toe Game Bot\n\n%s", userName, MsgHelp)
}

func unknownMessage(text string) string {
	return fmt.Sprintf("misunderstood: %s\n\n/help - for help", text)
}
