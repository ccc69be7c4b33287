package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rocketscienceinc/tictactoe-bot/internal/codec"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
)

// toUpdate maps a Telegram update onto a game update. Updates that carry
// neither a message nor a callback query are skipped.
func toUpdate(update tgbotapi.Update) (usecase.Update, bool) {
	switch {
	case update.Message != nil:
		return fromMessage(update.UpdateID, update.Message), true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return fromCallback(update.UpdateID, update.CallbackQuery), true
	default:
		return usecase.Update{}, false
	}
}

func fromMessage(id int, msg *tgbotapi.Message) usecase.Update {
	result := usecase.Update{
		ID:   id,
		Kind: usecase.UpdateUnrecognized,
		Text: msg.Text,
	}

	if msg.Chat != nil {
		result.ChatID = msg.Chat.ID
	}

	if msg.From != nil {
		result.UserName = msg.From.FirstName
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			result.Kind = usecase.UpdateStart
		case "help":
			result.Kind = usecase.UpdateHelp
		case "new":
			result.Kind = usecase.UpdateNewGame
		}
	}

	return result
}

func fromCallback(id int, query *tgbotapi.CallbackQuery) usecase.Update {
	result := usecase.Update{
		ID:   id,
		Kind: usecase.UpdateUnrecognized,
		Text: query.Data,
	}

	if query.Message.Chat != nil {
		result.ChatID = query.Message.Chat.ID
	}

	if query.From != nil {
		result.UserName = query.From.FirstName
	}

	if codec.IsControl(query.Data) {
		result.Kind = usecase.UpdateNewGame
		return result
	}

	cell, err := strconv.Atoi(query.Data)
	if err != nil {
		return result
	}

	result.Kind = usecase.UpdateMove
	result.Cell = cell
	result.Keyboard = fromMarkup(query.Message.ReplyMarkup)

	return result
}

func fromMarkup(markup *tgbotapi.InlineKeyboardMarkup) codec.Keyboard {
	if markup == nil {
		return nil
	}

	keyboard := make(codec.Keyboard, 0, len(markup.InlineKeyboard))
	for _, row := range markup.InlineKeyboard {
		buttons := make([]codec.Button, 0, len(row))
		for _, button := range row {
			tag := ""
			if button.CallbackData != nil {
				tag = *button.CallbackData
			}
			buttons = append(buttons, codec.Button{Label: button.Text, Tag: tag})
		}
		keyboard = append(keyboard, buttons)
	}

	return keyboard
}

func toMarkup(keyboard codec.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Tag))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
