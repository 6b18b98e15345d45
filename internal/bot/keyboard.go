package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"secretary/internal/navigator"
)

// menuKeyboard renders a section's menu as a persistent reply keyboard,
// two buttons per row with the back button on its own last row. The
// navigator matches pressed buttons by their label text.
func menuKeyboard(section navigator.Section) tgbotapi.ReplyKeyboardMarkup {
	menu := navigator.MenuFor(section)

	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton
	var backRow []tgbotapi.KeyboardButton

	for _, e := range menu.Entries {
		if e.Kind == navigator.ActionBack {
			backRow = append(backRow, tgbotapi.NewKeyboardButton(e.Label))
			continue
		}
		row = append(row, tgbotapi.NewKeyboardButton(e.Label))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if len(backRow) > 0 {
		rows = append(rows, backRow)
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// taskKeyboard renders numbered inline buttons for picking a task,
// four per row.
func taskKeyboard(count int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for i := 1; i <= count; i++ {
		label := fmt.Sprintf("%d", i)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("task:%d", i)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
