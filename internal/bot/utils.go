package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"secretary/internal/navigator"
)

// sendMessage sends a prepared message, tolerating a nil API for tests.
func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.Error(err),
		)
	}
}

// sendTyping shows the typing indicator while a slow backend call runs.
func (b *Bot) sendTyping(chatID int64) {
	if b.api == nil {
		return // For testing
	}
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.api.Request(action); err != nil {
		b.logger.Debug("Failed to send typing action", zap.Error(err))
	}
}

// deliver renders a navigator effect as Telegram messages: plain text,
// a section menu keyboard, or inline task-number buttons.
func (b *Bot) deliver(chatID int64, effect navigator.Effect) {
	for _, reply := range effect.Replies {
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		switch {
		case reply.Menu != nil:
			msg.ReplyMarkup = menuKeyboard(*reply.Menu)
		case reply.TaskChoices > 0:
			msg.ReplyMarkup = taskKeyboard(reply.TaskChoices)
		}
		b.sendMessage(msg)
	}
}
