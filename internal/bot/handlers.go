package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage",
				zap.Any("panic", r),
				zap.Int64("chat_id", message.Chat.ID),
			)
			msg := tgbotapi.NewMessage(message.Chat.ID, "An error occurred while processing your request. Please try again.")
			b.sendMessage(msg)
		}
	}()

	chatID := message.Chat.ID
	ctx := context.Background()

	// One session per chat; holding its lock keeps messages from the
	// same chat processed in order.
	sess := b.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	if message.Document != nil {
		b.handleDocument(ctx, message)
		return
	}

	// Handle commands
	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(sess, message)
		case "help":
			b.handleHelp(message)
		default:
			msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /start to open the main menu.")
			b.sendMessage(msg)
		}
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		msg := tgbotapi.NewMessage(chatID, "Please send me some text.")
		b.sendMessage(msg)
		return
	}

	b.sendTyping(chatID)
	effect := b.nav.HandleText(ctx, sess, text)
	b.deliver(chatID, effect)
}
