package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"secretary/internal/navigator"
)

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	// Answer the callback query to remove loading state
	callback := tgbotapi.NewCallback(query.ID, "")
	if b.api != nil {
		b.api.Request(callback)
	}

	if query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	ctx := context.Background()

	sess := b.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	// Handle callback based on prefix
	data := query.Data
	var effect navigator.Effect
	switch {
	case strings.HasPrefix(data, "menu:"):
		effect = b.nav.HandleButton(ctx, sess, strings.TrimPrefix(data, "menu:"))
	case strings.HasPrefix(data, "task:"):
		// Task picks reuse the text path; the payload is the number the
		// user would have typed.
		effect = b.nav.HandleText(ctx, sess, strings.TrimPrefix(data, "task:"))
	default:
		b.logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	b.deliver(chatID, effect)
}
