package bot

import (
	"go.uber.org/zap"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"secretary/internal/knowledge"
	"secretary/internal/navigator"
)

// Bot wires Telegram updates to the navigator and renders its effects
// back as messages and keyboards.
type Bot struct {
	api       *tgbotapi.BotAPI
	nav       *navigator.Navigator
	sessions  *navigator.Store
	knowledge *knowledge.Service

	// allowedUsers is the whitelist; empty means the bot is open to
	// everyone.
	allowedUsers map[int64]bool

	logger *zap.Logger
}
