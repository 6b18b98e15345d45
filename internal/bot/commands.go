package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"secretary/internal/navigator"
)

// handleStart resets the chat's session and shows the main menu.
func (b *Bot) handleStart(sess *navigator.Session, message *tgbotapi.Message) {
	sess.Section = navigator.SectionMain
	sess.Capture = navigator.CaptureNone

	text := `Hi! I'm your secretary. 🤗

🧠 Second Brain - save links and documents, ask about them later
🤖 AI Assistant - questions, emails, summaries, translations, reports
📅 Schedule - reminders and tasks
🧰 Utilities - weather, exchange rate, settings

Pick a section from the menu below, or just send me a document to remember.`

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = menuKeyboard(navigator.SectionMain)
	b.sendMessage(msg)
}

// handleHelp shows a short usage summary without touching session state.
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	text := `Use the menu buttons to move around. "Back" or "Main Menu" always takes you up one level.

In the AI Assistant section you can type any question and I'll answer using your saved knowledge.

Send me a PDF, text or markdown file at any time and I'll add it to your second brain.`

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}
