package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"secretary/internal/knowledge"
	"secretary/internal/knowledge/stubs"
	"secretary/internal/navigator"
	"secretary/internal/tools"
)

// Note: We can't easily mock tgbotapi.BotAPI, so tests focus on internal
// logic without actually sending messages to Telegram

type staticChat struct{ reply string }

func (c staticChat) Generate(ctx context.Context, prompt string) (string, error) {
	return c.reply, nil
}

type staticWeather struct{}

func (staticWeather) Current(ctx context.Context, city string) (string, error) {
	return city + ": 30°C, wind 5 km/h", nil
}

func newTestBot(allowed map[int64]bool) *Bot {
	kb := knowledge.NewService(stubs.NewMockStore(), &stubs.HashEmbedder{}, zap.NewNop())
	nav := navigator.New(navigator.Config{
		Chat:      staticChat{reply: "ok"},
		Retrieval: kb,
		Ingestion: kb,
		Weather:   staticWeather{},
		Rates:     tools.NewMarketRates(4500),
	})
	return &Bot{
		api:          nil, // Not needed for internal logic tests
		nav:          nav,
		sessions:     navigator.NewStore(),
		knowledge:    kb,
		allowedUsers: allowed,
		logger:       zap.NewNop(), // Use nop logger for tests
	}
}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func TestBot_MenuNavigationByLabel(t *testing.T) {
	bot := newTestBot(map[int64]bool{123: true})

	bot.handleMessage(textMessage(123, 456, "🤖 AI Assistant"))

	sess := bot.sessions.Get(456)
	if sess.Section != navigator.SectionAIAssistant {
		t.Errorf("Expected section %v, got %v", navigator.SectionAIAssistant, sess.Section)
	}
}

func TestBot_StartResetsSession(t *testing.T) {
	bot := newTestBot(map[int64]bool{123: true})

	sess := bot.sessions.Get(456)
	sess.Section = navigator.SectionSettings
	sess.Capture = navigator.CaptureMarketRate

	message := textMessage(123, 456, "/start")
	message.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: 6},
	}

	bot.handleMessage(message)

	if sess.Section != navigator.SectionMain {
		t.Errorf("Expected section %v after /start, got %v", navigator.SectionMain, sess.Section)
	}
	if sess.Capture != navigator.CaptureNone {
		t.Errorf("Expected capture to be cleared after /start, got %v", sess.Capture)
	}
}

func TestBot_UnauthorizedUserIsIgnored(t *testing.T) {
	bot := newTestBot(map[int64]bool{123: true})

	update := tgbotapi.Update{Message: textMessage(999, 456, "🤖 AI Assistant")}
	bot.HandleWebhookUpdate(update)

	if bot.sessions.Len() != 0 {
		t.Error("Expected no session to be created for unauthorized user")
	}
}

func TestBot_EmptyWhitelistLeavesBotOpen(t *testing.T) {
	bot := newTestBot(map[int64]bool{})

	update := tgbotapi.Update{Message: textMessage(999, 456, "📅 Schedule")}
	bot.HandleWebhookUpdate(update)

	sess := bot.sessions.Get(456)
	if sess.Section != navigator.SectionSchedule {
		t.Errorf("Expected open bot to handle the message, section is %v", sess.Section)
	}
}

func TestBot_PanicRecovery(t *testing.T) {
	bot := newTestBot(map[int64]bool{123: true})
	bot.nav = nil // Force a nil dereference inside handling
	bot.sessions.Get(456).Section = navigator.SectionAIAssistant

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("handleMessage panicked: %v", r)
		}
	}()

	bot.handleMessage(textMessage(123, 456, "hello"))

	// If we reach here, panic was recovered
	t.Log("Panic was successfully recovered")
}

func TestBot_CallbackNavigatesByEntryID(t *testing.T) {
	bot := newTestBot(map[int64]bool{123: true})

	query := &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &tgbotapi.User{ID: 123},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 456}},
		Data:    "menu:assistant",
	}

	bot.handleCallbackQuery(query)

	sess := bot.sessions.Get(456)
	if sess.Section != navigator.SectionAIAssistant {
		t.Errorf("Expected section %v, got %v", navigator.SectionAIAssistant, sess.Section)
	}
}

func TestBot_CallbackCompletesTask(t *testing.T) {
	bot := newTestBot(map[int64]bool{123: true})

	sess := bot.sessions.Get(456)
	sess.Section = navigator.SectionSchedule
	sess.Capture = navigator.CaptureTaskIndex
	sess.Tasks = []string{"buy milk", "call mom"}

	query := &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &tgbotapi.User{ID: 123},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 456}},
		Data:    "task:1",
	}

	bot.handleCallbackQuery(query)

	if len(sess.Tasks) != 1 || sess.Tasks[0] != "call mom" {
		t.Errorf("Expected first task to be completed, tasks: %v", sess.Tasks)
	}
	if sess.Capture != navigator.CaptureNone {
		t.Errorf("Expected capture to be cleared, got %v", sess.Capture)
	}
}

func TestBot_UnknownCallbackDataIsIgnored(t *testing.T) {
	bot := newTestBot(map[int64]bool{123: true})

	query := &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &tgbotapi.User{ID: 123},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 456}},
		Data:    "bogus:payload",
	}

	bot.handleCallbackQuery(query)

	sess := bot.sessions.Get(456)
	if sess.Section != navigator.SectionMain {
		t.Errorf("Expected session to stay on main, got %v", sess.Section)
	}
}

func TestMenuKeyboard_Layout(t *testing.T) {
	keyboard := menuKeyboard(navigator.SectionMain)

	// Four navigation entries, two per row, no back button on main.
	if len(keyboard.Keyboard) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(keyboard.Keyboard))
	}
	for i, row := range keyboard.Keyboard {
		if len(row) != 2 {
			t.Errorf("Row %d: expected 2 buttons, got %d", i, len(row))
		}
	}
}

func TestMenuKeyboard_BackButtonOnLastRow(t *testing.T) {
	keyboard := menuKeyboard(navigator.SectionBrain)

	last := keyboard.Keyboard[len(keyboard.Keyboard)-1]
	if len(last) != 1 || last[0].Text != "🏠 Main Menu" {
		t.Errorf("Expected last row to be the back button, got %v", last)
	}
}

func TestTaskKeyboard_WrapsRows(t *testing.T) {
	keyboard := taskKeyboard(5)

	if len(keyboard.InlineKeyboard) != 2 {
		t.Fatalf("Expected 2 rows for 5 tasks, got %d", len(keyboard.InlineKeyboard))
	}
	if len(keyboard.InlineKeyboard[0]) != 4 || len(keyboard.InlineKeyboard[1]) != 1 {
		t.Error("Expected rows of 4 and 1 buttons")
	}
	if data := keyboard.InlineKeyboard[0][2].CallbackData; data == nil || *data != "task:3" {
		t.Errorf("Expected callback data task:3, got %v", data)
	}
}
