// Package navigator owns per-chat conversational state and decides what
// each incoming message means: a menu transition, the completion of a
// pending input capture, or free-form chat. It never touches Telegram
// types; the transport renders its Effects.
package navigator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	msgUseMenu        = "I didn't catch that. Please use the menu buttons below. 🙂"
	msgBackendFailure = "Something went wrong on my side. Let's start over from the main menu."
	msgEmptyInput     = "Please send me some text."
)

// Config carries the external services the navigator calls once it has
// classified an input.
type Config struct {
	Chat      ChatService
	Retrieval RetrievalService
	Ingestion IngestionService
	Weather   WeatherService
	Rates     RateService
	Logger    *zap.Logger

	// TopK is how many snippets to retrieve for free-form questions.
	TopK int
	// Timeout bounds every external service call.
	Timeout time.Duration
}

// Navigator classifies incoming events against session state and the
// static menu tables, mutates the session, and returns the replies to
// send. It is safe for concurrent use across sessions; callers must hold
// the session's lock for the duration of a call.
type Navigator struct {
	chat      ChatService
	retrieval RetrievalService
	ingestion IngestionService
	weather   WeatherService
	rates     RateService
	logger    *zap.Logger
	topK      int
	timeout   time.Duration
}

func New(cfg Config) *Navigator {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Navigator{
		chat:      cfg.Chat,
		retrieval: cfg.Retrieval,
		ingestion: cfg.Ingestion,
		weather:   cfg.Weather,
		rates:     cfg.Rates,
		logger:    cfg.Logger,
		topK:      cfg.TopK,
		timeout:   cfg.Timeout,
	}
}

// HandleText processes one incoming text message. Evaluation order is
// fixed: back tokens, then an active capture, then a menu match, then
// the AI-assistant free-chat fallback, then a generic nudge. First match
// wins.
func (n *Navigator) HandleText(ctx context.Context, sess *Session, text string) Effect {
	text = strings.TrimSpace(text)

	if isBackToken(text) {
		return n.goBack(sess)
	}
	if sess.Capture != CaptureNone {
		return n.completeCapture(ctx, sess, text)
	}
	if entry, ok := findEntry(sess.Section, text); ok {
		return n.execute(ctx, sess, entry)
	}
	if sess.Section == SectionAIAssistant {
		return n.answer(ctx, sess, text)
	}
	return textReply(msgUseMenu)
}

// HandleButton processes a menu button press by logical entry id. A
// button press supersedes any pending capture, the same way a command
// interrupts a conversation.
func (n *Navigator) HandleButton(ctx context.Context, sess *Session, entryID string) Effect {
	entry, ok := findEntryByID(entryID)
	if !ok {
		n.logger.Warn("unknown menu button",
			zap.String("entry_id", entryID),
			zap.Int64("chat_id", sess.ChatID),
		)
		return textReply(msgUseMenu)
	}
	sess.Capture = CaptureNone
	return n.execute(ctx, sess, entry)
}

func (n *Navigator) goBack(sess *Session) Effect {
	sess.Capture = CaptureNone
	sess.Section = parentOf[sess.Section]
	return menuReply(MenuFor(sess.Section).Title, sess.Section)
}

func (n *Navigator) execute(ctx context.Context, sess *Session, entry Entry) Effect {
	switch entry.Kind {
	case ActionBack:
		return n.goBack(sess)

	case ActionNavigate:
		sess.Section = entry.Target
		return menuReply(MenuFor(entry.Target).Title, entry.Target)

	case ActionCapture:
		if entry.Mode == CaptureTaskIndex {
			return n.startTaskCompletion(sess)
		}
		sess.Capture = entry.Mode
		return textReply(entry.Prompt)

	case ActionTool:
		return n.runTool(sess, entry.Tool)
	}
	return textReply(msgUseMenu)
}

// startTaskCompletion enters the task-index capture, or refuses when the
// list is empty so the user is never trapped awaiting an impossible
// answer.
func (n *Navigator) startTaskCompletion(sess *Session) Effect {
	if len(sess.Tasks) == 0 {
		return textReply("Nothing on your list yet. Add a reminder first!")
	}
	sess.Capture = CaptureTaskIndex
	var b strings.Builder
	b.WriteString("Which task is done? Send its number:\n\n")
	for i, t := range sess.Tasks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return Effect{Replies: []Reply{{
		Text:        strings.TrimRight(b.String(), "\n"),
		TaskChoices: len(sess.Tasks),
	}}}
}

func (n *Navigator) runTool(sess *Session, tool Tool) Effect {
	switch tool {
	case ToolListTasks:
		if len(sess.Tasks) == 0 {
			return textReply("Nothing on your list yet. Add a reminder first!")
		}
		var b strings.Builder
		b.WriteString("📋 Your tasks:\n\n")
		for i, t := range sess.Tasks {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t)
		}
		return textReply(strings.TrimRight(b.String(), "\n"))

	case ToolShowRate:
		return textReply(fmt.Sprintf("💱 Current market rate: %d.", n.rates.Current()))

	case ToolPersonaCute:
		sess.Persona = PersonaCute
		return textReply("Yay! I'll keep things warm and friendly. 🐣")

	case ToolPersonaStrict:
		sess.Persona = PersonaStrict
		return textReply("Understood. Replies will be brief and formal.")
	}
	return textReply(msgUseMenu)
}

// answer handles free-form questions in the AI-assistant section:
// retrieve relevant snippets, then generate with them as context. An
// empty retrieval result is not an error; the model answers from general
// knowledge.
func (n *Navigator) answer(ctx context.Context, sess *Session, question string) Effect {
	cctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	snippets, err := n.retrieval.Search(cctx, question, n.topK)
	if err != nil {
		return n.fail(sess, "knowledge search", err)
	}

	prompt := BuildAnswerPrompt(sess.Persona, snippets, question)
	text, err := n.chat.Generate(cctx, prompt)
	if err != nil {
		return n.fail(sess, "chat completion", err)
	}
	return textReply(text)
}

// fail is the single recovery point for backend errors: log with enough
// context to reproduce, reset the session so the conversation can never
// get stuck in a capture that will not complete, and apologize once.
// Raw error text is never shown to the user.
func (n *Navigator) fail(sess *Session, op string, err error) Effect {
	n.logger.Error("backend call failed",
		zap.String("operation", op),
		zap.Int64("chat_id", sess.ChatID),
		zap.Stringer("capture_mode", sess.Capture),
		zap.Stringer("section", sess.Section),
		zap.Error(err),
	)
	sess.Capture = CaptureNone
	sess.Section = SectionMain
	return menuReply(msgBackendFailure, SectionMain)
}
