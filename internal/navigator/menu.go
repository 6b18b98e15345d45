package navigator

import "strings"

// ActionKind says what selecting a menu entry does.
type ActionKind int

const (
	ActionNavigate ActionKind = iota
	ActionCapture
	ActionTool
	ActionBack
)

// Tool identifies an action executed immediately on selection, without
// awaiting further input.
type Tool int

const (
	ToolListTasks Tool = iota
	ToolShowRate
	ToolPersonaCute
	ToolPersonaStrict
)

// Entry is one selectable menu item. ID is the stable logical key used
// for button callbacks; Label is presentation only and may change
// without affecting dispatch.
type Entry struct {
	ID     string
	Label  string
	Kind   ActionKind
	Target Section     // ActionNavigate
	Mode   CaptureMode // ActionCapture
	Prompt string      // ActionCapture
	Tool   Tool        // ActionTool
}

// Menu is the static definition of one section's keyboard.
type Menu struct {
	Section Section
	Title   string
	Entries []Entry
}

var menus = map[Section]Menu{
	SectionMain: {
		Section: SectionMain,
		Title:   "What can I do for you?",
		Entries: []Entry{
			{ID: "brain", Label: "🧠 Second Brain", Kind: ActionNavigate, Target: SectionBrain},
			{ID: "assistant", Label: "🤖 AI Assistant", Kind: ActionNavigate, Target: SectionAIAssistant},
			{ID: "schedule", Label: "📅 Schedule", Kind: ActionNavigate, Target: SectionSchedule},
			{ID: "utilities", Label: "🧰 Utilities", Kind: ActionNavigate, Target: SectionUtilities},
		},
	},
	SectionBrain: {
		Section: SectionBrain,
		Title:   "Your second brain. Send me documents any time, or pick an option.",
		Entries: []Entry{
			{ID: "save_link", Label: "🔗 Save a Link", Kind: ActionCapture, Mode: CaptureLinkURL,
				Prompt: "Send me the link you want me to remember (must start with http:// or https://)."},
			{ID: "forget_source", Label: "🗑 Forget a Source", Kind: ActionCapture, Mode: CaptureDeleteSource,
				Prompt: "Which source should I forget? Send its name or link."},
			{ID: "brain_back", Label: "🏠 Main Menu", Kind: ActionBack},
		},
	},
	SectionAIAssistant: {
		Section: SectionAIAssistant,
		Title:   "Ask me anything about your saved knowledge, or pick a writing tool.",
		Entries: []Entry{
			{ID: "email_draft", Label: "✉️ Draft an Email", Kind: ActionCapture, Mode: CaptureEmailTopic,
				Prompt: "What should the email be about?"},
			{ID: "summarize", Label: "📝 Summarize", Kind: ActionCapture, Mode: CaptureSummaryText,
				Prompt: "Paste the text you want summarized."},
			{ID: "translate", Label: "🌐 Translate", Kind: ActionCapture, Mode: CaptureTranslationText,
				Prompt: "Send the text you want translated."},
			{ID: "report", Label: "📊 Write a Report", Kind: ActionCapture, Mode: CaptureReportTopic,
				Prompt: "What topic should the report cover?"},
			{ID: "assistant_back", Label: "🏠 Main Menu", Kind: ActionBack},
		},
	},
	SectionSchedule: {
		Section: SectionSchedule,
		Title:   "Your schedule. What's next?",
		Entries: []Entry{
			{ID: "add_task", Label: "➕ Add Reminder", Kind: ActionCapture, Mode: CaptureReminderText,
				Prompt: "What should I remind you about?"},
			{ID: "complete_task", Label: "✅ Complete a Task", Kind: ActionCapture, Mode: CaptureTaskIndex,
				Prompt: ""}, // prompt is built from the live task list
			{ID: "list_tasks", Label: "📋 My Tasks", Kind: ActionTool, Tool: ToolListTasks},
			{ID: "schedule_back", Label: "🏠 Main Menu", Kind: ActionBack},
		},
	},
	SectionUtilities: {
		Section: SectionUtilities,
		Title:   "Handy tools.",
		Entries: []Entry{
			{ID: "weather", Label: "⛅ Weather", Kind: ActionCapture, Mode: CaptureWeatherCity,
				Prompt: "Which city's weather do you want?"},
			{ID: "show_rate", Label: "💱 Exchange Rate", Kind: ActionTool, Tool: ToolShowRate},
			{ID: "settings", Label: "⚙️ Settings", Kind: ActionNavigate, Target: SectionSettings},
			{ID: "utilities_back", Label: "🏠 Main Menu", Kind: ActionBack},
		},
	},
	SectionSettings: {
		Section: SectionSettings,
		Title:   "Settings.",
		Entries: []Entry{
			{ID: "set_rate", Label: "💹 Set Market Rate", Kind: ActionCapture, Mode: CaptureMarketRate,
				Prompt: "Send the new market rate as a whole number, e.g. 4500."},
			{ID: "persona_cute", Label: "🐣 Cute Persona", Kind: ActionTool, Tool: ToolPersonaCute},
			{ID: "persona_strict", Label: "🧑‍💼 Strict Persona", Kind: ActionTool, Tool: ToolPersonaStrict},
			{ID: "settings_back", Label: "⬅️ Back", Kind: ActionBack},
		},
	},
}

// MenuFor returns the static menu definition for a section.
func MenuFor(s Section) Menu {
	return menus[s]
}

// backTokens are recognized in any section, in any capture state.
var backTokens = map[string]struct{}{
	"back":         {},
	"⬅️ back":      {},
	"main menu":    {},
	"🏠 main menu": {},
}

func isBackToken(text string) bool {
	_, ok := backTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// findEntry matches text against the current section's entries, by
// logical id first, then by display label.
func findEntry(s Section, text string) (Entry, bool) {
	for _, e := range menus[s].Entries {
		if e.ID == text || e.Label == text {
			return e, true
		}
	}
	return Entry{}, false
}

// findEntryByID looks an entry up across all menus. Used for button
// callbacks, which may arrive from a keyboard rendered for a section the
// session has since left.
func findEntryByID(id string) (Entry, bool) {
	for _, m := range menus {
		for _, e := range m.Entries {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Entry{}, false
}
