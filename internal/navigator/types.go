package navigator

// Section identifies a top-level menu context. A session is always in
// exactly one section.
type Section int

const (
	SectionMain Section = iota
	SectionBrain
	SectionAIAssistant
	SectionSchedule
	SectionUtilities
	SectionSettings
)

var sectionNames = map[Section]string{
	SectionMain:        "main",
	SectionBrain:       "brain",
	SectionAIAssistant: "ai_assistant",
	SectionSchedule:    "schedule",
	SectionUtilities:   "utilities",
	SectionSettings:    "settings",
}

func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	_, ok := sectionNames[s]
	return ok
}

// parentOf maps every section to where a back navigation lands.
// Main is its own parent, so going back from Main is a no-op.
var parentOf = map[Section]Section{
	SectionMain:        SectionMain,
	SectionBrain:       SectionMain,
	SectionAIAssistant: SectionMain,
	SectionSchedule:    SectionMain,
	SectionUtilities:   SectionMain,
	SectionSettings:    SectionUtilities,
}

// CaptureMode names what free-text input a session is currently awaiting.
// CaptureNone means the next message is a menu click or free-form chat.
type CaptureMode int

const (
	CaptureNone CaptureMode = iota
	CaptureLinkURL
	CaptureReminderText
	CaptureTaskIndex
	CaptureDeleteSource
	CaptureWeatherCity
	CaptureMarketRate
	CaptureEmailTopic
	CaptureSummaryText
	CaptureTranslationText
	CaptureReportTopic
)

var captureNames = map[CaptureMode]string{
	CaptureNone:            "none",
	CaptureLinkURL:         "link_url",
	CaptureReminderText:    "reminder_text",
	CaptureTaskIndex:       "task_index",
	CaptureDeleteSource:    "delete_source",
	CaptureWeatherCity:     "weather_city",
	CaptureMarketRate:      "market_rate",
	CaptureEmailTopic:      "email_topic",
	CaptureSummaryText:     "summary_text",
	CaptureTranslationText: "translation_text",
	CaptureReportTopic:     "report_topic",
}

func (m CaptureMode) String() string {
	if name, ok := captureNames[m]; ok {
		return name
	}
	return "unknown"
}

// Registered reports whether m is a known capture mode (including CaptureNone).
func (m CaptureMode) Registered() bool {
	_, ok := captureNames[m]
	return ok
}

// Persona selects the tone of generated replies.
type Persona int

const (
	PersonaCute Persona = iota
	PersonaStrict
)

func (p Persona) String() string {
	if p == PersonaStrict {
		return "strict"
	}
	return "cute"
}

// Reply is a single outgoing message.
type Reply struct {
	Text string

	// Menu, when non-nil, asks the transport to render the keyboard of
	// that section alongside the text.
	Menu *Section

	// TaskChoices, when positive, asks the transport to offer quick-pick
	// buttons for task numbers 1..TaskChoices.
	TaskChoices int
}

// Effect is the outcome of handling one incoming event: the messages to
// send back, in order. Session mutations have already been applied.
type Effect struct {
	Replies []Reply
}

func textReply(text string) Effect {
	return Effect{Replies: []Reply{{Text: text}}}
}

func menuReply(text string, s Section) Effect {
	return Effect{Replies: []Reply{{Text: text, Menu: &s}}}
}
