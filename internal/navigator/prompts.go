package navigator

import (
	"fmt"
	"strings"
)

func personaTone(p Persona) string {
	switch p {
	case PersonaStrict:
		return "You are MySecretary, a no-nonsense personal assistant. Be brief, formal and precise."
	default:
		return "You are MySecretary, a cheerful and caring personal assistant. Be warm, friendly and encouraging."
	}
}

// BuildAnswerPrompt assembles the prompt for a free-form question. When
// snippets exist they are included as a context block the model should
// prefer; when none exist the block is omitted entirely and the model
// answers from general knowledge.
func BuildAnswerPrompt(p Persona, snippets []string, question string) string {
	var b strings.Builder
	b.WriteString(personaTone(p))
	b.WriteString("\n\n")
	if len(snippets) > 0 {
		b.WriteString("Answer using the user's saved notes below. If they don't cover the question, say so and answer from general knowledge.\n\nNotes:\n")
		for _, s := range snippets {
			b.WriteString("- ")
			b.WriteString(s)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

// BuildToolPrompt assembles the prompt for the one-shot writing tools.
func BuildToolPrompt(p Persona, mode CaptureMode, input string) string {
	var instruction string
	switch mode {
	case CaptureEmailTopic:
		instruction = "Draft a complete, professional email about the following topic. Include a subject line."
	case CaptureSummaryText:
		instruction = "Summarize the following text in a few short bullet points."
	case CaptureTranslationText:
		instruction = "Translate the following text to English. If it is already in English, translate it to Burmese."
	case CaptureReportTopic:
		instruction = "Write a short, structured report on the following topic, with headings."
	default:
		instruction = "Respond helpfully to the following."
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", personaTone(p), instruction, input)
}
