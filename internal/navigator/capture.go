package navigator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// completeCapture treats the incoming text as the answer to the active
// capture mode's prompt. Validation failures keep the mode active and
// re-prompt, so one typo never silently drops the user's intent; backend
// failures go through the navigator-level reset.
func (n *Navigator) completeCapture(ctx context.Context, sess *Session, text string) Effect {
	cctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	switch sess.Capture {
	case CaptureLinkURL:
		if !strings.HasPrefix(text, "http://") && !strings.HasPrefix(text, "https://") {
			return textReply("That doesn't look like a link. Send me a URL starting with http:// or https://.")
		}
		if err := n.ingestion.Ingest(cctx, text, text); err != nil {
			return n.fail(sess, "link ingestion", err)
		}
		sess.Capture = CaptureNone
		return textReply("✅ Saved! I'll remember what that page says.")

	case CaptureReminderText:
		if text == "" {
			return textReply(msgEmptyInput)
		}
		sess.Tasks = append(sess.Tasks, text)
		sess.Capture = CaptureNone
		sess.Section = SectionSchedule
		return menuReply(fmt.Sprintf("✅ Added %q to your list.", text), SectionSchedule)

	case CaptureTaskIndex:
		i, err := strconv.Atoi(text)
		if err != nil || i < 1 || i > len(sess.Tasks) {
			return textReply(fmt.Sprintf("Please send a number between 1 and %d.", len(sess.Tasks)))
		}
		done := sess.Tasks[i-1]
		sess.Tasks = append(sess.Tasks[:i-1], sess.Tasks[i:]...)
		sess.Capture = CaptureNone
		sess.Section = SectionSchedule
		return menuReply(fmt.Sprintf("🎉 Done: %s", done), SectionSchedule)

	case CaptureDeleteSource:
		if text == "" {
			return textReply(msgEmptyInput)
		}
		if err := n.ingestion.DeleteBySource(cctx, text); err != nil {
			return n.fail(sess, "source deletion", err)
		}
		sess.Capture = CaptureNone
		sess.Section = SectionMain
		return menuReply(fmt.Sprintf("🗑 Forgot everything from %q.", text), SectionMain)

	case CaptureWeatherCity:
		if text == "" {
			return textReply(msgEmptyInput)
		}
		report, err := n.weather.Current(cctx, text)
		if err != nil {
			return n.fail(sess, "weather lookup", err)
		}
		sess.Capture = CaptureNone
		sess.Section = SectionUtilities
		return menuReply(report, SectionUtilities)

	case CaptureMarketRate:
		rate, err := strconv.Atoi(text)
		if err != nil || rate <= 0 {
			return textReply("Please send the rate as a positive whole number, e.g. 4500.")
		}
		n.rates.Set(rate)
		sess.Capture = CaptureNone
		sess.Section = SectionSettings
		return menuReply(fmt.Sprintf("💹 Market rate updated to %d.", rate), SectionSettings)

	case CaptureEmailTopic, CaptureSummaryText, CaptureTranslationText, CaptureReportTopic:
		if text == "" {
			return textReply(msgEmptyInput)
		}
		mode := sess.Capture
		out, err := n.chat.Generate(cctx, BuildToolPrompt(sess.Persona, mode, text))
		if err != nil {
			return n.fail(sess, "chat completion", err)
		}
		sess.Capture = CaptureNone
		return textReply(out)
	}

	// A mode with no handler should be impossible; drop it rather than
	// trap the user in it.
	n.logger.Warn("unregistered capture mode",
		zap.Int64("chat_id", sess.ChatID),
		zap.Stringer("capture_mode", sess.Capture),
	)
	sess.Capture = CaptureNone
	return textReply(msgUseMenu)
}
