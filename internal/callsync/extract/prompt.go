package extract

import (
	"fmt"
	"time"
)

// Canonical sentences the extraction prompt instructs the model to
// emit. Parse degrades anything else to non-appointment.
const (
	// PositiveSentenceFormat is the shape of a successful extraction:
	// "Appointment scheduled on YYYY-MM-DD at HH:MM."
	PositiveSentenceFormat = "Appointment scheduled on YYYY-MM-DD at HH:MM."

	// NegativeSentence is emitted (and substituted locally for
	// non-appointment categories) when no slot exists
	NegativeSentence = "This call is not for scheduling an appointment."
)

// SummaryFallback is recorded in place of a summary when the chat
// service fails
const SummaryFallback = "Summary could not be generated."

// PromptVersion identifies the wording of the prompt templates below.
// Bump when the wording changes so stored records can be traced back
// to the prompt that produced them.
const PromptVersion = "v2"

// SummaryPrompt asks for a single-paragraph plain-text summary that
// keeps any appointment-relevant content intact.
func SummaryPrompt(transcript string) string {
	return fmt.Sprintf(`Summarise the call transcript below as plain text in one paragraph.
Keep any mention of dates, times, and the purpose of the call.

Transcript:
%s`, transcript)
}

// ClassifyPrompt asks for exactly one label from the closed category
// set. The caller still validates the answer; the model is free text.
func ClassifyPrompt(summary string) string {
	return fmt.Sprintf(`Classify the call summary as exactly one of: appointment, non-appointment, callback, query.
Answer with the single label only.

Summary:
%s`, summary)
}

// ExtractionPrompt asks the model to resolve the summary into one of
// the two canonical sentences, grounded on the call's own date so
// relative expressions ("next Tuesday") resolve against the day the
// call actually happened. resolveWeekdays controls whether the
// explicit weekday-resolution rules are included; the pipeline always
// passes true, the parameter exists so the wording is a single
// template instead of diverging per call site.
func ExtractionPrompt(summary string, callDate time.Time, resolveWeekdays bool) string {
	base := callDate.Format("2006-01-02")
	rules := ""
	if resolveWeekdays {
		rules = fmt.Sprintf(`Resolve relative dates against the call date: "tomorrow" is the day after %s, weekday names ("next Tuesday") mean the next occurrence of that weekday strictly after %s.
`, base, base)
	}
	return fmt.Sprintf(`Call date: %s
Summary: %s
%sIf an appointment was agreed, output exactly:
Appointment scheduled on YYYY-MM-DD at HH:MM.
(24-hour time, zero-padded, no timezone.)
Otherwise output exactly:
This call is not for scheduling an appointment.`, base, summary, rules)
}
