package usecase

import (
	"context"
	"log"
	"strings"

	appointmentdomain "callsync-backend/internal/appointment/domain"
	"callsync-backend/internal/callsync/extract"
	"callsync-backend/pkg/lisa"
)

// Classifier assigns one of the fixed call categories to a summary
type Classifier struct {
	chat lisa.ChatClient
}

// NewClassifier creates a new Classifier
func NewClassifier(chat lisa.ChatClient) *Classifier {
	return &Classifier{chat: chat}
}

// Classify returns exactly one label from the closed category set.
// The model answers free text, so the response is normalized and
// validated; anything unrecognized, and any chat error, falls back to
// non-appointment so an unclassifiable call never blocks the pipeline.
func (c *Classifier) Classify(ctx context.Context, summary string) appointmentdomain.CallCategory {
	answer, err := c.chat.Chat(ctx, extract.ClassifyPrompt(summary))
	if err != nil {
		log.Printf("[Classifier] chat error, defaulting to non-appointment: %v", err)
		return appointmentdomain.CategoryNonAppointment
	}

	label := appointmentdomain.CallCategory(normalizeLabel(answer))
	if !appointmentdomain.ValidCategory(label) {
		log.Printf("[Classifier] unrecognized label %q, defaulting to non-appointment", answer)
		return appointmentdomain.CategoryNonAppointment
	}
	return label
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, `."'`)
	return s
}
