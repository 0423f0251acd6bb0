package usecase

import (
	"context"
	"log"

	"callsync-backend/internal/callsync/extract"
	"callsync-backend/pkg/lisa"
)

// Summarizer produces a one-paragraph summary of a call transcript
type Summarizer struct {
	chat lisa.ChatClient
}

// NewSummarizer creates a new Summarizer
func NewSummarizer(chat lisa.ChatClient) *Summarizer {
	return &Summarizer{chat: chat}
}

// Summarize returns a plain-text summary of the transcript. A chat
// failure degrades to the fixed fallback sentence instead of an error:
// the call is still recorded, just without a usable summary. Retry
// policy lives in the orchestrator's schedule, not here.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) string {
	answer, err := s.chat.Chat(ctx, extract.SummaryPrompt(transcript))
	if err != nil {
		log.Printf("[Summarizer] chat error, recording fallback summary: %v", err)
		return extract.SummaryFallback
	}
	if answer == "" {
		return extract.SummaryFallback
	}
	return answer
}
