package domain

import "time"

// Call is a phone-call record as returned by the calling platform.
// Read-only to this service; appointments are derived from it.
type Call struct {
	CallID          string `json:"call_id"`
	TenantID        string `json:"model_id"`
	PhoneNumberFrom string `json:"phone_number_from"`
	// Epoch timestamp. The platform mixes seconds and milliseconds;
	// see StartedAt.
	StartTime    int64  `json:"start_time"`
	Transcript   string `json:"transcript"`
	RecordingURL string `json:"recording_url"`
}

// StartedAt converts the raw epoch value to a time. Values with 10
// decimal digits are seconds, everything else is milliseconds.
func (c Call) StartedAt() time.Time {
	if c.StartTime >= 1_000_000_000 && c.StartTime < 10_000_000_000 {
		return time.Unix(c.StartTime, 0)
	}
	return time.UnixMilli(c.StartTime)
}

// HasTranscript reports whether the call carries a usable transcript.
// Calls without one are skipped by the sync pipeline entirely.
func (c Call) HasTranscript() bool {
	return c.Transcript != ""
}
