package extract

import (
	"testing"
	"time"

	"callsync-backend/internal/appointment/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CanonicalSentence(t *testing.T) {
	r := Parse("Appointment scheduled on 2025-04-21 at 14:00.")

	require.NotNil(t, r.DateTime)
	assert.Equal(t, time.Date(2025, 4, 21, 14, 0, 0, 0, time.Local), *r.DateTime)
	assert.Equal(t, domain.CallTypeAppointment, r.CallType)
	assert.False(t, r.SchedulePrefixOnly)
}

func TestParse_NegativeSentence(t *testing.T) {
	r := Parse(NegativeSentence)

	assert.Nil(t, r.DateTime)
	assert.Equal(t, domain.CallTypeNonAppointment, r.CallType)
	assert.False(t, r.SchedulePrefixOnly)
}

func TestParse_Table(t *testing.T) {
	local := func(y int, mo time.Month, d, h, mi, s int) *time.Time {
		t := time.Date(y, mo, d, h, mi, s, 0, time.Local)
		return &t
	}

	tests := []struct {
		name     string
		sentence string
		want     *time.Time
	}{
		{"pm marker adds twelve", "Appointment scheduled on 2025-04-22 at 3:00 PM.", local(2025, 4, 22, 15, 0, 0)},
		{"noon stays twelve", "Appointment scheduled on 2025-04-22 at 12:30 PM.", local(2025, 4, 22, 12, 30, 0)},
		{"midnight becomes zero", "Appointment scheduled on 2025-04-22 at 12:15 AM.", local(2025, 4, 22, 0, 15, 0)},
		{"lowercase meridiem", "Appointment scheduled on 2025-04-22 at 9:45 pm.", local(2025, 4, 22, 21, 45, 0)},
		{"seconds accepted", "Appointment scheduled on 2025-04-22 at 15:00:30.", local(2025, 4, 22, 15, 0, 30)},
		{"slot anywhere in sentence", "Sure, 2025-07-01, we will see you at 08:05 then.", local(2025, 7, 1, 8, 5, 0)},
		{"impossible date", "Appointment scheduled on 2025-02-30 at 10:00.", nil},
		{"impossible hour", "Appointment scheduled on 2025-02-10 at 25:00.", nil},
		{"no date token", "Appointment scheduled on Tuesday at 10:00.", nil},
		{"no time token", "Appointment scheduled on 2025-04-22.", nil},
		{"free text", "The caller asked about opening hours.", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.sentence)
			if tt.want == nil {
				assert.Nil(t, r.DateTime)
				assert.Equal(t, domain.CallTypeNonAppointment, r.CallType)
				return
			}
			require.NotNil(t, r.DateTime)
			assert.Equal(t, *tt.want, *r.DateTime)
			assert.Equal(t, domain.CallTypeAppointment, r.CallType)
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	s := "Appointment scheduled on 2025-04-21 at 14:00."
	first := Parse(s)
	second := Parse(s)
	require.NotNil(t, first.DateTime)
	require.NotNil(t, second.DateTime)
	assert.Equal(t, *first.DateTime, *second.DateTime)
}

func TestParse_SchedulePrefixWithoutSlot(t *testing.T) {
	r := Parse("Appointment scheduled on next Tuesday afternoon.")

	assert.Nil(t, r.DateTime)
	assert.Equal(t, domain.CallTypeNonAppointment, r.CallType)
	assert.True(t, r.SchedulePrefixOnly)

	// Case-insensitive prefix detection
	r = Parse("APPOINTMENT SCHEDULED ON some unclear day.")
	assert.True(t, r.SchedulePrefixOnly)
}

func TestExtractionPrompt_GroundedOnCallDate(t *testing.T) {
	callDate := time.Date(2025, 4, 20, 11, 30, 0, 0, time.Local)
	p := ExtractionPrompt("caller wants next Tuesday at 3pm", callDate, true)

	assert.Contains(t, p, "Call date: 2025-04-20")
	assert.Contains(t, p, "next occurrence of that weekday")
	assert.Contains(t, p, PositiveSentenceFormat)
	assert.Contains(t, p, NegativeSentence)

	bare := ExtractionPrompt("summary", callDate, false)
	assert.NotContains(t, bare, "weekday")
}
