// Package extract parses the canonical scheduling sentence the Lisa
// model is prompted to emit into a structured appointment slot. It is
// pure: no I/O, same sentence always yields the same result.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"callsync-backend/internal/appointment/domain"
)

// Result is the structured outcome of parsing one extraction sentence
type Result struct {
	// DateTime is the extracted slot as local wall-clock time, nil
	// when the sentence carries no parsable slot
	DateTime *time.Time

	CallType domain.CallType

	// SchedulePrefixOnly is set when the sentence opens with the
	// canonical "appointment scheduled on" prefix but no slot could be
	// parsed from it, so callers can log the type-vs-slot mismatch
	SchedulePrefixOnly bool
}

// Matches a YYYY-MM-DD date and an H:MM time (optional seconds,
// optional AM/PM marker) anywhere in the sentence.
var slotPattern = regexp.MustCompile(`(?i)(\d{4}-\d{2}-\d{2}).*?(\d{1,2}:\d{2}(?::\d{2})?)(?:\s*(AM|PM))?`)

const schedulePrefix = "appointment scheduled on"

// Parse extracts a local date-time from an extraction sentence.
// Anything that does not carry a valid slot, including the literal
// negative sentence and impossible calendar dates, comes back as
// non-appointment with a nil slot rather than an error.
func Parse(sentence string) Result {
	m := slotPattern.FindStringSubmatch(sentence)
	if m == nil {
		return Result{
			CallType:           domain.CallTypeNonAppointment,
			SchedulePrefixOnly: hasSchedulePrefix(sentence),
		}
	}

	dateStr, timeStr, meridiem := m[1], m[2], m[3]

	year, month, day, ok := splitDate(dateStr)
	if !ok {
		return Result{CallType: domain.CallTypeNonAppointment, SchedulePrefixOnly: hasSchedulePrefix(sentence)}
	}

	hour, min, sec, ok := splitTime(timeStr)
	if !ok {
		return Result{CallType: domain.CallTypeNonAppointment, SchedulePrefixOnly: hasSchedulePrefix(sentence)}
	}
	hour = to24Hour(hour, meridiem)

	if hour > 23 || min > 59 || sec > 59 {
		return Result{CallType: domain.CallTypeNonAppointment, SchedulePrefixOnly: hasSchedulePrefix(sentence)}
	}

	// Local wall-clock time, no timezone attached
	dt := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.Local)

	// time.Date normalizes impossible dates (Feb 30 -> Mar 2); a slot
	// only counts when the components round-trip
	if dt.Year() != year || dt.Month() != time.Month(month) || dt.Day() != day {
		return Result{CallType: domain.CallTypeNonAppointment, SchedulePrefixOnly: hasSchedulePrefix(sentence)}
	}

	return Result{DateTime: &dt, CallType: domain.CallTypeAppointment}
}

func hasSchedulePrefix(sentence string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(sentence)), schedulePrefix)
}

func splitDate(s string) (year, month, day int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	if month < 1 || month > 12 || day < 1 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func splitTime(s string) (hour, min, sec int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false
	}
	hour, err1 := strconv.Atoi(parts[0])
	min, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, 0, false
	}
	if len(parts) == 3 {
		var err3 error
		sec, err3 = strconv.Atoi(parts[2])
		if err3 != nil {
			return 0, 0, 0, false
		}
	}
	return hour, min, sec, true
}

// to24Hour normalizes an hour with an optional AM/PM marker: PM adds 12
// unless the hour is already 12, AM maps 12 to 0.
func to24Hour(hour int, meridiem string) int {
	switch strings.ToUpper(meridiem) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return hour
}
