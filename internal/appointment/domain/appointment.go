package domain

import "time"

// CallType says whether a concrete appointment slot was extracted
type CallType string

const (
	CallTypeAppointment    CallType = "appointment"
	CallTypeNonAppointment CallType = "non-appointment"
)

// CallCategory is the classifier's label for a call summary
type CallCategory string

const (
	CategoryAppointment    CallCategory = "appointment"
	CategoryNonAppointment CallCategory = "non-appointment"
	CategoryCallback       CallCategory = "callback"
	CategoryQuery          CallCategory = "query"
)

// AllCategories is the closed set the classifier is allowed to return
var AllCategories = []CallCategory{
	CategoryAppointment,
	CategoryNonAppointment,
	CategoryCallback,
	CategoryQuery,
}

// ValidCategory reports whether c is in the closed category set
func ValidCategory(c CallCategory) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the operator-controlled lifecycle state of an appointment.
// The sync pipeline never changes it after creation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ValidStatus reports whether s is a known lifecycle state
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// Appointment is the record produced by the sync pipeline for each
// classified call. Identity is (phone_number, extracted slot) when a
// slot exists, call_id otherwise; both carry unique indexes so
// concurrent writers are serialized by the database rather than a
// local lock. The extracted slot is local wall-clock time with no
// timezone attached, stored as a plain timestamp.
type Appointment struct {
	ID          string `json:"id" gorm:"primaryKey"`
	CallID      string `json:"call_id" gorm:"uniqueIndex:idx_appointments_call_id;not null"`
	TenantID    string `json:"model_id" gorm:"index;not null"`
	PhoneNumber string `json:"phone_number" gorm:"uniqueIndex:idx_appointments_phone_slot;not null"`

	TranscriptSummary  string `json:"transcriptSummary" gorm:"type:text"`
	AppointmentDetails string `json:"appointmentDetails" gorm:"type:text"`

	CallTime              time.Time  `json:"callTime"`
	LisaExtractedDateTime *time.Time `json:"lisaExtractedDateTime" gorm:"uniqueIndex:idx_appointments_phone_slot;type:timestamp"`

	CallType     CallType     `json:"callType" gorm:"default:non-appointment"`
	CallCategory CallCategory `json:"callCategory" gorm:"default:non-appointment"`

	AppointmentStatus Status  `json:"appointmentStatus" gorm:"default:pending"`
	CalendarEventID   *string `json:"calendarEventId"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Appointment) TableName() string {
	return "appointments"
}

// HasSlot reports whether an appointment slot was extracted for this
// record, which decides the identity key used for dedup.
func (a *Appointment) HasSlot() bool {
	return a.LisaExtractedDateTime != nil
}

// Metrics holds per-category and per-status record counts
type Metrics struct {
	AppointmentCount int64 `json:"appointmentCount"`
	CallbackCount    int64 `json:"callbackCount"`
	QueryCount       int64 `json:"queryCount"`

	PendingCount  int64 `json:"pendingCount"`
	AcceptedCount int64 `json:"acceptedCount"`
	RejectedCount int64 `json:"rejectedCount"`
}
