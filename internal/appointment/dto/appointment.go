package dto

// UpsertAppointmentRequest mirrors the wire contract consumed by the
// dashboard front end; field names are frozen by that contract.
type UpsertAppointmentRequest struct {
	CallID                string  `json:"call_id" binding:"required"`
	TenantID              string  `json:"model_id" binding:"required"`
	PhoneNumber           string  `json:"phone_number" binding:"required"`
	TranscriptSummary     string  `json:"transcriptSummary"`
	AppointmentDetails    string  `json:"appointmentDetails"`
	CallTime              string  `json:"callTime"`              // RFC 3339; empty means "now"
	LisaExtractedDateTime *string `json:"lisaExtractedDateTime"` // "2006-01-02T15:04:05" local, or RFC 3339
	CallType              string  `json:"callType"`
	CallCategory          string  `json:"callCategory"`
	AppointmentStatus     string  `json:"appointmentStatus"`
}

// UpdateStatusRequest updates an appointment's lifecycle status
type UpdateStatusRequest struct {
	AppointmentStatus string  `json:"appointmentStatus" binding:"required"`
	CalendarEventID   *string `json:"calendarEventId"`
}
