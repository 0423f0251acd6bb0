package repository

import (
	"context"
	"sync"
	"time"

	"callsync-backend/internal/appointment/domain"

	"github.com/google/uuid"
)

// MemoryAppointmentRepository is an in-memory implementation useful for
// tests and local development. It enforces the same identity-key
// uniqueness as the Postgres schema under a single mutex.
//
// NOTE: not intended for production; the gorm repository is the real
// store.
type MemoryAppointmentRepository struct {
	mu      sync.Mutex
	records map[string]*domain.Appointment // keyed by id
}

// NewMemoryAppointmentRepository creates a new in-memory repository
func NewMemoryAppointmentRepository() *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{
		records: make(map[string]*domain.Appointment),
	}
}

func (r *MemoryAppointmentRepository) findByIdentityLocked(record *domain.Appointment) *domain.Appointment {
	for _, existing := range r.records {
		if record.HasSlot() {
			if existing.HasSlot() &&
				existing.PhoneNumber == record.PhoneNumber &&
				existing.LisaExtractedDateTime.Equal(*record.LisaExtractedDateTime) {
				return existing
			}
			continue
		}
		if existing.CallID == record.CallID {
			return existing
		}
	}
	return nil
}

// Upsert creates or updates the record matching its identity key
func (r *MemoryAppointmentRepository) Upsert(ctx context.Context, record *domain.Appointment) (*domain.Appointment, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findByIdentityLocked(record); existing != nil {
		existing.TenantID = record.TenantID
		existing.TranscriptSummary = record.TranscriptSummary
		existing.AppointmentDetails = record.AppointmentDetails
		existing.CallTime = record.CallTime
		existing.CallType = record.CallType
		existing.CallCategory = record.CallCategory
		if record.HasSlot() {
			existing.CallID = record.CallID
			existing.LisaExtractedDateTime = record.LisaExtractedDateTime
		}
		if record.AppointmentStatus != "" {
			existing.AppointmentStatus = record.AppointmentStatus
		}
		if record.CalendarEventID != nil {
			existing.CalendarEventID = record.CalendarEventID
		}
		out := *existing
		return &out, nil
	}

	fresh := *record
	if fresh.ID == "" {
		fresh.ID = uuid.New().String()
	}
	if fresh.AppointmentStatus == "" {
		fresh.AppointmentStatus = domain.StatusPending
	}
	if fresh.CreatedAt.IsZero() {
		fresh.CreatedAt = time.Now()
	}
	r.records[fresh.ID] = &fresh

	out := fresh
	return &out, nil
}

// ExistsByCallID probes for a record keyed by call_id
func (r *MemoryAppointmentRepository) ExistsByCallID(ctx context.Context, callID string) (bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.CallID == callID {
			return true, nil
		}
	}
	return false, nil
}

// ExistsBySlot probes for a record keyed by caller + extracted slot
func (r *MemoryAppointmentRepository) ExistsBySlot(ctx context.Context, phoneNumber string, slot time.Time) (bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.HasSlot() &&
			existing.PhoneNumber == phoneNumber &&
			existing.LisaExtractedDateTime.Equal(slot) {
			return true, nil
		}
	}
	return false, nil
}

// GetByID fetches a single record
func (r *MemoryAppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *existing
	return &out, nil
}

// UpdateStatus sets status and optionally the calendar event id
func (r *MemoryAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, calendarEventID *string) (*domain.Appointment, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	existing.AppointmentStatus = status
	if calendarEventID != nil {
		existing.CalendarEventID = calendarEventID
	}
	out := *existing
	return &out, nil
}

// ListByTenant returns a tenant's records
func (r *MemoryAppointmentRepository) ListByTenant(ctx context.Context, tenantID string, category domain.CallCategory) ([]domain.Appointment, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Appointment
	for _, existing := range r.records {
		if existing.TenantID != tenantID {
			continue
		}
		if category != "" && existing.CallCategory != category {
			continue
		}
		out = append(out, *existing)
	}
	return out, nil
}

// Metrics returns per-category and per-status counts
func (r *MemoryAppointmentRepository) Metrics(ctx context.Context) (*domain.Metrics, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	m := &domain.Metrics{}
	for _, existing := range r.records {
		switch existing.CallCategory {
		case domain.CategoryAppointment:
			m.AppointmentCount++
		case domain.CategoryCallback:
			m.CallbackCount++
		case domain.CategoryQuery:
			m.QueryCount++
		}
		switch existing.AppointmentStatus {
		case domain.StatusPending:
			m.PendingCount++
		case domain.StatusAccepted:
			m.AcceptedCount++
		case domain.StatusRejected:
			m.RejectedCount++
		}
	}
	return m, nil
}

// DeleteAll wipes every record
func (r *MemoryAppointmentRepository) DeleteAll(ctx context.Context) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[string]*domain.Appointment)
	return nil
}

// Len reports the number of stored records (test helper)
func (r *MemoryAppointmentRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
