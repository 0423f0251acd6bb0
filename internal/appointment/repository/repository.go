package repository

import (
	"context"
	"errors"
	"time"

	"callsync-backend/internal/appointment/domain"
)

// ErrNotFound is returned when a lookup by id matches no record
var ErrNotFound = errors.New("appointment not found")

// AppointmentRepository is the persistence abstraction for appointment
// records. Upsert resolves the identity key itself: the
// (phone_number, slot) pair when a slot was extracted, call_id
// otherwise.
type AppointmentRepository interface {
	// Upsert creates the record or updates the one matching its
	// identity key. It must tolerate losing an insert race: a
	// duplicate-key error falls back to updating the just-inserted
	// record. Operator-set status and calendar event id are preserved
	// unless the incoming record explicitly carries new ones.
	Upsert(ctx context.Context, record *domain.Appointment) (*domain.Appointment, error)

	// ExistsByCallID probes for a record keyed by call_id
	ExistsByCallID(ctx context.Context, callID string) (bool, error)

	// ExistsBySlot probes for a record keyed by caller + extracted slot
	ExistsBySlot(ctx context.Context, phoneNumber string, slot time.Time) (bool, error)

	// GetByID fetches a single record, ErrNotFound if absent
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)

	// UpdateStatus sets the lifecycle status and optionally the
	// calendar event id. ErrNotFound if the id does not exist.
	UpdateStatus(ctx context.Context, id string, status domain.Status, calendarEventID *string) (*domain.Appointment, error)

	// ListByTenant returns a tenant's records, optionally filtered by
	// category (empty category means all)
	ListByTenant(ctx context.Context, tenantID string, category domain.CallCategory) ([]domain.Appointment, error)

	// Metrics returns per-category and per-status counts. Reads are
	// not transactional; counts are informational.
	Metrics(ctx context.Context) (*domain.Metrics, error)

	// DeleteAll wipes every record (dev tooling only)
	DeleteAll(ctx context.Context) error
}
