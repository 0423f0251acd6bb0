package repository

import (
	"context"
	"errors"
	"time"

	"callsync-backend/internal/appointment/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormAppointmentRepository implements AppointmentRepository on Postgres
type gormAppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new instance of gormAppointmentRepository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &gormAppointmentRepository{
		db: db,
	}
}

// findByIdentity resolves the record matching the identity key of the
// incoming record: (phone_number, slot) when a slot exists, call_id
// otherwise.
func (r *gormAppointmentRepository) findByIdentity(ctx context.Context, record *domain.Appointment) (*domain.Appointment, error) {
	var existing domain.Appointment
	q := r.db.WithContext(ctx)
	if record.HasSlot() {
		q = q.Where("phone_number = ? AND lisa_extracted_date_time = ?", record.PhoneNumber, *record.LisaExtractedDateTime)
	} else {
		q = q.Where("call_id = ?", record.CallID)
	}
	err := q.First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &existing, nil
}

// Upsert creates or updates the record matching its identity key.
// The unique indexes on call_id and (phone_number, slot) are the
// serialization point for concurrent writers: an insert that loses the
// race comes back as gorm.ErrDuplicatedKey and falls through to an
// update against the winner's row.
func (r *gormAppointmentRepository) Upsert(ctx context.Context, record *domain.Appointment) (*domain.Appointment, error) {
	existing, err := r.findByIdentity(ctx, record)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return r.applyUpdate(ctx, existing, record)
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

	err = r.db.WithContext(ctx).Create(&fresh).Error
	if err == nil {
		return &fresh, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// Lost the insert race; another writer owns the row now
	existing, err = r.findByIdentity(ctx, record)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// Row vanished between the conflict and the re-read
		return nil, gorm.ErrDuplicatedKey
	}
	return r.applyUpdate(ctx, existing, record)
}

// applyUpdate overwrites the sync-owned fields of an existing record.
// Status and calendar event id belong to the operator and are only
// touched when the incoming record explicitly carries them.
func (r *gormAppointmentRepository) applyUpdate(ctx context.Context, existing, record *domain.Appointment) (*domain.Appointment, error) {
	existing.TenantID = record.TenantID
	existing.TranscriptSummary = record.TranscriptSummary
	existing.AppointmentDetails = record.AppointmentDetails
	existing.CallTime = record.CallTime
	existing.CallType = record.CallType
	existing.CallCategory = record.CallCategory
	if record.HasSlot() {
		// Slot-keyed hit: the latest call for this caller+slot wins
		existing.CallID = record.CallID
		existing.LisaExtractedDateTime = record.LisaExtractedDateTime
	}
	if record.AppointmentStatus != "" {
		existing.AppointmentStatus = record.AppointmentStatus
	}
	if record.CalendarEventID != nil {
		existing.CalendarEventID = record.CalendarEventID
	}

	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// ExistsByCallID probes for a record keyed by call_id
func (r *gormAppointmentRepository) ExistsByCallID(ctx context.Context, callID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Appointment{}).
		Where("call_id = ?", callID).
		Count(&count).Error
	return count > 0, err
}

// ExistsBySlot probes for a record keyed by caller + extracted slot
func (r *gormAppointmentRepository) ExistsBySlot(ctx context.Context, phoneNumber string, slot time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Appointment{}).
		Where("phone_number = ? AND lisa_extracted_date_time = ?", phoneNumber, slot).
		Count(&count).Error
	return count > 0, err
}

// GetByID fetches a single record
func (r *gormAppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var record domain.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateStatus sets status and optionally the calendar event id
func (r *gormAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, calendarEventID *string) (*domain.Appointment, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record.AppointmentStatus = status
	if calendarEventID != nil {
		record.CalendarEventID = calendarEventID
	}

	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// ListByTenant returns a tenant's records, newest call first
func (r *gormAppointmentRepository) ListByTenant(ctx context.Context, tenantID string, category domain.CallCategory) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if category != "" {
		q = q.Where("call_category = ?", category)
	}

	var records []domain.Appointment
	if err := q.Order("call_time DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Metrics returns per-category and per-status counts
func (r *gormAppointmentRepository) Metrics(ctx context.Context) (*domain.Metrics, error) {
	m := &domain.Metrics{}

	counts := []struct {
		column string
		value  string
		dest   *int64
	}{
		{"call_category", string(domain.CategoryAppointment), &m.AppointmentCount},
		{"call_category", string(domain.CategoryCallback), &m.CallbackCount},
		{"call_category", string(domain.CategoryQuery), &m.QueryCount},
		{"appointment_status", string(domain.StatusPending), &m.PendingCount},
		{"appointment_status", string(domain.StatusAccepted), &m.AcceptedCount},
		{"appointment_status", string(domain.StatusRejected), &m.RejectedCount},
	}
	for _, c := range counts {
		err := r.db.WithContext(ctx).Model(&domain.Appointment{}).
			Where(c.column+" = ?", c.value).
			Count(c.dest).Error
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DeleteAll wipes every record (dev tooling only)
func (r *gormAppointmentRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Appointment{}).Error
}
