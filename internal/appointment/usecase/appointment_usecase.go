package usecase

import (
	"context"
	"fmt"
	"time"

	"callsync-backend/internal/appointment/domain"
	"callsync-backend/internal/appointment/repository"
)

// AppointmentUsecase defines the interface for appointment use cases
type AppointmentUsecase interface {
	Upsert(ctx context.Context, record *domain.Appointment) (*domain.Appointment, error)
	Exists(ctx context.Context, phoneNumber string, slot *time.Time, callID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status string, calendarEventID *string) (*domain.Appointment, error)
	ListByTenant(ctx context.Context, tenantID string, category string) ([]domain.Appointment, error)
	Metrics(ctx context.Context) (*domain.Metrics, error)
	DeleteAll(ctx context.Context) error
}

type appointmentUsecase struct {
	repo repository.AppointmentRepository
}

// NewAppointmentUsecase creates a new AppointmentUsecase
func NewAppointmentUsecase(repo repository.AppointmentRepository) AppointmentUsecase {
	return &appointmentUsecase{
		repo: repo,
	}
}

// Upsert validates the record's enums and hands it to the store
func (u *appointmentUsecase) Upsert(ctx context.Context, record *domain.Appointment) (*domain.Appointment, error) {
	if record.CallType == "" {
		record.CallType = domain.CallTypeNonAppointment
	}
	if record.CallCategory == "" {
		record.CallCategory = domain.CategoryNonAppointment
	}
	if !domain.ValidCategory(record.CallCategory) {
		return nil, fmt.Errorf("invalid call category %q", record.CallCategory)
	}
	if record.AppointmentStatus != "" && !domain.ValidStatus(record.AppointmentStatus) {
		return nil, fmt.Errorf("invalid appointment status %q", record.AppointmentStatus)
	}
	if record.CallTime.IsZero() {
		record.CallTime = time.Now()
	}
	return u.repo.Upsert(ctx, record)
}

// Exists mirrors the identity resolution rule: probe by caller+slot
// when a slot is given, by call_id otherwise
func (u *appointmentUsecase) Exists(ctx context.Context, phoneNumber string, slot *time.Time, callID string) (bool, error) {
	if slot != nil {
		return u.repo.ExistsBySlot(ctx, phoneNumber, *slot)
	}
	return u.repo.ExistsByCallID(ctx, callID)
}

// UpdateStatus applies an operator's accept/reject decision
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id string, status string, calendarEventID *string) (*domain.Appointment, error) {
	s := domain.Status(status)
	if !domain.ValidStatus(s) {
		return nil, fmt.Errorf("invalid appointment status %q", status)
	}
	return u.repo.UpdateStatus(ctx, id, s, calendarEventID)
}

// ListByTenant returns a tenant's records, optionally filtered by category
func (u *appointmentUsecase) ListByTenant(ctx context.Context, tenantID string, category string) ([]domain.Appointment, error) {
	c := domain.CallCategory(category)
	if category != "" && !domain.ValidCategory(c) {
		return nil, fmt.Errorf("invalid call category %q", category)
	}
	return u.repo.ListByTenant(ctx, tenantID, c)
}

// Metrics returns per-category and per-status counts
func (u *appointmentUsecase) Metrics(ctx context.Context) (*domain.Metrics, error) {
	return u.repo.Metrics(ctx)
}

// DeleteAll wipes every record (dev tooling only)
func (u *appointmentUsecase) DeleteAll(ctx context.Context) error {
	return u.repo.DeleteAll(ctx)
}
