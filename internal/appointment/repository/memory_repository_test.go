package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"callsync-backend/internal/appointment/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotRecord(callID, phone string, slot time.Time) *domain.Appointment {
	return &domain.Appointment{
		CallID:                callID,
		TenantID:              "tenant-1",
		PhoneNumber:           phone,
		TranscriptSummary:     "summary for " + callID,
		AppointmentDetails:    "Appointment scheduled on 2025-04-22 at 15:00.",
		CallTime:              time.Date(2025, 4, 20, 9, 0, 0, 0, time.Local),
		LisaExtractedDateTime: &slot,
		CallType:              domain.CallTypeAppointment,
		CallCategory:          domain.CategoryAppointment,
	}
}

func TestUpsert_InsertsWithPendingStatus(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	slot := time.Date(2025, 4, 22, 15, 0, 0, 0, time.Local)

	saved, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, domain.StatusPending, saved.AppointmentStatus)
	assert.Equal(t, 1, repo.Len())
}

func TestUpsert_IdempotentForSameSlot(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	slot := time.Date(2025, 4, 22, 15, 0, 0, 0, time.Local)

	first, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
	require.NoError(t, err)

	updated := slotRecord("c1", "+15551234567", slot)
	updated.TranscriptSummary = "revised summary"
	second, err := repo.Upsert(context.Background(), updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "revised summary", second.TranscriptSummary)
	assert.Equal(t, 1, repo.Len())
}

func TestUpsert_SameSlotFromLaterCallWins(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	slot := time.Date(2025, 4, 22, 15, 0, 0, 0, time.Local)

	_, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
	require.NoError(t, err)

	later := slotRecord("c2", "+15551234567", slot)
	saved, err := repo.Upsert(context.Background(), later)
	require.NoError(t, err)

	assert.Equal(t, "c2", saved.CallID)
	assert.Equal(t, 1, repo.Len())
}

func TestUpsert_NullSlotKeyedByCallID(t *testing.T) {
	repo := NewMemoryAppointmentRepository()

	rec := &domain.Appointment{
		CallID:       "c1",
		TenantID:     "tenant-1",
		PhoneNumber:  "+15551234567",
		CallType:     domain.CallTypeNonAppointment,
		CallCategory: domain.CategoryQuery,
	}
	_, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)

	again := *rec
	again.TranscriptSummary = "second pass"
	_, err = repo.Upsert(context.Background(), &again)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Len())

	other := *rec
	other.CallID = "c2"
	_, err = repo.Upsert(context.Background(), &other)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Len())
}

func TestUpsert_PreservesOperatorStatus(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	slot := time.Date(2025, 4, 22, 15, 0, 0, 0, time.Local)

	saved, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
	require.NoError(t, err)

	eventID := "gcal-event-42"
	accepted, err := repo.UpdateStatus(context.Background(), saved.ID, domain.StatusAccepted, &eventID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAccepted, accepted.AppointmentStatus)

	// Sync pipeline reprocesses the same call; record must stay accepted
	reprocessed, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, reprocessed.AppointmentStatus)
	require.NotNil(t, reprocessed.CalendarEventID)
	assert.Equal(t, "gcal-event-42", *reprocessed.CalendarEventID)
}

func TestUpsert_ExplicitStatusOverrides(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	slot := time.Date(2025, 4, 22, 15, 0, 0, 0, time.Local)

	saved, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(context.Background(), saved.ID, domain.StatusAccepted, nil)
	require.NoError(t, err)

	rec := slotRecord("c1", "+15551234567", slot)
	rec.AppointmentStatus = domain.StatusRejected
	updated, err := repo.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, updated.AppointmentStatus)
}

func TestUpsert_ConcurrentSameKeyProducesOneRecord(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	slot := time.Date(2025, 4, 22, 15, 0, 0, 0, time.Local)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.Len())
}

func TestExists(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	slot := time.Date(2025, 4, 22, 15, 0, 0, 0, time.Local)

	_, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
	require.NoError(t, err)

	byCall, err := repo.ExistsByCallID(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, byCall)

	bySlot, err := repo.ExistsBySlot(context.Background(), "+15551234567", slot)
	require.NoError(t, err)
	assert.True(t, bySlot)

	missing, err := repo.ExistsBySlot(context.Background(), "+15551234567", slot.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, missing)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	_, err := repo.UpdateStatus(context.Background(), "missing", domain.StatusAccepted, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMetrics(t *testing.T) {
	repo := NewMemoryAppointmentRepository()
	slot := time.Date(2025, 4, 22, 15, 0, 0, 0, time.Local)

	a, err := repo.Upsert(context.Background(), slotRecord("c1", "+15551234567", slot))
	require.NoError(t, err)

	cb := &domain.Appointment{CallID: "c2", TenantID: "tenant-1", PhoneNumber: "+15550000001", CallCategory: domain.CategoryCallback, CallType: domain.CallTypeNonAppointment}
	_, err = repo.Upsert(context.Background(), cb)
	require.NoError(t, err)

	q := &domain.Appointment{CallID: "c3", TenantID: "tenant-1", PhoneNumber: "+15550000002", CallCategory: domain.CategoryQuery, CallType: domain.CallTypeNonAppointment}
	_, err = repo.Upsert(context.Background(), q)
	require.NoError(t, err)

	_, err = repo.UpdateStatus(context.Background(), a.ID, domain.StatusAccepted, nil)
	require.NoError(t, err)

	m, err := repo.Metrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), m.AppointmentCount)
	assert.Equal(t, int64(1), m.CallbackCount)
	assert.Equal(t, int64(1), m.QueryCount)
	assert.Equal(t, int64(2), m.PendingCount)
	assert.Equal(t, int64(1), m.AcceptedCount)
	assert.Equal(t, int64(0), m.RejectedCount)
}
