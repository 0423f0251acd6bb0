package delivery

import (
	"errors"
	"log"
	"net/http"
	"time"

	"callsync-backend/internal/appointment/domain"
	"callsync-backend/internal/appointment/dto"
	"callsync-backend/internal/appointment/repository"
	"callsync-backend/internal/appointment/usecase"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler handles the appointment API consumed by the
// dashboard front end
type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
	}
}

// slot timestamps arrive either as local wall-clock ("2006-01-02T15:04:05")
// or with an explicit offset; both are accepted, the zone is dropped
var slotLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseSlot(s string) (*time.Time, bool) {
	for _, layout := range slotLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// Upsert handles POST /api/appointments
// Creates or updates the record matching its identity key; 201 on
// create, 200 on update.
func (h *AppointmentHandler) Upsert(c *gin.Context) {
	var req dto.UpsertAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := &domain.Appointment{
		CallID:             req.CallID,
		TenantID:           req.TenantID,
		PhoneNumber:        req.PhoneNumber,
		TranscriptSummary:  req.TranscriptSummary,
		AppointmentDetails: req.AppointmentDetails,
		CallType:           domain.CallType(req.CallType),
		CallCategory:       domain.CallCategory(req.CallCategory),
		AppointmentStatus:  domain.Status(req.AppointmentStatus),
	}

	if req.CallTime != "" {
		t, ok := parseSlot(req.CallTime)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callTime"})
			return
		}
		record.CallTime = *t
	}

	if req.LisaExtractedDateTime != nil && *req.LisaExtractedDateTime != "" {
		slot, ok := parseSlot(*req.LisaExtractedDateTime)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lisaExtractedDateTime"})
			return
		}
		record.LisaExtractedDateTime = slot
	}

	existedBefore, err := h.appointmentUsecase.Exists(c.Request.Context(), record.PhoneNumber, record.LisaExtractedDateTime, record.CallID)
	if err != nil {
		log.Printf("[AppointmentHandler] exists probe failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	saved, err := h.appointmentUsecase.Upsert(c.Request.Context(), record)
	if err != nil {
		log.Printf("[AppointmentHandler] upsert failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusCreated
	message := "Appointment record created successfully"
	if existedBefore {
		status = http.StatusOK
		message = "Appointment record updated successfully"
	}
	c.JSON(status, gin.H{"message": message, "appointment": saved})
}

// Exists handles GET /api/appointments/exists
// Probes by (phone_number, lisaExtractedDateTime) when a slot is given,
// by call_id otherwise.
func (h *AppointmentHandler) Exists(c *gin.Context) {
	phone := c.Query("phone_number")
	callID := c.Query("call_id")

	var slot *time.Time
	if raw := c.Query("lisaExtractedDateTime"); raw != "" {
		parsed, ok := parseSlot(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lisaExtractedDateTime"})
			return
		}
		slot = parsed
	}

	if slot == nil && callID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "call_id or phone_number+lisaExtractedDateTime required"})
		return
	}

	exists, err := h.appointmentUsecase.Exists(c.Request.Context(), phone, slot, callID)
	if err != nil {
		log.Printf("[AppointmentHandler] exists probe failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// UpdateStatus handles PUT /api/appointments/status/:id
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.appointmentUsecase.UpdateStatus(c.Request.Context(), c.Param("id"), req.AppointmentStatus, req.CalendarEventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": updated})
}

// List handles GET /api/appointments?tenant_id=&category=
func (h *AppointmentHandler) List(c *gin.Context) {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant_id required"})
		return
	}

	records, err := h.appointmentUsecase.ListByTenant(c.Request.Context(), tenantID, c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": records})
}

// Metrics handles GET /api/appointments/metrics
func (h *AppointmentHandler) Metrics(c *gin.Context) {
	m, err := h.appointmentUsecase.Metrics(c.Request.Context())
	if err != nil {
		log.Printf("[AppointmentHandler] metrics failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load metrics"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteAll handles DELETE /api/appointments (dev-only bulk wipe)
func (h *AppointmentHandler) DeleteAll(c *gin.Context) {
	if err := h.appointmentUsecase.DeleteAll(c.Request.Context()); err != nil {
		log.Printf("[AppointmentHandler] delete all failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All appointments deleted successfully"})
}
