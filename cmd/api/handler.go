package api

import (
	appointmentUsecase "callsync-backend/internal/appointment/usecase"
	callsyncDelivery "callsync-backend/internal/callsync/delivery"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	engine *gin.Engine
}

// NewHandler builds the gin engine with all routes registered
func NewHandler(appointmentUc appointmentUsecase.AppointmentUsecase, syncHandler *callsyncDelivery.SyncHandler) *Handler {
	engine := gin.Default()
	SetupRoutes(engine, appointmentUc, syncHandler)
	return &Handler{engine: engine}
}

// Start runs the HTTP server on addr
func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}
