package api

import (
	"net/http"

	appointmentDelivery "callsync-backend/internal/appointment/delivery"
	appointmentUsecase "callsync-backend/internal/appointment/usecase"
	callsyncDelivery "callsync-backend/internal/callsync/delivery"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the API surface consumed by the dashboard front
// end. Authentication lives in the front-end gateway, not here.
func SetupRoutes(r *gin.Engine, appointmentUc appointmentUsecase.AppointmentUsecase, syncHandler *callsyncDelivery.SyncHandler) {
	appointmentHandler := appointmentDelivery.NewAppointmentHandler(appointmentUc)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentHandler.Upsert)
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/exists", appointmentHandler.Exists)
			appointments.GET("/metrics", appointmentHandler.Metrics)
			appointments.PUT("/status/:id", appointmentHandler.UpdateStatus)
			appointments.DELETE("", appointmentHandler.DeleteAll) // dev-only bulk wipe
		}

		// Sync routes
		sync := api.Group("/sync")
		{
			sync.POST("/run", syncHandler.RunNow)
		}

		// Calling-platform proxy
		synthflow := api.Group("/synthflow")
		{
			synthflow.GET("/calls", syncHandler.ProxyCalls)
		}
	}
}
