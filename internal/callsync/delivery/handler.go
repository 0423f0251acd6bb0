package delivery

import (
	"context"
	"log"
	"net/http"
	"strconv"

	callsyncdomain "callsync-backend/internal/callsync/domain"
	"callsync-backend/internal/callsync/usecase"

	"github.com/gin-gonic/gin"
)

// CallLister proxies read access to the calling platform
type CallLister interface {
	ListCalls(ctx context.Context, tenantID string, limit int) ([]callsyncdomain.Call, error)
}

// SyncHandler exposes the sync pipeline over HTTP: a manual pass
// trigger and a raw call proxy for the dashboard
type SyncHandler struct {
	orchestrator *usecase.SyncOrchestrator
	calls        CallLister
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(orchestrator *usecase.SyncOrchestrator, calls CallLister) *SyncHandler {
	return &SyncHandler{
		orchestrator: orchestrator,
		calls:        calls,
	}
}

// RunNow handles POST /api/sync/run
// Kicks off one orchestrator pass out of schedule. The pass runs in the
// background; overlapping with a scheduled pass is safe.
func (h *SyncHandler) RunNow(c *gin.Context) {
	go func() {
		if err := h.orchestrator.RunOnce(context.Background()); err != nil {
			log.Printf("[SyncHandler] manual sync pass failed: %v", err)
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"message": "sync pass started"})
}

// ProxyCalls handles GET /api/synthflow/calls?model_id=&limit=
// Raw read-through to the calling platform for the dashboard.
func (h *SyncHandler) ProxyCalls(c *gin.Context) {
	tenantID := c.Query("model_id")
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model_id required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	calls, err := h.calls.ListCalls(c.Request.Context(), tenantID, limit)
	if err != nil {
		log.Printf("[SyncHandler] synthflow proxy error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "calling platform unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"calls": calls})
}
