package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/orderhub/backend/internal/application/importer"
)

// ImportHandler accepts catalog feed uploads and serves task polling
type ImportHandler struct {
	BaseHandler
	scheduler *importer.Scheduler
}

func NewImportHandler(scheduler *importer.Scheduler) *ImportHandler {
	return &ImportHandler{scheduler: scheduler}
}

// Upload starts a background import of the raw JSON feed in the request
// body and returns the task id to poll
func (h *ImportHandler) Upload(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Failed to read feed body")
		return
	}
	if len(raw) == 0 {
		h.BadRequest(c, "Empty feed")
		return
	}

	taskID, err := h.scheduler.Enqueue(c.Request.Context(), getUserID(c), getUserEmail(c), raw)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, gin.H{"task_id": taskID})
}

// Status returns a snapshot of one import task
func (h *ImportHandler) Status(c *gin.Context) {
	state, err := h.scheduler.Status(c.Param("task_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}
