package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
)

// StatusHandler handles document status transitions and audit history.
// Each document resource mounts the same handlers with its own type.
type StatusHandler struct {
	statusService *service.StatusService
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// Transition returns a handler that moves a document of the given type to
// a new status
func (h *StatusHandler) Transition(docType enum.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			response.BadRequest(c, "Invalid document ID")
			return
		}

		var req struct {
			ToStatus        string  `json:"to_status" binding:"required"`
			Reason          *string `json:"reason"`
			DeductInventory bool    `json:"deduct_inventory"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request payload")
			return
		}

		doc, err := h.statusService.Transition(c.Request.Context(), &service.TransitionInput{
			DocumentType:    docType,
			DocumentID:      id,
			ToStatus:        req.ToStatus,
			Reason:          req.Reason,
			DeductInventory: req.DeductInventory,
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Status updated successfully", doc)
	}
}

// History returns a handler that lists a document's status change history
func (h *StatusHandler) History(docType enum.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			response.BadRequest(c, "Invalid document ID")
			return
		}

		history, err := h.statusService.History(c.Request.Context(), docType, id)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Status history retrieved successfully", history)
	}
}

// AllowedTargets returns a handler that lists the statuses a document can
// move to from its current state
func (h *StatusHandler) AllowedTargets(docType enum.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			response.BadRequest(c, "Invalid document ID")
			return
		}

		targets, err := h.statusService.AllowedTargets(c.Request.Context(), docType, id)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Allowed transitions retrieved successfully", gin.H{
			"allowed": targets,
		})
	}
}
