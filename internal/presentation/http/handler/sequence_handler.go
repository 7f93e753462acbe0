package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
)

// SequenceHandler handles document numbering HTTP requests
type SequenceHandler struct {
	sequenceService *service.SequenceService
}

// NewSequenceHandler creates a new sequence handler
func NewSequenceHandler(sequenceService *service.SequenceService) *SequenceHandler {
	return &SequenceHandler{sequenceService: sequenceService}
}

// List handles listing the company's sequences
func (h *SequenceHandler) List(c *gin.Context) {
	sequences, err := h.sequenceService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sequences retrieved successfully", sequences)
}

// Peek returns the next number a document type would receive without
// consuming it
func (h *SequenceHandler) Peek(c *gin.Context) {
	docType := enum.DocumentType(c.Param("type"))

	next, err := h.sequenceService.Peek(c.Request.Context(), docType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next document number retrieved successfully", gin.H{
		"document_type": docType,
		"next":          next,
	})
}

// Update changes a sequence's prefix, padding, date setting, or counter
func (h *SequenceHandler) Update(c *gin.Context) {
	docType := enum.DocumentType(c.Param("type"))

	var req struct {
		Prefix      *string `json:"prefix" binding:"omitempty,max=20"`
		Padding     *int    `json:"padding" binding:"omitempty,min=1,max=10"`
		IncludeDate *bool   `json:"include_date"`
		NextNumber  *int64  `json:"next_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	seq, err := h.sequenceService.Update(c.Request.Context(), docType, &service.UpdateSequenceInput{
		Prefix:      req.Prefix,
		Padding:     req.Padding,
		IncludeDate: req.IncludeDate,
		NextNumber:  req.NextNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sequence updated successfully", seq)
}
