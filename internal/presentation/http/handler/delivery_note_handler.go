package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
)

// DeliveryNoteHandler handles delivery note HTTP requests. Notes are
// created through the sales order conversion endpoint, never directly.
type DeliveryNoteHandler struct {
	noteService       *service.DeliveryNoteService
	conversionService *service.ConversionService
}

// NewDeliveryNoteHandler creates a new delivery note handler
func NewDeliveryNoteHandler(noteService *service.DeliveryNoteService, conversionService *service.ConversionService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{
		noteService:       noteService,
		conversionService: conversionService,
	}
}

// List handles listing delivery notes
func (h *DeliveryNoteHandler) List(c *gin.Context) {
	params := &repository.DeliveryNoteFilterParams{
		Pagination:   paginationFromQuery(c),
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		CustomerID:   optionalUUIDQuery(c, "customer_id"),
		SalesOrderID: optionalUUIDQuery(c, "sales_order_id"),
		StartDate:    optionalDateQuery(c, "start_date"),
		EndDate:      optionalDateQuery(c, "end_date"),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}

	result, err := h.noteService.ListDeliveryNotes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Delivery notes retrieved successfully", result)
}

// Get handles retrieving a single delivery note
func (h *DeliveryNoteHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid delivery note ID")
		return
	}

	note, err := h.noteService.GetDeliveryNote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery note retrieved successfully", note)
}

// Update handles updating a draft delivery note's shipping details
func (h *DeliveryNoteHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid delivery note ID")
		return
	}

	var req struct {
		CarrierID    *uuid.UUID `json:"carrier_id"`
		TrackingNo   *string    `json:"tracking_no"`
		DeliveryDate *time.Time `json:"delivery_date"`
		Notes        *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	note, err := h.noteService.UpdateDeliveryNote(c.Request.Context(), &service.UpdateDeliveryNoteInput{
		ID:           id,
		CarrierID:    req.CarrierID,
		TrackingNo:   req.TrackingNo,
		DeliveryDate: req.DeliveryDate,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery note updated successfully", note)
}

// Delete handles deleting a delivery note
func (h *DeliveryNoteHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid delivery note ID")
		return
	}

	if err := h.noteService.DeleteDeliveryNote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery note deleted successfully", nil)
}

// CreateInvoice invoices the shipped quantities of the delivery note
func (h *DeliveryNoteHandler) CreateInvoice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid delivery note ID")
		return
	}

	invoice, err := h.conversionService.InvoiceDeliveryNote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}
