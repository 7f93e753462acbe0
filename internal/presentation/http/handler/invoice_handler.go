package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	paymentService *service.PaymentService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, paymentService *service.PaymentService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		paymentService: paymentService,
	}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		CustomerID: optionalUUIDQuery(c, "customer_id"),
		StartDate:  optionalDateQuery(c, "start_date"),
		EndDate:    optionalDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if raw := c.Query("payment_status"); raw != "" {
		status := enum.PaymentStatus(raw)
		params.PaymentStatus = &status
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles creating an invoice directly, without an upstream document
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID      uuid.UUID               `json:"customer_id" binding:"required"`
		InvoiceDate     time.Time               `json:"invoice_date" binding:"required"`
		DueDate         *time.Time              `json:"due_date"`
		ShippingCharges *decimal.Decimal        `json:"shipping_charges"`
		DiscountAmount  *decimal.Decimal        `json:"discount_amount"`
		Notes           *string                 `json:"notes"`
		Items           []service.LineItemInput `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		CustomerID:      req.CustomerID,
		InvoiceDate:     req.InvoiceDate,
		DueDate:         req.DueDate,
		ShippingCharges: decimalOrZero(req.ShippingCharges),
		DiscountAmount:  decimalOrZero(req.DiscountAmount),
		Notes:           req.Notes,
		Items:           req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Update handles updating a draft invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		InvoiceDate     *time.Time              `json:"invoice_date"`
		DueDate         *time.Time              `json:"due_date"`
		ShippingCharges *decimal.Decimal        `json:"shipping_charges"`
		DiscountAmount  *decimal.Decimal        `json:"discount_amount"`
		Notes           *string                 `json:"notes"`
		Items           []service.LineItemInput `json:"items" binding:"omitempty,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), &service.UpdateInvoiceInput{
		ID:              id,
		InvoiceDate:     req.InvoiceDate,
		DueDate:         req.DueDate,
		ShippingCharges: req.ShippingCharges,
		DiscountAmount:  req.DiscountAmount,
		Notes:           req.Notes,
		Items:           req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// RecordPayment records a customer payment against the invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req service.RecordPaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	payment, err := h.paymentService.RecordForInvoice(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}
