package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// SalesOrderHandler handles sales order HTTP requests
type SalesOrderHandler struct {
	orderService      *service.SalesOrderService
	conversionService *service.ConversionService
}

// NewSalesOrderHandler creates a new sales order handler
func NewSalesOrderHandler(orderService *service.SalesOrderService, conversionService *service.ConversionService) *SalesOrderHandler {
	return &SalesOrderHandler{
		orderService:      orderService,
		conversionService: conversionService,
	}
}

// List handles listing sales orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	params := &repository.SalesOrderFilterParams{
		Pagination:        paginationFromQuery(c),
		Search:            c.Query("search"),
		Status:            c.Query("status"),
		FulfillmentStatus: c.Query("fulfillment_status"),
		CustomerID:        optionalUUIDQuery(c, "customer_id"),
		StartDate:         optionalDateQuery(c, "start_date"),
		EndDate:           optionalDateQuery(c, "end_date"),
		SortBy:            c.Query("sort_by"),
		SortOrder:         c.Query("sort_order"),
	}

	result, err := h.orderService.ListSalesOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales orders retrieved successfully", result)
}

// Get handles retrieving a single sales order
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	order, err := h.orderService.GetSalesOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order retrieved successfully", order)
}

// Create handles creating a sales order directly, without an estimate
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID      uuid.UUID               `json:"customer_id" binding:"required"`
		OrderDate       time.Time               `json:"order_date" binding:"required"`
		ExpectedDate    *time.Time              `json:"expected_date"`
		ShippingCharges *decimal.Decimal        `json:"shipping_charges"`
		DiscountAmount  *decimal.Decimal        `json:"discount_amount"`
		Notes           *string                 `json:"notes"`
		Items           []service.LineItemInput `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	order, err := h.orderService.CreateSalesOrder(c.Request.Context(), &service.CreateSalesOrderInput{
		CustomerID:      req.CustomerID,
		OrderDate:       req.OrderDate,
		ExpectedDate:    req.ExpectedDate,
		ShippingCharges: decimalOrZero(req.ShippingCharges),
		DiscountAmount:  decimalOrZero(req.DiscountAmount),
		Notes:           req.Notes,
		Items:           req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sales order created successfully", order)
}

// Update handles updating a draft sales order
func (h *SalesOrderHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	var req struct {
		OrderDate       *time.Time              `json:"order_date"`
		ExpectedDate    *time.Time              `json:"expected_date"`
		ShippingCharges *decimal.Decimal        `json:"shipping_charges"`
		DiscountAmount  *decimal.Decimal        `json:"discount_amount"`
		Notes           *string                 `json:"notes"`
		Items           []service.LineItemInput `json:"items" binding:"omitempty,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	order, err := h.orderService.UpdateSalesOrder(c.Request.Context(), &service.UpdateSalesOrderInput{
		ID:              id,
		OrderDate:       req.OrderDate,
		ExpectedDate:    req.ExpectedDate,
		ShippingCharges: req.ShippingCharges,
		DiscountAmount:  req.DiscountAmount,
		Notes:           req.Notes,
		Items:           req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order updated successfully", order)
}

// Delete handles deleting a sales order
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	if err := h.orderService.DeleteSalesOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order deleted successfully", nil)
}

// CreateDeliveryNote records a full or partial shipment against the order
func (h *SalesOrderHandler) CreateDeliveryNote(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	var req service.CreateDeliveryNoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	note, err := h.conversionService.CreateDeliveryNote(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Delivery note created successfully", note)
}

// CreateInvoice invoices the full ordered quantities of the sales order
func (h *SalesOrderHandler) CreateInvoice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sales order ID")
		return
	}

	invoice, err := h.conversionService.InvoiceSalesOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}
