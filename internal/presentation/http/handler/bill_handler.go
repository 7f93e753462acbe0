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

// BillHandler handles vendor bill HTTP requests
type BillHandler struct {
	billService    *service.BillService
	paymentService *service.PaymentService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, paymentService *service.PaymentService) *BillHandler {
	return &BillHandler{
		billService:    billService,
		paymentService: paymentService,
	}
}

// List handles listing bills
func (h *BillHandler) List(c *gin.Context) {
	params := &repository.BillFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		VendorID:   optionalUUIDQuery(c, "vendor_id"),
		StartDate:  optionalDateQuery(c, "start_date"),
		EndDate:    optionalDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if raw := c.Query("payment_status"); raw != "" {
		status := enum.PaymentStatus(raw)
		params.PaymentStatus = &status
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles retrieving a single bill
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Create handles creating a bill
func (h *BillHandler) Create(c *gin.Context) {
	var req struct {
		VendorID        uuid.UUID               `json:"vendor_id" binding:"required"`
		VendorBillNo    *string                 `json:"vendor_bill_no"`
		BillDate        time.Time               `json:"bill_date" binding:"required"`
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

	bill, err := h.billService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		VendorID:        req.VendorID,
		VendorBillNo:    req.VendorBillNo,
		BillDate:        req.BillDate,
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

	response.Created(c, "Bill created successfully", bill)
}

// Update handles updating a draft bill
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req struct {
		VendorBillNo    *string                 `json:"vendor_bill_no"`
		BillDate        *time.Time              `json:"bill_date"`
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

	bill, err := h.billService.UpdateBill(c.Request.Context(), &service.UpdateBillInput{
		ID:              id,
		VendorBillNo:    req.VendorBillNo,
		BillDate:        req.BillDate,
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

	response.OK(c, "Bill updated successfully", bill)
}

// Delete handles deleting a bill
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill deleted successfully", nil)
}

// RecordPayment records a vendor payment against the bill
func (h *BillHandler) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req service.RecordPaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	payment, err := h.paymentService.RecordForBill(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}
