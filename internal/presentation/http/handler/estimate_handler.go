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

// EstimateHandler handles estimate HTTP requests
type EstimateHandler struct {
	estimateService   *service.EstimateService
	conversionService *service.ConversionService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimateService *service.EstimateService, conversionService *service.ConversionService) *EstimateHandler {
	return &EstimateHandler{
		estimateService:   estimateService,
		conversionService: conversionService,
	}
}

// List handles listing estimates
func (h *EstimateHandler) List(c *gin.Context) {
	params := &repository.EstimateFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		CustomerID: optionalUUIDQuery(c, "customer_id"),
		StartDate:  optionalDateQuery(c, "start_date"),
		EndDate:    optionalDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	result, err := h.estimateService.ListEstimates(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Estimates retrieved successfully", result)
}

// Get handles retrieving a single estimate
func (h *EstimateHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	estimate, err := h.estimateService.GetEstimate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate retrieved successfully", estimate)
}

// Create handles creating an estimate
func (h *EstimateHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID      uuid.UUID               `json:"customer_id" binding:"required"`
		EstimateDate    time.Time               `json:"estimate_date" binding:"required"`
		ExpiryDate      *time.Time              `json:"expiry_date"`
		ShippingCharges *decimal.Decimal        `json:"shipping_charges"`
		DiscountAmount  *decimal.Decimal        `json:"discount_amount"`
		Notes           *string                 `json:"notes"`
		Items           []service.LineItemInput `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	estimate, err := h.estimateService.CreateEstimate(c.Request.Context(), &service.CreateEstimateInput{
		CustomerID:      req.CustomerID,
		EstimateDate:    req.EstimateDate,
		ExpiryDate:      req.ExpiryDate,
		ShippingCharges: decimalOrZero(req.ShippingCharges),
		DiscountAmount:  decimalOrZero(req.DiscountAmount),
		Notes:           req.Notes,
		Items:           req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Estimate created successfully", estimate)
}

// Update handles updating a draft estimate
func (h *EstimateHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	var req struct {
		EstimateDate    *time.Time              `json:"estimate_date"`
		ExpiryDate      *time.Time              `json:"expiry_date"`
		ShippingCharges *decimal.Decimal        `json:"shipping_charges"`
		DiscountAmount  *decimal.Decimal        `json:"discount_amount"`
		Notes           *string                 `json:"notes"`
		Items           []service.LineItemInput `json:"items" binding:"omitempty,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	estimate, err := h.estimateService.UpdateEstimate(c.Request.Context(), &service.UpdateEstimateInput{
		ID:              id,
		EstimateDate:    req.EstimateDate,
		ExpiryDate:      req.ExpiryDate,
		ShippingCharges: req.ShippingCharges,
		DiscountAmount:  req.DiscountAmount,
		Notes:           req.Notes,
		Items:           req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate updated successfully", estimate)
}

// Delete handles deleting an estimate
func (h *EstimateHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	if err := h.estimateService.DeleteEstimate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate deleted successfully", nil)
}

// ConvertToSalesOrder converts an estimate into a draft sales order
func (h *EstimateHandler) ConvertToSalesOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid estimate ID")
		return
	}

	order, err := h.conversionService.ConvertEstimate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Estimate converted to sales order successfully", order)
}
