package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// TaxHandler handles tax rate HTTP requests
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

type taxRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
	Compound *bool           `json:"compound"`
}

func (r *taxRequest) toInput() *service.TaxInput {
	return &service.TaxInput{
		Name:     r.Name,
		Rate:     r.Rate,
		Compound: r.Compound,
	}
}

// List handles listing tax rates
func (h *TaxHandler) List(c *gin.Context) {
	taxes, err := h.taxService.ListTaxes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rates retrieved successfully", taxes)
}

// Get handles retrieving a single tax rate
func (h *TaxHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.taxService.GetTax(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rate retrieved successfully", tax)
}

// Create handles creating a tax rate
func (h *TaxHandler) Create(c *gin.Context) {
	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	tax, err := h.taxService.CreateTax(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax rate created successfully", tax)
}

// Update handles updating a tax rate
func (h *TaxHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	tax, err := h.taxService.UpdateTax(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rate updated successfully", tax)
}

// Delete handles deleting a tax rate
func (h *TaxHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tax ID")
		return
	}

	if err := h.taxService.DeleteTax(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rate deleted successfully", nil)
}
