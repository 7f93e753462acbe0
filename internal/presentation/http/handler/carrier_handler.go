package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
)

// CarrierHandler handles shipping carrier HTTP requests
type CarrierHandler struct {
	carrierService *service.CarrierService
}

// NewCarrierHandler creates a new carrier handler
func NewCarrierHandler(carrierService *service.CarrierService) *CarrierHandler {
	return &CarrierHandler{carrierService: carrierService}
}

type carrierRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
	TrackingURL *string `json:"tracking_url"`
}

func (r *carrierRequest) toInput() *service.CarrierInput {
	return &service.CarrierInput{
		Name:        r.Name,
		Phone:       r.Phone,
		Website:     r.Website,
		TrackingURL: r.TrackingURL,
	}
}

// List handles listing carriers
func (h *CarrierHandler) List(c *gin.Context) {
	carriers, err := h.carrierService.ListCarriers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Carriers retrieved successfully", carriers)
}

// Get handles retrieving a single carrier
func (h *CarrierHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid carrier ID")
		return
	}

	carrier, err := h.carrierService.GetCarrier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Carrier retrieved successfully", carrier)
}

// Create handles creating a carrier
func (h *CarrierHandler) Create(c *gin.Context) {
	var req carrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	carrier, err := h.carrierService.CreateCarrier(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Carrier created successfully", carrier)
}

// Update handles updating a carrier
func (h *CarrierHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid carrier ID")
		return
	}

	var req carrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	carrier, err := h.carrierService.UpdateCarrier(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Carrier updated successfully", carrier)
}

// Delete handles deleting a carrier
func (h *CarrierHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid carrier ID")
		return
	}

	if err := h.carrierService.DeleteCarrier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Carrier deleted successfully", nil)
}
