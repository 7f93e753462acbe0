package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles stock movement HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Adjust records a manual stock adjustment
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req service.AdjustmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	txn, err := h.inventoryService.Adjust(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjustment recorded successfully", txn)
}

// Transfer moves stock between two locations
func (h *InventoryHandler) Transfer(c *gin.Context) {
	var req service.TransferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	txns, err := h.inventoryService.Transfer(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock transfer recorded successfully", txns)
}

// ListTransactions handles listing inventory transactions
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	params := &repository.InventoryFilterParams{
		Pagination: paginationFromQuery(c),
		ProductID:  optionalUUIDQuery(c, "product_id"),
		Location:   c.Query("location"),
		StartDate:  optionalDateQuery(c, "start_date"),
		EndDate:    optionalDateQuery(c, "end_date"),
	}
	if raw := c.Query("type"); raw != "" {
		txnType := enum.InventoryTransactionType(raw)
		params.Type = &txnType
	}

	result, err := h.inventoryService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Inventory transactions retrieved successfully", result)
}
