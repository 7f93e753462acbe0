package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService   *service.ProductService
	inventoryService *service.InventoryService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, inventoryService *service.InventoryService) *ProductHandler {
	return &ProductHandler{
		productService:   productService,
		inventoryService: inventoryService,
	}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		LowStock:   c.Query("low_stock") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if raw := c.Query("track_inventory"); raw != "" {
		track := raw == "true"
		params.TrackInventory = &track
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// LowStock lists products at or below their stock alert threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// Ledger returns the product's inventory movement history and per-location
// balances.
func (h *ProductHandler) Ledger(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	txns, locations, err := h.inventoryService.ProductLedger(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product ledger retrieved successfully", gin.H{
		"transactions": txns,
		"locations":    locations,
	})
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		Name           string           `json:"name" binding:"required,min=2,max=255"`
		SKU            string           `json:"sku" binding:"omitempty,max=100"`
		Description    *string          `json:"description"`
		TaxID          *uuid.UUID       `json:"tax_id"`
		SellingPrice   *decimal.Decimal `json:"selling_price"`
		PurchasePrice  *decimal.Decimal `json:"purchase_price"`
		TrackInventory bool             `json:"track_inventory"`
		StockAlertAt   *decimal.Decimal `json:"stock_alert_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:           req.Name,
		SKU:            req.SKU,
		Description:    req.Description,
		TaxID:          req.TaxID,
		SellingPrice:   decimalOrZero(req.SellingPrice),
		PurchasePrice:  decimalOrZero(req.PurchasePrice),
		TrackInventory: req.TrackInventory,
		StockAlertAt:   decimalOrZero(req.StockAlertAt),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product. Stock levels are never written here;
// they only move through inventory transactions.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req struct {
		Name           *string          `json:"name" binding:"omitempty,min=2,max=255"`
		SKU            *string          `json:"sku" binding:"omitempty,min=1,max=100"`
		Description    *string          `json:"description"`
		TaxID          *uuid.UUID       `json:"tax_id"`
		SellingPrice   *decimal.Decimal `json:"selling_price"`
		PurchasePrice  *decimal.Decimal `json:"purchase_price"`
		TrackInventory *bool            `json:"track_inventory"`
		StockAlertAt   *decimal.Decimal `json:"stock_alert_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ID:             id,
		Name:           req.Name,
		SKU:            req.SKU,
		Description:    req.Description,
		TaxID:          req.TaxID,
		SellingPrice:   req.SellingPrice,
		PurchasePrice:  req.PurchasePrice,
		TrackInventory: req.TrackInventory,
		StockAlertAt:   req.StockAlertAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}
