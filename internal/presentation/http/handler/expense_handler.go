package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	params := &repository.ExpenseFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		VendorID:   optionalUUIDQuery(c, "vendor_id"),
		StartDate:  optionalDateQuery(c, "start_date"),
		EndDate:    optionalDateQuery(c, "end_date"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Get handles retrieving a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// Create handles recording an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req struct {
		VendorID    *uuid.UUID              `json:"vendor_id"`
		Category    string                  `json:"category" binding:"required,min=1,max=100"`
		ExpenseDate time.Time               `json:"expense_date" binding:"required"`
		Reference   *string                 `json:"reference"`
		Notes       *string                 `json:"notes"`
		Items       []service.LineItemInput `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		VendorID:    req.VendorID,
		Category:    req.Category,
		ExpenseDate: req.ExpenseDate,
		Reference:   req.Reference,
		Notes:       req.Notes,
		Items:       req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// Update handles updating an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req struct {
		Category    *string                 `json:"category" binding:"omitempty,min=1,max=100"`
		ExpenseDate *time.Time              `json:"expense_date"`
		Reference   *string                 `json:"reference"`
		Notes       *string                 `json:"notes"`
		Items       []service.LineItemInput `json:"items" binding:"omitempty,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), &service.UpdateExpenseInput{
		ID:          id,
		Category:    req.Category,
		ExpenseDate: req.ExpenseDate,
		Reference:   req.Reference,
		Notes:       req.Notes,
		Items:       req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted successfully", nil)
}
