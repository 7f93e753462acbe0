package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense operations. Expenses have no status
// lifecycle; they are recorded, optionally edited, and soft-deleted.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	vendorRepo  repository.VendorRepository
	sequences   *SequenceService
	txManager   repository.TxManager
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	vendorRepo repository.VendorRepository,
	sequences *SequenceService,
	txManager repository.TxManager,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		vendorRepo:  vendorRepo,
		sequences:   sequences,
		txManager:   txManager,
	}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	VendorID    *uuid.UUID
	Category    string
	ExpenseDate time.Time
	Reference   *string
	Notes       *string
	Items       []LineItemInput
}

// CreateExpense records a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	var vendorName string
	if input.VendorID != nil {
		vendor, err := s.vendorRepo.GetByID(ctx, *input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, apperror.NewNotFoundError("Vendor")
		}
		vendorName = vendor.Name
	}

	totals := computeTotals(input.Items, decimal.Zero, decimal.Zero)

	expense := &entity.Expense{
		CompanyID:   companyID,
		VendorID:    input.VendorID,
		VendorName:  vendorName,
		Category:    input.Category,
		ExpenseDate: dateOrToday(input.ExpenseDate),
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		GrandTotal:  totals.GrandTotal,
		Reference:   input.Reference,
		Notes:       input.Notes,
		Items:       buildExpenseItems(input.Items, totals),
	}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		documentNo, err := s.sequences.Next(ctx, enum.DocumentTypeExpense)
		if err != nil {
			return err
		}
		expense.DocumentNo = documentNo
		return apperror.FromDBError(s.expenseRepo.Create(ctx, expense), "Expense")
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense retrieves an expense with its lines
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses lists expenses with filters
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// UpdateExpenseInput represents the update expense input
type UpdateExpenseInput struct {
	ID          uuid.UUID
	Category    *string
	ExpenseDate *time.Time
	Reference   *string
	Notes       *string
	Items       []LineItemInput
}

// UpdateExpense replaces an expense's editable fields and line set. The
// load runs under the row lock so a concurrent edit cannot be overwritten
// with stale fields.
func (s *ExpenseService) UpdateExpense(ctx context.Context, input *UpdateExpenseInput) (*entity.Expense, error) {
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	var expense *entity.Expense
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		expense, err = s.expenseRepo.GetByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if expense == nil {
			return apperror.NewNotFoundError("Expense")
		}

		if input.Category != nil {
			expense.Category = *input.Category
		}
		if input.ExpenseDate != nil {
			expense.ExpenseDate = *input.ExpenseDate
		}
		if input.Reference != nil {
			expense.Reference = input.Reference
		}
		if input.Notes != nil {
			expense.Notes = input.Notes
		}

		totals := computeTotals(input.Items, decimal.Zero, decimal.Zero)
		expense.Subtotal = totals.Subtotal
		expense.TaxAmount = totals.TaxAmount
		expense.GrandTotal = totals.GrandTotal
		items := buildExpenseItems(input.Items, totals)

		if err := s.expenseRepo.ReplaceItems(ctx, expense.ID, items); err != nil {
			return err
		}
		if err := s.expenseRepo.Update(ctx, expense); err != nil {
			return err
		}
		expense.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense soft-deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		expense, err := s.expenseRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if expense == nil {
			return apperror.NewNotFoundError("Expense")
		}
		return s.expenseRepo.Delete(ctx, id)
	})
}

func buildExpenseItems(items []LineItemInput, totals documentTotals) []entity.ExpenseItem {
	out := make([]entity.ExpenseItem, len(items))
	for i, item := range items {
		out[i] = entity.ExpenseItem{
			LineNo:      i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			TaxRate:     item.TaxRate,
			TaxAmount:   totals.Lines[i].TaxAmount,
			LineTotal:   totals.Lines[i].LineTotal,
		}
	}
	return out
}
