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

// EstimateService handles estimate lifecycle operations
type EstimateService struct {
	estimateRepo repository.EstimateRepository
	customerRepo repository.CustomerRepository
	sequences    *SequenceService
	txManager    repository.TxManager
}

// NewEstimateService creates a new estimate service
func NewEstimateService(
	estimateRepo repository.EstimateRepository,
	customerRepo repository.CustomerRepository,
	sequences *SequenceService,
	txManager repository.TxManager,
) *EstimateService {
	return &EstimateService{
		estimateRepo: estimateRepo,
		customerRepo: customerRepo,
		sequences:    sequences,
		txManager:    txManager,
	}
}

// CreateEstimateInput represents the create estimate input
type CreateEstimateInput struct {
	CustomerID      uuid.UUID
	EstimateDate    time.Time
	ExpiryDate      *time.Time
	ShippingCharges decimal.Decimal
	DiscountAmount  decimal.Decimal
	Notes           *string
	Items           []LineItemInput
}

// CreateEstimate creates a draft estimate, snapshotting the customer's
// name and address and assigning a document number from the sequence.
func (s *EstimateService) CreateEstimate(ctx context.Context, input *CreateEstimateInput) (*entity.Estimate, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	totals := computeTotals(input.Items, input.ShippingCharges, input.DiscountAmount)

	estimate := &entity.Estimate{
		CompanyID:       companyID,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerAddress: customer.AddressSnapshot(),
		EstimateDate:    dateOrToday(input.EstimateDate),
		ExpiryDate:      input.ExpiryDate,
		Status:          enum.EstimateStatusDraft,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		DiscountAmount:  input.DiscountAmount,
		ShippingCharges: input.ShippingCharges,
		GrandTotal:      totals.GrandTotal,
		Notes:           input.Notes,
		Items:           buildEstimateItems(input.Items, totals),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		documentNo, err := s.sequences.Next(ctx, enum.DocumentTypeEstimate)
		if err != nil {
			return err
		}
		estimate.DocumentNo = documentNo
		return apperror.FromDBError(s.estimateRepo.Create(ctx, estimate), "Estimate")
	})
	if err != nil {
		return nil, err
	}
	return estimate, nil
}

// GetEstimate retrieves an estimate with its lines
func (s *EstimateService) GetEstimate(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, apperror.NewNotFoundError("Estimate")
	}
	return estimate, nil
}

// ListEstimates lists estimates with filters
func (s *EstimateService) ListEstimates(ctx context.Context, params *repository.EstimateFilterParams) (*pagination.PaginatedResult[entity.Estimate], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	estimates, total, err := s.estimateRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(estimates, pag), nil
}

// UpdateEstimateInput represents the update estimate input
type UpdateEstimateInput struct {
	ID              uuid.UUID
	EstimateDate    *time.Time
	ExpiryDate      *time.Time
	ShippingCharges *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	Notes           *string
	Items           []LineItemInput
}

// UpdateEstimate replaces an estimate's editable fields and its whole line
// set. Only draft estimates can change; the draft check runs under the row
// lock so a concurrent conversion cannot slip in between check and save.
func (s *EstimateService) UpdateEstimate(ctx context.Context, input *UpdateEstimateInput) (*entity.Estimate, error) {
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	var estimate *entity.Estimate
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		estimate, err = s.estimateRepo.GetByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if estimate == nil {
			return apperror.NewNotFoundError("Estimate")
		}
		if estimate.Status != enum.EstimateStatusDraft {
			return apperror.NewConflictError("Only draft estimates can be edited")
		}

		if input.EstimateDate != nil {
			estimate.EstimateDate = *input.EstimateDate
		}
		if input.ExpiryDate != nil {
			estimate.ExpiryDate = input.ExpiryDate
		}
		if input.ShippingCharges != nil {
			estimate.ShippingCharges = *input.ShippingCharges
		}
		if input.DiscountAmount != nil {
			estimate.DiscountAmount = *input.DiscountAmount
		}
		if input.Notes != nil {
			estimate.Notes = input.Notes
		}

		totals := computeTotals(input.Items, estimate.ShippingCharges, estimate.DiscountAmount)
		estimate.Subtotal = totals.Subtotal
		estimate.TaxAmount = totals.TaxAmount
		estimate.GrandTotal = totals.GrandTotal
		items := buildEstimateItems(input.Items, totals)

		if err := s.estimateRepo.ReplaceItems(ctx, estimate.ID, items); err != nil {
			return err
		}
		if err := s.estimateRepo.Update(ctx, estimate); err != nil {
			return err
		}
		estimate.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return estimate, nil
}

// DeleteEstimate soft-deletes a draft estimate
func (s *EstimateService) DeleteEstimate(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		estimate, err := s.estimateRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if estimate == nil {
			return apperror.NewNotFoundError("Estimate")
		}
		if estimate.Status != enum.EstimateStatusDraft {
			return apperror.NewConflictError("Only draft estimates can be deleted")
		}
		return s.estimateRepo.Delete(ctx, id)
	})
}

func buildEstimateItems(items []LineItemInput, totals documentTotals) []entity.EstimateItem {
	out := make([]entity.EstimateItem, len(items))
	for i, item := range items {
		out[i] = entity.EstimateItem{
			LineNo:      i + 1,
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Discount:    item.Discount,
			TaxRate:     item.TaxRate,
			TaxAmount:   totals.Lines[i].TaxAmount,
			LineTotal:   totals.Lines[i].LineTotal,
		}
	}
	return out
}
