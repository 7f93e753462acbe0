package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// TaxService handles tax rate operations
type TaxService struct {
	taxRepo repository.TaxRepository
}

// NewTaxService creates a new tax service
func NewTaxService(taxRepo repository.TaxRepository) *TaxService {
	return &TaxService{taxRepo: taxRepo}
}

// TaxInput represents the tax create/update fields
type TaxInput struct {
	Name     string
	Rate     decimal.Decimal
	Compound *bool
}

// CreateTax creates a new tax rate
func (s *TaxService) CreateTax(ctx context.Context, input *TaxInput) (*entity.Tax, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if input.Rate.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "rate", Message: "rate must not be negative"},
		})
	}

	tax := &entity.Tax{
		CompanyID: companyID,
		Name:      input.Name,
		Rate:      input.Rate,
	}
	if input.Compound != nil {
		tax.Compound = *input.Compound
	}

	if err := s.taxRepo.Create(ctx, tax); err != nil {
		return nil, apperror.FromDBError(err, "Tax")
	}
	return tax, nil
}

// GetTax retrieves a tax rate by ID
func (s *TaxService) GetTax(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}
	return tax, nil
}

// ListTaxes lists all tax rates of the company
func (s *TaxService) ListTaxes(ctx context.Context) ([]entity.Tax, error) {
	return s.taxRepo.List(ctx)
}

// UpdateTax updates a tax rate
func (s *TaxService) UpdateTax(ctx context.Context, id uuid.UUID, input *TaxInput) (*entity.Tax, error) {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}

	if input.Name != "" {
		tax.Name = input.Name
	}
	if !input.Rate.IsNegative() {
		tax.Rate = input.Rate
	}
	if input.Compound != nil {
		tax.Compound = *input.Compound
	}

	if err := s.taxRepo.Update(ctx, tax); err != nil {
		return nil, apperror.FromDBError(err, "Tax")
	}
	return tax, nil
}

// DeleteTax soft-deletes a tax rate
func (s *TaxService) DeleteTax(ctx context.Context, id uuid.UUID) error {
	tax, err := s.taxRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tax == nil {
		return apperror.NewNotFoundError("Tax")
	}
	return s.taxRepo.Delete(ctx, id)
}
