package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
)

// VendorService handles vendor-related operations
type VendorService struct {
	vendorRepo repository.VendorRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(vendorRepo repository.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// VendorInput represents the vendor create/update fields
type VendorInput struct {
	Name      string
	Email     *string
	Phone     *string
	TaxNumber *string
	Address   *string
	Notes     *string
}

// CreateVendor creates a new vendor
func (s *VendorService) CreateVendor(ctx context.Context, input *VendorInput) (*entity.Vendor, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	vendor := &entity.Vendor{
		CompanyID: companyID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		TaxNumber: input.TaxNumber,
		Address:   input.Address,
		Notes:     input.Notes,
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, apperror.FromDBError(err, "Vendor")
	}
	return vendor, nil
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}
	return vendor, nil
}

// ListVendors lists vendors with pagination and search
func (s *VendorService) ListVendors(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Vendor], error) {
	vendors, total, err := s.vendorRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.Limit, total)
	return pagination.NewPaginatedResult(vendors, pag), nil
}

// UpdateVendor updates a vendor
func (s *VendorService) UpdateVendor(ctx context.Context, id uuid.UUID, input *VendorInput) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	if input.Name != "" {
		vendor.Name = input.Name
	}
	if input.Email != nil {
		vendor.Email = input.Email
	}
	if input.Phone != nil {
		vendor.Phone = input.Phone
	}
	if input.TaxNumber != nil {
		vendor.TaxNumber = input.TaxNumber
	}
	if input.Address != nil {
		vendor.Address = input.Address
	}
	if input.Notes != nil {
		vendor.Notes = input.Notes
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, apperror.FromDBError(err, "Vendor")
	}
	return vendor, nil
}

// DeleteVendor soft-deletes a vendor
func (s *VendorService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return apperror.NewNotFoundError("Vendor")
	}
	return s.vendorRepo.Delete(ctx, id)
}
