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

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name            string
	Email           *string
	Phone           *string
	TaxNumber       *string
	BillingAddress  *string
	ShippingAddress *string
	Notes           *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	customer := &entity.Customer{
		CompanyID:       companyID,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		TaxNumber:       input.TaxNumber,
		BillingAddress:  input.BillingAddress,
		ShippingAddress: input.ShippingAddress,
		Notes:           input.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperror.FromDBError(err, "Customer")
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with pagination and search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.Limit, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID              uuid.UUID
	Name            *string
	Email           *string
	Phone           *string
	TaxNumber       *string
	BillingAddress  *string
	ShippingAddress *string
	Notes           *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.TaxNumber != nil {
		customer.TaxNumber = input.TaxNumber
	}
	if input.BillingAddress != nil {
		customer.BillingAddress = input.BillingAddress
	}
	if input.ShippingAddress != nil {
		customer.ShippingAddress = input.ShippingAddress
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, apperror.FromDBError(err, "Customer")
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}
