package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
	"github.com/sangkips/ledgerly-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	taxRepo     repository.TaxRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, taxRepo repository.TaxRepository) *ProductService {
	return &ProductService{productRepo: productRepo, taxRepo: taxRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name           string
	SKU            string
	Description    *string
	TaxID          *uuid.UUID
	SellingPrice   decimal.Decimal
	PurchasePrice  decimal.Decimal
	TrackInventory bool
	StockAlertAt   decimal.Decimal
}

// CreateProduct creates a new product. A missing SKU is generated.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	if input.TaxID != nil {
		tax, err := s.taxRepo.GetByID(ctx, *input.TaxID)
		if err != nil {
			return nil, err
		}
		if tax == nil {
			return nil, apperror.NewNotFoundError("Tax")
		}
	}

	sku := input.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	}

	product := &entity.Product{
		CompanyID:      companyID,
		Name:           input.Name,
		SKU:            sku,
		Description:    input.Description,
		TaxID:          input.TaxID,
		SellingPrice:   input.SellingPrice,
		PurchasePrice:  input.PurchasePrice,
		TrackInventory: input.TrackInventory,
		StockAlertAt:   input.StockAlertAt,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperror.FromDBError(err, "Product")
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filters
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock lists tracked products at or below their alert threshold
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID             uuid.UUID
	Name           *string
	SKU            *string
	Description    *string
	TaxID          *uuid.UUID
	SellingPrice   *decimal.Decimal
	PurchasePrice  *decimal.Decimal
	TrackInventory *bool
	StockAlertAt   *decimal.Decimal
}

// UpdateProduct updates a product. Stock is never written here; it only
// moves through inventory transactions.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.SKU != nil && *input.SKU != "" {
		product.SKU = *input.SKU
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.TaxID != nil {
		tax, err := s.taxRepo.GetByID(ctx, *input.TaxID)
		if err != nil {
			return nil, err
		}
		if tax == nil {
			return nil, apperror.NewNotFoundError("Tax")
		}
		product.TaxID = input.TaxID
	}
	if input.SellingPrice != nil {
		product.SellingPrice = *input.SellingPrice
	}
	if input.PurchasePrice != nil {
		product.PurchasePrice = *input.PurchasePrice
	}
	if input.TrackInventory != nil {
		product.TrackInventory = *input.TrackInventory
	}
	if input.StockAlertAt != nil {
		product.StockAlertAt = *input.StockAlertAt
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperror.FromDBError(err, "Product")
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
