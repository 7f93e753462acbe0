package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDForUpdate loads a product under a row lock so stock math is
	// serialized within the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error

	// Per-location stock rows
	GetStockLocation(ctx context.Context, productID uuid.UUID, location string) (*entity.ProductStockLocation, error)
	GetStockLocationForUpdate(ctx context.Context, productID uuid.UUID, location string) (*entity.ProductStockLocation, error)
	SaveStockLocation(ctx context.Context, row *entity.ProductStockLocation) error
	ListStockLocations(ctx context.Context, productID uuid.UUID) ([]entity.ProductStockLocation, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	TrackInventory *bool
	LowStock       bool
	SortBy         string
	SortOrder      string
}

// TaxRepository defines the interface for tax rate data operations
type TaxRepository interface {
	Create(ctx context.Context, tax *entity.Tax) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error)
	Update(ctx context.Context, tax *entity.Tax) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Tax, error)
}

// CarrierRepository defines the interface for shipping carrier data operations
type CarrierRepository interface {
	Create(ctx context.Context, carrier *entity.Carrier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Carrier, error)
	Update(ctx context.Context, carrier *entity.Carrier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Carrier, error)
}
