package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
)

// SalesOrderRepository defines the interface for sales order data operations
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	GetByDocumentNo(ctx context.Context, documentNo string) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SalesOrderFilterParams) ([]entity.SalesOrder, int64, error)
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.SalesOrderItem) error
	UpdateItem(ctx context.Context, item *entity.SalesOrderItem) error
}

// SalesOrderFilterParams contains filtering parameters for sales order queries
type SalesOrderFilterParams struct {
	Pagination        *pagination.PaginationParams
	Search            string
	Status            string
	FulfillmentStatus string
	CustomerID        *uuid.UUID
	StartDate         *time.Time
	EndDate           *time.Time
	SortBy            string
	SortOrder         string
}
