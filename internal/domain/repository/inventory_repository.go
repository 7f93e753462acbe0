package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
)

// InventoryRepository defines the interface for the append-only stock ledger.
// Transactions are only ever created, never updated or deleted.
type InventoryRepository interface {
	Create(ctx context.Context, txn *entity.InventoryTransaction) error
	CreateBatch(ctx context.Context, txns []entity.InventoryTransaction) error
	List(ctx context.Context, params *InventoryFilterParams) ([]entity.InventoryTransaction, int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.InventoryTransaction, error)
	ListByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]entity.InventoryTransaction, error)
}

// InventoryFilterParams contains filtering parameters for ledger queries
type InventoryFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	Type       *enum.InventoryTransactionType
	Location   string
	StartDate  *time.Time
	EndDate    *time.Time
}
