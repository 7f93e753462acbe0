package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
)

// DeliveryNoteRepository defines the interface for delivery note data operations
type DeliveryNoteRepository interface {
	Create(ctx context.Context, note *entity.DeliveryNote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DeliveryNote, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.DeliveryNote, error)
	GetByDocumentNo(ctx context.Context, documentNo string) (*entity.DeliveryNote, error)
	Update(ctx context.Context, note *entity.DeliveryNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *DeliveryNoteFilterParams) ([]entity.DeliveryNote, int64, error)
	ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]entity.DeliveryNote, error)
	ReplaceItems(ctx context.Context, noteID uuid.UUID, items []entity.DeliveryNoteItem) error
}

// DeliveryNoteFilterParams contains filtering parameters for delivery note queries
type DeliveryNoteFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	Status       string
	CustomerID   *uuid.UUID
	SalesOrderID *uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
	SortBy       string
	SortOrder    string
}
