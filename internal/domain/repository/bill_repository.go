package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
)

// BillRepository defines the interface for vendor bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Bill, error)
	Update(ctx context.Context, bill *entity.Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	ReplaceItems(ctx context.Context, billID uuid.UUID, items []entity.BillItem) error
	// ListOpenByVendor returns open or overdue bills with an outstanding
	// balance, oldest bill date first, for payment auto-allocation.
	ListOpenByVendor(ctx context.Context, vendorID uuid.UUID) ([]entity.Bill, error)
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        string
	PaymentStatus *enum.PaymentStatus
	VendorID      *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}
