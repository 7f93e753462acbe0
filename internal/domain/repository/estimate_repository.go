package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
)

// EstimateRepository defines the interface for estimate data operations
type EstimateRepository interface {
	Create(ctx context.Context, estimate *entity.Estimate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Estimate, error)
	// GetByIDForUpdate loads the estimate under a row lock for conversion
	// and status transitions.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Estimate, error)
	GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Estimate, error)
	Update(ctx context.Context, estimate *entity.Estimate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *EstimateFilterParams) ([]entity.Estimate, int64, error)
	ReplaceItems(ctx context.Context, estimateID uuid.UUID, items []entity.EstimateItem) error
}

// EstimateFilterParams contains filtering parameters for estimate queries
type EstimateFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     string
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
