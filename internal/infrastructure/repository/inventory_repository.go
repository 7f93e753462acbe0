package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"gorm.io/gorm"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory ledger repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, txn *entity.InventoryTransaction) error {
	return dbFrom(ctx, r.db).Create(txn).Error
}

func (r *inventoryRepository) CreateBatch(ctx context.Context, txns []entity.InventoryTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Create(&txns).Error
}

func (r *inventoryRepository) List(ctx context.Context, params *domainRepo.InventoryFilterParams) ([]entity.InventoryTransaction, int64, error) {
	var txns []entity.InventoryTransaction
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.InventoryTransaction{}).Scopes(CompanyScope(ctx))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Location != "" {
		query = query.Where("location = ?", params.Location)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order("created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

func (r *inventoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.InventoryTransaction, error) {
	var txns []entity.InventoryTransaction
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&txns).Error
	return txns, err
}

func (r *inventoryRepository) ListByReference(ctx context.Context, referenceType string, referenceID uuid.UUID) ([]entity.InventoryTransaction, error) {
	var txns []entity.InventoryTransaction
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Where("reference_type = ? AND reference_id = ?", referenceType, referenceID).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}
