package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"gorm.io/gorm"
)

type estimateRepository struct {
	db *gorm.DB
}

// NewEstimateRepository creates a new estimate repository
func NewEstimateRepository(db *gorm.DB) domainRepo.EstimateRepository {
	return &estimateRepository{db: db}
}

func (r *estimateRepository) Create(ctx context.Context, estimate *entity.Estimate) error {
	return dbFrom(ctx, r.db).Create(estimate).Error
}

func (r *estimateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	var estimate entity.Estimate
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&estimate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &estimate, err
}

func (r *estimateRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	var estimate entity.Estimate
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		First(&estimate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// Items are loaded outside the locking clause; FOR UPDATE OF applies
	// to the header row only.
	err = dbFrom(ctx, r.db).Where("estimate_id = ?", id).Order("line_no ASC").Find(&estimate.Items).Error
	return &estimate, err
}

func (r *estimateRepository) GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Estimate, error) {
	var estimate entity.Estimate
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		First(&estimate, "document_no = ?", documentNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &estimate, err
}

func (r *estimateRepository) Update(ctx context.Context, estimate *entity.Estimate) error {
	return dbFrom(ctx, r.db).Omit("Items").Save(estimate).Error
}

func (r *estimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.Estimate{}, "id = ?", id).Error
}

var estimateSortColumns = map[string]bool{
	"created_at":    true,
	"document_no":   true,
	"estimate_date": true,
	"status":        true,
	"grand_total":   true,
	"customer_name": true,
}

func (r *estimateRepository) List(ctx context.Context, params *domainRepo.EstimateFilterParams) ([]entity.Estimate, int64, error) {
	var estimates []entity.Estimate
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Estimate{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(document_no) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("estimate_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("estimate_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order(sortClause(params.SortBy, params.SortOrder, "created_at", estimateSortColumns)).
		Find(&estimates).Error

	return estimates, total, err
}

func (r *estimateRepository) ReplaceItems(ctx context.Context, estimateID uuid.UUID, items []entity.EstimateItem) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("estimate_id = ?", estimateID).Delete(&entity.EstimateItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].EstimateID = estimateID
	}
	return db.Create(&items).Error
}
