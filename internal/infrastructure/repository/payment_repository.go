package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFrom(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Preload("Allocations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return dbFrom(ctx, r.db).Omit("Allocations").Save(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.Payment{}, "id = ?", id).Error
}

var paymentSortColumns = map[string]bool{
	"created_at":   true,
	"document_no":  true,
	"payment_date": true,
	"amount":       true,
	"kind":         true,
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Payment{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(document_no) LIKE ? OR LOWER(reference) LIKE ?", pattern, pattern)
	}
	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}
	if params.StartDate != nil {
		query = query.Where("payment_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("payment_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order(sortClause(params.SortBy, params.SortOrder, "payment_date", paymentSortColumns)).
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) CreateAllocation(ctx context.Context, allocation *entity.PaymentAllocation) error {
	return dbFrom(ctx, r.db).Create(allocation).Error
}

func (r *paymentRepository) ListAllocations(ctx context.Context, paymentID uuid.UUID) ([]entity.PaymentAllocation, error) {
	var allocations []entity.PaymentAllocation
	err := dbFrom(ctx, r.db).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC").
		Find(&allocations).Error
	return allocations, err
}

func (r *paymentRepository) ListAllocationsByTarget(ctx context.Context, targetType enum.DocumentType, targetID uuid.UUID) ([]entity.PaymentAllocation, error) {
	var allocations []entity.PaymentAllocation
	err := dbFrom(ctx, r.db).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at ASC").
		Find(&allocations).Error
	return allocations, err
}
