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

type salesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository creates a new sales order repository
func NewSalesOrderRepository(db *gorm.DB) domainRepo.SalesOrderRepository {
	return &salesOrderRepository{db: db}
}

func (r *salesOrderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	return dbFrom(ctx, r.db).Create(order).Error
}

func (r *salesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = dbFrom(ctx, r.db).Where("sales_order_id = ?", id).Order("line_no ASC").Find(&order.Items).Error
	return &order, err
}

func (r *salesOrderRepository) GetByDocumentNo(ctx context.Context, documentNo string) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		First(&order, "document_no = ?", documentNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) Update(ctx context.Context, order *entity.SalesOrder) error {
	return dbFrom(ctx, r.db).Omit("Items").Save(order).Error
}

func (r *salesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.SalesOrder{}, "id = ?", id).Error
}

var salesOrderSortColumns = map[string]bool{
	"created_at":    true,
	"document_no":   true,
	"order_date":    true,
	"status":        true,
	"grand_total":   true,
	"customer_name": true,
}

func (r *salesOrderRepository) List(ctx context.Context, params *domainRepo.SalesOrderFilterParams) ([]entity.SalesOrder, int64, error) {
	var orders []entity.SalesOrder
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.SalesOrder{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(document_no) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.FulfillmentStatus != "" {
		query = query.Where("fulfillment_status = ?", params.FulfillmentStatus)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order(sortClause(params.SortBy, params.SortOrder, "created_at", salesOrderSortColumns)).
		Find(&orders).Error

	return orders, total, err
}

func (r *salesOrderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.SalesOrderItem) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("sales_order_id = ?", orderID).Delete(&entity.SalesOrderItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].SalesOrderID = orderID
	}
	return db.Create(&items).Error
}

func (r *salesOrderRepository) UpdateItem(ctx context.Context, item *entity.SalesOrderItem) error {
	return dbFrom(ctx, r.db).Save(item).Error
}
