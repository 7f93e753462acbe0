package repository

import (
	"context"
	"time"

	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SalesSummaryByStatus(ctx context.Context, from, to time.Time) ([]domainRepo.SalesStatusSummary, error) {
	var rows []domainRepo.SalesStatusSummary
	err := dbFrom(ctx, r.db).Model(&entity.Invoice{}).Scopes(CompanyScope(ctx)).
		Select("status, COUNT(*) AS count, COALESCE(SUM(grand_total), 0) AS total, "+
			"COALESCE(SUM(amount_paid), 0) AS amount_paid, COALESCE(SUM(amount_due), 0) AS amount_due").
		Where("invoice_date >= ? AND invoice_date <= ?", from, to).
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) StockOnHand(ctx context.Context) ([]domainRepo.StockOnHandRow, error) {
	companyID, ok := GetCompanyID(ctx)
	if !ok {
		return nil, nil
	}

	var rows []domainRepo.StockOnHandRow
	err := dbFrom(ctx, r.db).Model(&entity.ProductStockLocation{}).
		Select("product_stock_locations.product_id, products.name, products.sku, "+
			"product_stock_locations.location, product_stock_locations.quantity_on_hand, products.stock_alert_at").
		Joins("JOIN products ON products.id = product_stock_locations.product_id").
		Where("product_stock_locations.company_id = ?", companyID).
		Where("products.track_inventory = ?", true).
		Where("products.deleted_at IS NULL").
		Order("products.name ASC, product_stock_locations.location ASC").
		Scan(&rows).Error
	return rows, err
}
