package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return dbFrom(ctx, r.db).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = dbFrom(ctx, r.db).Where("bill_id = ?", id).Order("line_no ASC").Find(&bill.Items).Error
	return &bill, err
}

func (r *billRepository) GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		First(&bill, "document_no = ?", documentNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return dbFrom(ctx, r.db).Omit("Items").Save(bill).Error
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.Bill{}, "id = ?", id).Error
}

var billSortColumns = map[string]bool{
	"created_at":     true,
	"document_no":    true,
	"bill_date":      true,
	"due_date":       true,
	"status":         true,
	"payment_status": true,
	"grand_total":    true,
	"amount_due":     true,
	"vendor_name":    true,
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Bill{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(document_no) LIKE ? OR LOWER(vendor_name) LIKE ? OR LOWER(vendor_bill_no) LIKE ?",
			pattern, pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}
	if params.StartDate != nil {
		query = query.Where("bill_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("bill_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order(sortClause(params.SortBy, params.SortOrder, "created_at", billSortColumns)).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) ReplaceItems(ctx context.Context, billID uuid.UUID, items []entity.BillItem) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("bill_id = ?", billID).Delete(&entity.BillItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].BillID = billID
	}
	return db.Create(&items).Error
}

func (r *billRepository) ListOpenByVendor(ctx context.Context, vendorID uuid.UUID) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		Where("vendor_id = ?", vendorID).
		Where("status IN ?", []string{enum.BillStatusOpen, enum.BillStatusOverdue}).
		Where("payment_status <> ?", enum.PaymentStatusPaid).
		Order("bill_date ASC, created_at ASC").
		Find(&bills).Error
	return bills, err
}

// MarkOverdue is a system sweep that runs across all companies, so it does
// not apply the company scope.
func (r *billRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res := dbFrom(ctx, r.db).Model(&entity.Bill{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", enum.BillStatusOpen, asOf).
		Update("status", enum.BillStatusOverdue)
	return res.RowsAffected, res.Error
}
