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

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return dbFrom(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = dbFrom(ctx, r.db).Where("invoice_id = ?", id).Order("line_no ASC").Find(&invoice.Items).Error
	return &invoice, err
}

func (r *invoiceRepository) GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		First(&invoice, "document_no = ?", documentNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return dbFrom(ctx, r.db).Omit("Items").Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.Invoice{}, "id = ?", id).Error
}

var invoiceSortColumns = map[string]bool{
	"created_at":     true,
	"document_no":    true,
	"invoice_date":   true,
	"due_date":       true,
	"status":         true,
	"payment_status": true,
	"grand_total":    true,
	"amount_due":     true,
	"customer_name":  true,
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Invoice{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(document_no) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("invoice_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("invoice_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order(sortClause(params.SortBy, params.SortOrder, "created_at", invoiceSortColumns)).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []entity.InvoiceItem) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("invoice_id = ?", invoiceID).Delete(&entity.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].InvoiceID = invoiceID
	}
	return db.Create(&items).Error
}

func (r *invoiceRepository) ListOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		Where("customer_id = ?", customerID).
		Where("status IN ?", []string{enum.InvoiceStatusSent, enum.InvoiceStatusOverdue}).
		Where("payment_status <> ?", enum.PaymentStatusPaid).
		Order("invoice_date ASC, created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListOutstanding(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Where("status IN ?", []string{enum.InvoiceStatusSent, enum.InvoiceStatusOverdue}).
		Where("payment_status <> ?", enum.PaymentStatusPaid).
		Order("invoice_date ASC").
		Find(&invoices).Error
	return invoices, err
}

// MarkOverdue is a system sweep that runs across all companies, so it does
// not apply the company scope.
func (r *invoiceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res := dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", enum.InvoiceStatusSent, asOf).
		Update("status", enum.InvoiceStatusOverdue)
	return res.RowsAffected, res.Error
}
