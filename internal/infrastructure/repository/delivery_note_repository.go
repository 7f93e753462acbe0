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

type deliveryNoteRepository struct {
	db *gorm.DB
}

// NewDeliveryNoteRepository creates a new delivery note repository
func NewDeliveryNoteRepository(db *gorm.DB) domainRepo.DeliveryNoteRepository {
	return &deliveryNoteRepository{db: db}
}

func (r *deliveryNoteRepository) Create(ctx context.Context, note *entity.DeliveryNote) error {
	return dbFrom(ctx, r.db).Create(note).Error
}

func (r *deliveryNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DeliveryNote, error) {
	var note entity.DeliveryNote
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Preload("Carrier").
		First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &note, err
}

func (r *deliveryNoteRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.DeliveryNote, error) {
	var note entity.DeliveryNote
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = dbFrom(ctx, r.db).Where("delivery_note_id = ?", id).Order("line_no ASC").Find(&note.Items).Error
	return &note, err
}

func (r *deliveryNoteRepository) GetByDocumentNo(ctx context.Context, documentNo string) (*entity.DeliveryNote, error) {
	var note entity.DeliveryNote
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		First(&note, "document_no = ?", documentNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &note, err
}

func (r *deliveryNoteRepository) Update(ctx context.Context, note *entity.DeliveryNote) error {
	return dbFrom(ctx, r.db).Omit("Items").Save(note).Error
}

func (r *deliveryNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.DeliveryNote{}, "id = ?", id).Error
}

var deliveryNoteSortColumns = map[string]bool{
	"created_at":    true,
	"document_no":   true,
	"delivery_date": true,
	"status":        true,
	"customer_name": true,
}

func (r *deliveryNoteRepository) List(ctx context.Context, params *domainRepo.DeliveryNoteFilterParams) ([]entity.DeliveryNote, int64, error) {
	var notes []entity.DeliveryNote
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.DeliveryNote{}).Scopes(CompanyScope(ctx))

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
	if params.SalesOrderID != nil {
		query = query.Where("sales_order_id = ?", *params.SalesOrderID)
	}
	if params.StartDate != nil {
		query = query.Where("delivery_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("delivery_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order(sortClause(params.SortBy, params.SortOrder, "created_at", deliveryNoteSortColumns)).
		Find(&notes).Error

	return notes, total, err
}

func (r *deliveryNoteRepository) ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]entity.DeliveryNote, error) {
	var notes []entity.DeliveryNote
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Where("sales_order_id = ?", salesOrderID).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}

func (r *deliveryNoteRepository) ReplaceItems(ctx context.Context, noteID uuid.UUID, items []entity.DeliveryNoteItem) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("delivery_note_id = ?", noteID).Delete(&entity.DeliveryNoteItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].DeliveryNoteID = noteID
	}
	return db.Create(&items).Error
}
