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

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return dbFrom(ctx, r.db).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = dbFrom(ctx, r.db).Where("expense_id = ?", id).Order("line_no ASC").Find(&expense.Items).Error
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return dbFrom(ctx, r.db).Omit("Items").Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.Expense{}, "id = ?", id).Error
}

var expenseSortColumns = map[string]bool{
	"created_at":   true,
	"document_no":  true,
	"expense_date": true,
	"category":     true,
	"grand_total":  true,
	"vendor_name":  true,
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Expense{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(document_no) LIKE ? OR LOWER(vendor_name) LIKE ?", pattern, pattern)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}
	if params.StartDate != nil {
		query = query.Where("expense_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("expense_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order(sortClause(params.SortBy, params.SortOrder, "expense_date", expenseSortColumns)).
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) ReplaceItems(ctx context.Context, expenseID uuid.UUID, items []entity.ExpenseItem) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("expense_id = ?", expenseID).Delete(&entity.ExpenseItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ExpenseID = expenseID
	}
	return db.Create(&items).Error
}
