package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return dbFrom(ctx, r.db).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []entity.Product
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var product entity.Product
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return dbFrom(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.Product{}, "id = ?", id).Error
}

var productSortColumns = map[string]bool{
	"created_at":    true,
	"name":          true,
	"sku":           true,
	"selling_price": true,
	"current_stock": true,
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Product{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if params.TrackInventory != nil {
		query = query.Where("track_inventory = ?", *params.TrackInventory)
	}
	if params.LowStock {
		query = query.Where("track_inventory = ? AND current_stock <= stock_alert_at", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Products sort ascending by default, unlike the documents, so the
	// allowlist check is applied inline here.
	sortBy := params.SortBy
	if !productSortColumns[sortBy] {
		sortBy = "name"
	}
	sortOrder := params.SortOrder
	if sortOrder != "desc" {
		sortOrder = "asc"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Where("track_inventory = ? AND current_stock <= stock_alert_at", true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
	return dbFrom(ctx, r.db).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("current_stock", stock).Error
}

func (r *productRepository) GetStockLocation(ctx context.Context, productID uuid.UUID, location string) (*entity.ProductStockLocation, error) {
	var row entity.ProductStockLocation
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		First(&row, "product_id = ? AND location = ?", productID, location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &row, err
}

func (r *productRepository) GetStockLocationForUpdate(ctx context.Context, productID uuid.UUID, location string) (*entity.ProductStockLocation, error) {
	var row entity.ProductStockLocation
	err := forUpdate(dbFrom(ctx, r.db)).Scopes(CompanyScope(ctx)).
		First(&row, "product_id = ? AND location = ?", productID, location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &row, err
}

func (r *productRepository) SaveStockLocation(ctx context.Context, row *entity.ProductStockLocation) error {
	return dbFrom(ctx, r.db).Save(row).Error
}

func (r *productRepository) ListStockLocations(ctx context.Context, productID uuid.UUID) ([]entity.ProductStockLocation, error) {
	var rows []entity.ProductStockLocation
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Where("product_id = ?", productID).
		Order("location ASC").
		Find(&rows).Error
	return rows, err
}

type taxRepository struct {
	db *gorm.DB
}

// NewTaxRepository creates a new tax repository
func NewTaxRepository(db *gorm.DB) domainRepo.TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(ctx context.Context, tax *entity.Tax) error {
	return dbFrom(ctx, r.db).Create(tax).Error
}

func (r *taxRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	var tax entity.Tax
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tax, err
}

func (r *taxRepository) Update(ctx context.Context, tax *entity.Tax) error {
	return dbFrom(ctx, r.db).Save(tax).Error
}

func (r *taxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.Tax{}, "id = ?", id).Error
}

func (r *taxRepository) List(ctx context.Context) ([]entity.Tax, error) {
	var taxes []entity.Tax
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Order("name ASC").Find(&taxes).Error
	return taxes, err
}

type carrierRepository struct {
	db *gorm.DB
}

// NewCarrierRepository creates a new carrier repository
func NewCarrierRepository(db *gorm.DB) domainRepo.CarrierRepository {
	return &carrierRepository{db: db}
}

func (r *carrierRepository) Create(ctx context.Context, carrier *entity.Carrier) error {
	return dbFrom(ctx, r.db).Create(carrier).Error
}

func (r *carrierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Carrier, error) {
	var carrier entity.Carrier
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).First(&carrier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &carrier, err
}

func (r *carrierRepository) Update(ctx context.Context, carrier *entity.Carrier) error {
	return dbFrom(ctx, r.db).Save(carrier).Error
}

func (r *carrierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Delete(&entity.Carrier{}, "id = ?", id).Error
}

func (r *carrierRepository) List(ctx context.Context) ([]entity.Carrier, error) {
	var carriers []entity.Carrier
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Order("name ASC").Find(&carriers).Error
	return carriers, err
}
