package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable item. CurrentStock is a materialized cache
// of the inventory transaction ledger, not the source of truth; the two are
// kept in sync inside the same transaction as every stock movement.
type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	TaxID          *uuid.UUID      `gorm:"type:uuid;index" json:"tax_id,omitempty"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	SKU            string          `gorm:"size:100;index" json:"sku"`
	Description    *string         `gorm:"type:text" json:"description,omitempty"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"selling_price"`
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"purchase_price"`
	TrackInventory bool            `gorm:"default:false" json:"track_inventory"`
	CurrentStock   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_stock"`
	StockAlertAt   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"stock_alert_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
	Tax     *Tax    `gorm:"foreignKey:TaxID" json:"tax,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductStockLocation tracks on-hand quantity per (product, location).
// Rows are created on first movement and updated with increments, never
// replaced.
type ProductStockLocation struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_product_location,unique" json:"product_id"`
	Location       string          `gorm:"size:100;not null;index:idx_product_location,unique" json:"location"`
	QuantityOnHand decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity_on_hand"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock location row
func (l *ProductStockLocation) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductStockLocation model
func (ProductStockLocation) TableName() string {
	return "product_stock_locations"
}
