package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estimate represents a price quote offered to a customer. Once converted
// to a sales order it is frozen; the conversion flag is one-way.
type Estimate struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentNo      string          `gorm:"size:100;not null;index" json:"document_no"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName    string          `gorm:"size:255" json:"customer_name"`
	CustomerAddress string          `gorm:"type:text" json:"customer_address"`
	EstimateDate    time.Time       `gorm:"type:date;not null" json:"estimate_date"`
	ExpiryDate      *time.Time      `gorm:"type:date" json:"expiry_date,omitempty"`
	Status          string          `gorm:"size:50;default:'draft';index" json:"status"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	ShippingCharges decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"shipping_charges"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	Notes           *string         `gorm:"type:text" json:"notes,omitempty"`

	ConvertedToSalesOrder bool       `gorm:"default:false" json:"converted_to_sales_order"`
	SalesOrderID          *uuid.UUID `gorm:"type:uuid" json:"sales_order_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer       `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []EstimateItem `gorm:"foreignKey:EstimateID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new estimate
func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Estimate model
func (Estimate) TableName() string {
	return "estimates"
}

func (e *Estimate) GetID() uuid.UUID                   { return e.ID }
func (e *Estimate) GetDocumentNo() string              { return e.DocumentNo }
func (e *Estimate) GetStatus() string                  { return e.Status }
func (e *Estimate) GetDocumentType() enum.DocumentType { return enum.DocumentTypeEstimate }

// EstimateItem is one ordered line of an estimate. Lines have no identity
// outside their header: updates replace the whole collection.
type EstimateItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EstimateID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"estimate_id"`
	LineNo      int             `gorm:"not null" json:"line_no"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description string          `gorm:"size:500" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	Discount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(8,4);default:0" json:"tax_rate"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new estimate item
func (i *EstimateItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EstimateItem model
func (EstimateItem) TableName() string {
	return "estimate_items"
}
