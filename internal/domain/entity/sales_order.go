package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesOrder represents a confirmed customer order. Fulfillment is tracked
// per line: DeliveredQty accumulates across delivery notes until every line
// is fully delivered.
type SalesOrder struct {
	ID                uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentNo        string                 `gorm:"size:100;not null;index" json:"document_no"`
	CustomerID        uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName      string                 `gorm:"size:255" json:"customer_name"`
	CustomerAddress   string                 `gorm:"type:text" json:"customer_address"`
	OrderDate         time.Time              `gorm:"type:date;not null" json:"order_date"`
	ExpectedDate      *time.Time             `gorm:"type:date" json:"expected_date,omitempty"`
	Status            string                 `gorm:"size:50;default:'draft';index" json:"status"`
	FulfillmentStatus enum.FulfillmentStatus `gorm:"size:50;default:'unfulfilled'" json:"fulfillment_status"`
	Subtotal          decimal.Decimal        `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount         decimal.Decimal        `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	DiscountAmount    decimal.Decimal        `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	ShippingCharges   decimal.Decimal        `gorm:"type:decimal(20,4);default:0" json:"shipping_charges"`
	GrandTotal        decimal.Decimal        `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	Notes             *string                `gorm:"type:text" json:"notes,omitempty"`

	// Set when the order was created by converting an estimate
	EstimateID *uuid.UUID `gorm:"type:uuid" json:"estimate_id,omitempty"`

	// One-way: set when the order has been invoiced in full
	Invoiced  bool       `gorm:"default:false" json:"invoiced"`
	InvoiceID *uuid.UUID `gorm:"type:uuid" json:"invoice_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer         `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []SalesOrderItem `gorm:"foreignKey:SalesOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sales order
func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}

func (o *SalesOrder) GetID() uuid.UUID                   { return o.ID }
func (o *SalesOrder) GetDocumentNo() string              { return o.DocumentNo }
func (o *SalesOrder) GetStatus() string                  { return o.Status }
func (o *SalesOrder) GetDocumentType() enum.DocumentType { return enum.DocumentTypeSalesOrder }

// SalesOrderItem is one ordered line of a sales order
type SalesOrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SalesOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"sales_order_id"`
	LineNo       int             `gorm:"not null" json:"line_no"`
	ProductID    *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description  string          `gorm:"size:500" json:"description"`
	OrderedQty   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"ordered_qty"`
	DeliveredQty decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"delivered_qty"`
	Rate         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	Discount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(8,4);default:0" json:"tax_rate"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sales order item
func (i *SalesOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrderItem model
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// PendingQty returns the quantity still awaiting delivery
func (i *SalesOrderItem) PendingQty() decimal.Decimal {
	return i.OrderedQty.Sub(i.DeliveredQty)
}
