package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill represents an amount payable to a vendor, the purchase-side mirror
// of an invoice.
type Bill struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentNo      string             `gorm:"size:100;not null;index" json:"document_no"`
	VendorID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"vendor_id"`
	VendorName      string             `gorm:"size:255" json:"vendor_name"`
	VendorAddress   string             `gorm:"type:text" json:"vendor_address"`
	VendorBillNo    *string            `gorm:"size:100" json:"vendor_bill_no,omitempty"`
	BillDate        time.Time          `gorm:"type:date;not null" json:"bill_date"`
	DueDate         *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	Status          string             `gorm:"size:50;default:'draft';index" json:"status"`
	PaymentStatus   enum.PaymentStatus `gorm:"size:50;default:'unpaid';index" json:"payment_status"`
	Subtotal        decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount       decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	DiscountAmount  decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	ShippingCharges decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"shipping_charges"`
	GrandTotal      decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	AmountPaid      decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"amount_paid"`
	AmountDue       decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"amount_due"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Vendor Vendor     `gorm:"foreignKey:VendorID" json:"-"`
	Items  []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

func (b *Bill) GetID() uuid.UUID                   { return b.ID }
func (b *Bill) GetDocumentNo() string              { return b.DocumentNo }
func (b *Bill) GetStatus() string                  { return b.Status }
func (b *Bill) GetDocumentType() enum.DocumentType { return enum.DocumentTypeBill }

// BillItem is one line of a vendor bill
type BillItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"bill_id"`
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

// BeforeCreate generates a UUID before creating a new bill item
func (i *BillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
