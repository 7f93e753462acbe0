package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice represents an amount receivable from a customer. AmountPaid and
// AmountDue are maintained by the payment allocator, never written directly.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentNo      string             `gorm:"size:100;not null;index" json:"document_no"`
	CustomerID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName    string             `gorm:"size:255" json:"customer_name"`
	CustomerAddress string             `gorm:"type:text" json:"customer_address"`
	InvoiceDate     time.Time          `gorm:"type:date;not null" json:"invoice_date"`
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

	// Set when the invoice was created by converting another document
	SalesOrderID   *uuid.UUID `gorm:"type:uuid" json:"sales_order_id,omitempty"`
	DeliveryNoteID *uuid.UUID `gorm:"type:uuid" json:"delivery_note_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer      `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) GetID() uuid.UUID                   { return i.ID }
func (i *Invoice) GetDocumentNo() string              { return i.DocumentNo }
func (i *Invoice) GetStatus() string                  { return i.Status }
func (i *Invoice) GetDocumentType() enum.DocumentType { return enum.DocumentTypeInvoice }

// InvoiceItem is one billed line of an invoice
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
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

// BeforeCreate generates a UUID before creating a new invoice item
func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
