package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents a recorded business expense. Unlike the flowing
// documents it has no lifecycle; it is created, optionally edited, and
// soft-deleted.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentNo  string          `gorm:"size:100;not null;index" json:"document_no"`
	VendorID    *uuid.UUID      `gorm:"type:uuid;index" json:"vendor_id,omitempty"`
	VendorName  string          `gorm:"size:255" json:"vendor_name"`
	Category    string          `gorm:"size:100" json:"category"`
	ExpenseDate time.Time       `gorm:"type:date;not null" json:"expense_date"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	GrandTotal  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	Reference   *string         `gorm:"size:255" json:"reference,omitempty"`
	Notes       *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Vendor *Vendor       `gorm:"foreignKey:VendorID" json:"-"`
	Items  []ExpenseItem `gorm:"foreignKey:ExpenseID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

// ExpenseItem is one line of an expense
type ExpenseItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ExpenseID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"expense_id"`
	LineNo      int             `gorm:"not null" json:"line_no"`
	Description string          `gorm:"size:500" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(8,4);default:0" json:"tax_rate"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new expense item
func (i *ExpenseItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpenseItem model
func (ExpenseItem) TableName() string {
	return "expense_items"
}
