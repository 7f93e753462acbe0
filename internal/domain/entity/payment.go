package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents money received from a customer or paid to a vendor.
// UnallocatedAmount starts equal to Amount and decreases as allocations
// consume it; a payment that has touched any document balance can no longer
// be deleted.
type Payment struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentNo        string           `gorm:"size:100;not null;index" json:"document_no"`
	Kind              enum.PaymentKind `gorm:"size:20;not null;index" json:"kind"`
	CustomerID        *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	VendorID          *uuid.UUID       `gorm:"type:uuid;index" json:"vendor_id,omitempty"`
	PaymentDate       time.Time        `gorm:"type:date;not null" json:"payment_date"`
	Amount            decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"amount"`
	UnallocatedAmount decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"unallocated_amount"`
	Method            string           `gorm:"size:50" json:"method"`
	Reference         *string          `gorm:"size:255" json:"reference,omitempty"`
	Notes             *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer    *Customer           `gorm:"foreignKey:CustomerID" json:"-"`
	Vendor      *Vendor             `gorm:"foreignKey:VendorID" json:"-"`
	Allocations []PaymentAllocation `gorm:"foreignKey:PaymentID" json:"allocations,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// PaymentAllocation applies part of a payment against one invoice or bill.
// Rows are append-only.
type PaymentAllocation struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"payment_id"`
	TargetType enum.DocumentType `gorm:"size:50;not null" json:"target_type"` // invoice or bill
	TargetID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"target_id"`
	Amount     decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"amount"`
	CreatedAt  time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new allocation
func (a *PaymentAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentAllocation model
func (PaymentAllocation) TableName() string {
	return "payment_allocations"
}
