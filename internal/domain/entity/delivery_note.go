package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeliveryNote represents a shipment of sales order lines to a customer.
// Shipping it deducts tracked products from inventory; invoicing it is
// one-way, guarded by the Invoiced flag.
type DeliveryNote struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentNo      string     `gorm:"size:100;not null;index" json:"document_no"`
	SalesOrderID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"sales_order_id"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName    string     `gorm:"size:255" json:"customer_name"`
	CustomerAddress string     `gorm:"type:text" json:"customer_address"`
	CarrierID       *uuid.UUID `gorm:"type:uuid" json:"carrier_id,omitempty"`
	TrackingNo      *string    `gorm:"size:255" json:"tracking_no,omitempty"`
	DeliveryDate    time.Time  `gorm:"type:date;not null" json:"delivery_date"`
	Status          string     `gorm:"size:50;default:'draft';index" json:"status"`
	Notes           *string    `gorm:"type:text" json:"notes,omitempty"`

	Invoiced  bool       `gorm:"default:false" json:"invoiced"`
	InvoiceID *uuid.UUID `gorm:"type:uuid" json:"invoice_id,omitempty"`

	// Set once inventory has been deducted for this shipment
	InventoryDeducted bool `gorm:"default:false" json:"inventory_deducted"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer   Customer           `gorm:"foreignKey:CustomerID" json:"-"`
	SalesOrder SalesOrder         `gorm:"foreignKey:SalesOrderID" json:"-"`
	Carrier    *Carrier           `gorm:"foreignKey:CarrierID" json:"carrier,omitempty"`
	Items      []DeliveryNoteItem `gorm:"foreignKey:DeliveryNoteID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new delivery note
func (d *DeliveryNote) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DeliveryNote model
func (DeliveryNote) TableName() string {
	return "delivery_notes"
}

func (d *DeliveryNote) GetID() uuid.UUID                   { return d.ID }
func (d *DeliveryNote) GetDocumentNo() string              { return d.DocumentNo }
func (d *DeliveryNote) GetStatus() string                  { return d.Status }
func (d *DeliveryNote) GetDocumentType() enum.DocumentType { return enum.DocumentTypeDeliveryNote }

// DeliveryNoteItem is one shipped line, linked back to the sales order line
// it fulfills so invoicing can recover the committed rate and tax.
type DeliveryNoteItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DeliveryNoteID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"delivery_note_id"`
	SalesOrderItemID uuid.UUID       `gorm:"type:uuid;not null;index" json:"sales_order_item_id"`
	LineNo           int             `gorm:"not null" json:"line_no"`
	ProductID        *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description      string          `gorm:"size:500" json:"description"`
	ShippedQty       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"shipped_qty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new delivery note item
func (i *DeliveryNoteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DeliveryNoteItem model
func (DeliveryNoteItem) TableName() string {
	return "delivery_note_items"
}
