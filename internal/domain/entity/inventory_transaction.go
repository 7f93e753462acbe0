package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryTransaction is one movement in the append-only stock ledger.
// Quantity is signed: positive for inbound movements, negative for outbound.
// BalanceBefore and BalanceAfter capture the product's total stock at the
// moment the movement was recorded, so the ledger can be replayed and
// audited without recomputing.
type InventoryTransaction struct {
	ID            uuid.UUID                     `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID     uuid.UUID                     `gorm:"type:uuid;not null;index" json:"company_id"`
	ProductID     uuid.UUID                     `gorm:"type:uuid;not null;index" json:"product_id"`
	Type          enum.InventoryTransactionType `gorm:"size:50;not null" json:"type"`
	Quantity      decimal.Decimal               `gorm:"type:decimal(20,4);not null" json:"quantity"`
	BalanceBefore decimal.Decimal               `gorm:"type:decimal(20,4);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal               `gorm:"type:decimal(20,4);not null" json:"balance_after"`
	Location      string                        `gorm:"size:100;not null;default:'default'" json:"location"`
	ReferenceType *string                       `gorm:"size:50" json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID                    `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	Reason        *string                       `gorm:"size:255" json:"reason,omitempty"`
	ActorID       *uuid.UUID                    `gorm:"type:uuid" json:"actor_id,omitempty"`
	ActorName     string                        `gorm:"size:255" json:"actor_name"`
	CreatedAt     time.Time                     `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *InventoryTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryTransaction model
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}
