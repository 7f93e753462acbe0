package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StatusHistory records one status transition of a document. Rows are
// append-only and never updated or deleted.
type StatusHistory struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentType enum.DocumentType `gorm:"size:50;not null;index:idx_status_history_doc" json:"document_type"`
	DocumentID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_status_history_doc" json:"document_id"`
	DocumentNo   string            `gorm:"size:100;not null" json:"document_no"`
	FromStatus   string            `gorm:"size:50;not null" json:"from_status"`
	ToStatus     string            `gorm:"size:50;not null" json:"to_status"`
	Reason       *string           `gorm:"size:255" json:"reason,omitempty"`
	ActorID      *uuid.UUID        `gorm:"type:uuid" json:"actor_id,omitempty"`
	ActorName    string            `gorm:"size:255" json:"actor_name"`
	CreatedAt    time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new history row
func (h *StatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StatusHistory model
func (StatusHistory) TableName() string {
	return "status_histories"
}
