package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sequence issues gapless, human-readable document numbers per
// (company, document type). NextNumber only ever increases; a number,
// once issued, is never reused even if the document it named is deleted.
type Sequence struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_company_doctype,unique" json:"company_id"`
	DocumentType enum.DocumentType `gorm:"size:50;not null;index:idx_company_doctype,unique" json:"document_type"`
	Prefix       string            `gorm:"size:20;not null" json:"prefix"`
	NextNumber   int64             `gorm:"not null;default:1" json:"next_number"`
	Padding      int               `gorm:"not null;default:5" json:"padding"`
	IncludeDate  bool              `gorm:"default:false" json:"include_date"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new sequence
func (s *Sequence) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sequence model
func (Sequence) TableName() string {
	return "sequences"
}

// Format renders a counter value as a document number, e.g. INV-00042 or
// INV-20260829-00042 when IncludeDate is set.
func (s *Sequence) Format(counter int64, at time.Time) string {
	if s.IncludeDate {
		return fmt.Sprintf("%s-%s-%0*d", s.Prefix, at.Format("20060102"), s.Padding, counter)
	}
	return fmt.Sprintf("%s-%0*d", s.Prefix, s.Padding, counter)
}
