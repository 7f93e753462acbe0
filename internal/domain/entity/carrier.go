package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Carrier represents a shipping carrier used on delivery notes
type Carrier struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Phone       *string        `gorm:"size:50" json:"phone,omitempty"`
	Website     *string        `gorm:"size:255" json:"website,omitempty"`
	TrackingURL *string        `gorm:"size:255" json:"tracking_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new carrier
func (c *Carrier) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Carrier model
func (Carrier) TableName() string {
	return "carriers"
}
