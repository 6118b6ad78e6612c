package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Merchant Model
type Merchant struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`          // UUID primary key
	UserID        string    `gorm:"size:36;not null;index" json:"userId"`  // Foreign key to User
	BusinessName  string    `gorm:"not null" json:"businessName"`          // Registered business name
	Category      string    `gorm:"not null" json:"category"`              // Business category
	POSTerminalID *string   `json:"posTerminalId"`                         // Optional point-of-sale terminal identifier
	IsActive      bool      `gorm:"default:true" json:"isActive"`          // Whether the merchant accepts redemptions
	CreatedAt     time.Time `json:"createdAt"`                             // Timestamp of creation
}

// BeforeCreate assigns a UUID primary key if none is set
func (m *Merchant) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString() // Generate UUID
	}
	return nil
}
