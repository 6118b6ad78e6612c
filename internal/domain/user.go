package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// User Model
type User struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`    // UUID primary key
	Username      string     `gorm:"unique;not null" json:"username"` // Unique username
	Email         string     `gorm:"unique;not null" json:"email"`    // Unique email
	Password      string     `gorm:"not null" json:"-"`               // Hashed password, never serialized
	Name          string     `gorm:"not null" json:"name"`            // Display name
	Role          string     `gorm:"default:user" json:"role"`        // Role: user, merchant or admin
	WalletAddress *string    `json:"walletAddress"`                   // Optional linked wallet address
	CreatedAt     time.Time  `json:"createdAt"`                       // Timestamp of creation
	GiftCards     []GiftCard `gorm:"foreignKey:OwnerID" json:"-"`     // One-to-many relationship with GiftCard
	Merchants     []Merchant `gorm:"foreignKey:UserID" json:"-"`      // One-to-many relationship with Merchant
}

// BeforeCreate assigns a UUID primary key if none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString() // Generate UUID
	}
	return nil
}
