package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // UUID primary keys
	"github.com/shopspring/decimal" // Fixed-precision currency amounts
	"gorm.io/gorm"                  // GORM ORM library
)

// Gift card status values
const (
	StatusActive        = "active"         // Card holds a spendable balance
	StatusPartiallyUsed = "partially_used" // Card was redeemed but still holds balance
	StatusRedeemed      = "redeemed"       // Balance fully spent
	StatusExpired       = "expired"        // Expiration timestamp passed before full redemption
)

// GiftCard Model
type GiftCard struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`                  // UUID primary key
	TokenID         string          `gorm:"unique;not null" json:"tokenId"`                // On-chain token identifier (mocked)
	OwnerID         string          `gorm:"size:36;not null;index" json:"ownerId"`         // Foreign key to User
	RecipientEmail  string          `gorm:"not null" json:"recipientEmail"`                // Recipient email address
	Title           string          `gorm:"not null" json:"title"`                         // Card title
	Message         string          `json:"message"`                                       // Optional gift message
	Balance         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"balance"`    // Current balance
	OriginalBalance decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"originalBalance"` // Balance at creation, immutable
	Category        string          `gorm:"not null;default:general" json:"category"`      // Free-form category tag
	Status          string          `gorm:"not null;default:active" json:"status"`         // active, partially_used, redeemed, expired
	TBAAddress      *string         `json:"tbaAddress"`                                    // Token Bound Account address (mocked)
	QRCode          *string         `json:"qrCode"`                                        // Signed QR claim payload
	ExpiresAt       time.Time       `gorm:"not null" json:"expiresAt"`                     // Expiration timestamp
	RedeemedAt      *time.Time      `json:"redeemedAt"`                                    // Set when fully redeemed
	CreatedAt       time.Time       `json:"createdAt"`                                     // Timestamp of creation
	UpdatedAt       time.Time       `json:"updatedAt"`                                     // Timestamp of last update
	Transactions    []Transaction   `gorm:"foreignKey:GiftCardID" json:"-"`                // One-to-many relationship with Transaction
	ZkProofs        []ZkProof       `gorm:"foreignKey:GiftCardID" json:"-"`                // One-to-many relationship with ZkProof
}

// BeforeCreate assigns a UUID primary key if none is set
func (g *GiftCard) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString() // Generate UUID
	}
	return nil
}

// IsExpired reports whether the card's expiration timestamp has passed
func (g *GiftCard) IsExpired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}
