package domain

import (
	"time" // Timestamps

	"github.com/google/uuid"        // UUID primary keys
	"github.com/shopspring/decimal" // Fixed-precision currency amounts
	"gorm.io/datatypes"             // JSON column support
	"gorm.io/gorm"                  // GORM ORM library
)

// Transaction types
const (
	TxCreation   = "creation"   // Card minted with its initial balance
	TxRedemption = "redemption" // Balance spent at a merchant
	TxReload     = "reload"     // Balance topped up
	TxTransfer   = "transfer"   // Card ownership moved
)

// Transaction statuses
const (
	TxPending   = "pending"   // Awaiting settlement
	TxConfirmed = "confirmed" // Settled
	TxFailed    = "failed"    // Settlement failed
)

// Transaction Model, one append-only row per balance-affecting event
type Transaction struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`               // UUID primary key
	GiftCardID string          `gorm:"size:36;not null;index" json:"giftCardId"`   // Foreign key to GiftCard
	MerchantID *string         `gorm:"size:36" json:"merchantId"`                  // Optional foreign key to Merchant
	Type       string          `gorm:"not null" json:"type"`                       // creation, redemption, reload, transfer
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`  // Amount of the event
	TxHash     *string         `json:"txHash"`                                     // Settlement transaction hash (mocked)
	ZkProof    datatypes.JSON  `json:"zkProof"`                                    // Optional attached proof payload
	Status     string          `gorm:"not null;default:pending" json:"status"`     // pending, confirmed, failed
	CreatedAt  time.Time       `json:"createdAt"`                                  // Timestamp of creation
}

// BeforeCreate assigns a UUID primary key if none is set
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString() // Generate UUID
	}
	return nil
}
