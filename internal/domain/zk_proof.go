package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/datatypes"      // JSON column support
	"gorm.io/gorm"           // GORM ORM library
)

// ProofData is the fabricated zero-knowledge balance proof payload.
// No real computation backs it; the generator always marks it verified.
type ProofData struct {
	BalanceProof string `json:"balance_proof"` // Opaque proof string
	Commitment   string `json:"commitment"`    // Balance commitment (hex)
	Nullifier    string `json:"nullifier"`     // Spend nullifier (hex)
	Verified     bool   `json:"verified"`      // Always true for the mock generator
	Timestamp    int64  `json:"timestamp"`     // Generation time in milliseconds
}

// ZkProof Model, created on demand and never mutated
type ZkProof struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`             // UUID primary key
	GiftCardID string         `gorm:"size:36;not null;index" json:"giftCardId"` // Foreign key to GiftCard
	ProofData  datatypes.JSON `gorm:"not null" json:"proofData"`                // Structured proof payload
	Verified   bool           `gorm:"default:false" json:"verified"`            // Verification flag
	CreatedAt  time.Time      `json:"createdAt"`                                // Timestamp of creation
}

// BeforeCreate assigns a UUID primary key if none is set
func (z *ZkProof) BeforeCreate(tx *gorm.DB) error {
	if z.ID == "" {
		z.ID = uuid.NewString() // Generate UUID
	}
	return nil
}
