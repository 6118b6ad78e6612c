package giftcard

import (
	"context"       // Context for settlement calls
	"encoding/json" // Marshaling proof payloads
	"errors"        // Error inspection
	"fmt"           // Error wrapping
	"time"          // Timestamps and expiry checks

	"gifty/internal/domain"     // Domain models
	"gifty/internal/settlement" // Settlement port
	"gifty/internal/store"      // Persistence layer
	"gifty/internal/utils"      // Token and QR generation
	"gifty/internal/zkproof"    // Proof port

	"github.com/shopspring/decimal" // Fixed-precision currency amounts
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// Service implements the gift card balance lifecycle: creation, redemption,
// reload, proof generation and lazy expiry. Every balance mutation and its
// ledger entry commit in one database transaction, and redemptions decrement
// through a conditional update so concurrent requests cannot double-spend.
type Service struct {
	db         *gorm.DB        // Database handle for transactions
	store      *store.Store    // Persistence layer
	settlement settlement.Port // Simulated on-chain settlement
	proofs     zkproof.Port    // Simulated proof generation
	qrSecret   string          // Secret for signing QR claims
}

// NewService wires the lifecycle service
func NewService(db *gorm.DB, settlementPort settlement.Port, proofPort zkproof.Port, qrSecret string) *Service {
	return &Service{
		db:         db,                // Database handle
		store:      store.New(db),     // Persistence layer over the same handle
		settlement: settlementPort,    // Settlement port
		proofs:     proofPort,         // Proof port
		qrSecret:   qrSecret,          // QR claim signing secret
	}
}

// CreateParams are the validated inputs for minting a gift card
type CreateParams struct {
	OwnerID         string          // Purchasing user
	RecipientEmail  string          // Recipient email address
	Title           string          // Card title
	Message         string          // Optional gift message
	OriginalBalance decimal.Decimal // Initial balance, must be positive
	Category        string          // Category tag, defaults to general
	ExpiresAt       time.Time       // Expiration timestamp
}

// Create mints a gift card: validates the inputs, generates the token
// identifier, custody address and signed QR claim, runs the simulated
// settlement, then inserts the card and its creation ledger entry atomically.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.GiftCard, error) {
	// Validate required fields
	if p.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	}
	if p.RecipientEmail == "" {
		return nil, fmt.Errorf("%w: recipient email is required", ErrValidation)
	}
	if p.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !p.OriginalBalance.IsPositive() {
		return nil, fmt.Errorf("%w: balance must be a positive amount", ErrValidation)
	}
	if p.ExpiresAt.IsZero() {
		return nil, fmt.Errorf("%w: expiration timestamp is required", ErrValidation)
	}
	// The owner must exist, otherwise the insert would fail on the foreign key
	if _, err := s.store.GetUser(p.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown owner", ErrValidation)
		}
		return nil, err
	}
	// Default category
	if p.Category == "" {
		p.Category = "general"
	}
	// Generate card identity
	tokenID := utils.GenerateTokenID()              // Unique token identifier
	tbaAddress := utils.GenerateTBAAddress(tokenID) // Derived custody account address
	qrCode, err := utils.GenerateQRClaim(tokenID, tbaAddress, p.ExpiresAt, s.qrSecret)
	if err != nil {
		return nil, err // QR claim signing failed
	}
	// Simulated on-chain mint
	result, err := s.settlement.Submit(ctx, settlement.OpCreateGiftCard, settlement.Payload{
		TokenID:   tokenID,           // Token identifier
		Amount:    p.OriginalBalance, // Initial balance
		Recipient: p.RecipientEmail,  // Recipient email
	})
	if err != nil {
		return nil, err // Settlement failed
	}
	// Build the card record
	amount := p.OriginalBalance.Round(2) // Currency precision
	card := &domain.GiftCard{
		TokenID:         tokenID,              // Token identifier
		OwnerID:         p.OwnerID,            // Owner reference
		RecipientEmail:  p.RecipientEmail,     // Recipient email
		Title:           p.Title,              // Card title
		Message:         p.Message,            // Gift message
		Balance:         amount,               // Balance equals the original at creation
		OriginalBalance: amount,               // Immutable original balance
		Category:        p.Category,           // Category tag
		Status:          domain.StatusActive,  // New cards start active
		TBAAddress:      &tbaAddress,          // Custody account address
		QRCode:          &qrCode,              // Signed QR claim
		ExpiresAt:       p.ExpiresAt,          // Expiration timestamp
	}
	// Insert the card and its creation ledger entry atomically
	err = s.db.Transaction(func(tx *gorm.DB) error {
		st := s.store.WithTx(tx) // Transaction-scoped store
		if err := st.CreateGiftCard(card); err != nil {
			return err // Rollback on insert failure
		}
		entry := &domain.Transaction{
			GiftCardID: card.ID,            // Parent card
			Type:       domain.TxCreation,  // Creation event
			Amount:     amount,             // Initial balance
			TxHash:     &result.TxHash,     // Settlement hash
			Status:     domain.TxConfirmed, // Mock settlement always confirms
		}
		return st.CreateTransaction(entry) // Rollback on ledger failure
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"owner_id": p.OwnerID,   // Owner reference
			"token_id": tokenID,     // Token identifier
			"error":    err.Error(), // Error message
		}).Error("Gift card creation failed")
		return nil, err
	}
	// Log the creation event
	logrus.WithFields(logrus.Fields{
		"owner_id": p.OwnerID,                // Owner reference
		"token_id": tokenID,                  // Token identifier
		"amount":   amount.StringFixed(2),    // Initial balance
		"type":     domain.TxCreation,        // Event type
		"tx_hash":  result.TxHash,            // Settlement hash
	}).Info("Gift card created")
	return card, nil
}

// Redeem spends balance at a merchant. The decrement is a conditional update
// guarded by the current balance, so two concurrent redemptions cannot both
// spend the same funds: the loser of the race sees ErrInsufficientBalance.
func (s *Service) Redeem(ctx context.Context, cardID string, amount decimal.Decimal, merchantID string) (*domain.GiftCard, error) {
	// Validate the amount
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be a positive amount", ErrValidation)
	}
	amount = amount.Round(2) // Currency precision
	// Fetch the card
	card, err := s.Get(cardID)
	if err != nil {
		return nil, err // Not found or DB error
	}
	// A card past its expiration cannot be redeemed; Get already persisted the flip
	if card.Status == domain.StatusExpired {
		return nil, ErrCardExpired
	}
	// Fast-path balance check; the conditional update below still guards races
	if amount.GreaterThan(card.Balance) {
		return nil, ErrInsufficientBalance
	}
	// The merchant, when given, must exist
	var merchantRef *string
	if merchantID != "" {
		if _, err := s.store.GetMerchant(merchantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown merchant", ErrValidation)
			}
			return nil, err
		}
		merchantRef = &merchantID // Ledger reference
	}
	// Simulated on-chain redemption
	result, err := s.settlement.Submit(ctx, settlement.OpRedeemGiftCard, settlement.Payload{
		TokenID:    card.TokenID, // Token identifier
		Amount:     amount,       // Redemption amount
		MerchantID: merchantID,   // Merchant reference
	})
	if err != nil {
		return nil, err // Settlement failed
	}
	// Decrement the balance, update the status and append the ledger entry atomically
	var updated *domain.GiftCard
	err = s.db.Transaction(func(tx *gorm.DB) error {
		st := s.store.WithTx(tx) // Transaction-scoped store
		// Conditional decrement: fails when a concurrent redemption got there first
		res := tx.Model(&domain.GiftCard{}).
			Where("id = ? AND balance >= ?", cardID, amount).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance - ?", amount), // In-database arithmetic
				"updated_at": time.Now(),                       // Touch the record
			})
		if res.Error != nil {
			return res.Error // DB error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance // Lost the race or stale fast-path read
		}
		// Re-read the post-decrement balance to derive the status
		fresh, err := st.GetGiftCard(cardID)
		if err != nil {
			return err
		}
		updates := map[string]any{"status": domain.StatusPartiallyUsed} // Default after a partial spend
		if fresh.Balance.IsZero() {
			updates["status"] = domain.StatusRedeemed // Fully spent
			updates["redeemed_at"] = time.Now()       // Redemption timestamp only when exhausted
		}
		if updated, err = st.UpdateGiftCard(cardID, updates); err != nil {
			return err // Rollback on status update failure
		}
		entry := &domain.Transaction{
			GiftCardID: cardID,              // Parent card
			MerchantID: merchantRef,         // Merchant reference
			Type:       domain.TxRedemption, // Redemption event
			Amount:     amount,              // Redeemed amount
			TxHash:     &result.TxHash,      // Settlement hash
			Status:     domain.TxConfirmed,  // Mock settlement always confirms
		}
		return st.CreateTransaction(entry) // Rollback on ledger failure
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) {
			logrus.WithFields(logrus.Fields{
				"card_id": cardID,      // Card reference
				"amount":  amount,      // Redemption amount
				"error":   err.Error(), // Error message
			}).Error("Redemption failed")
		}
		return nil, err
	}
	// Log the redemption event
	logrus.WithFields(logrus.Fields{
		"card_id":     cardID,                 // Card reference
		"token_id":    card.TokenID,           // Token identifier
		"amount":      amount.StringFixed(2),  // Redeemed amount
		"merchant_id": merchantID,             // Merchant reference
		"status":      updated.Status,         // Resulting status
		"type":        domain.TxRedemption,    // Event type
	}).Info("Gift card redeemed")
	return updated, nil
}

// Reload tops up a card's balance and resets its status to active, which also
// revives a fully redeemed or expired card. Reloads are not capped at the
// original balance.
func (s *Service) Reload(ctx context.Context, cardID string, amount decimal.Decimal) (*domain.GiftCard, error) {
	// Validate the amount
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be a positive amount", ErrValidation)
	}
	amount = amount.Round(2) // Currency precision
	// Fetch the card
	card, err := s.store.GetGiftCard(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Simulated on-chain reload
	result, err := s.settlement.Submit(ctx, settlement.OpReloadGiftCard, settlement.Payload{
		TokenID: card.TokenID, // Token identifier
		Amount:  amount,       // Reload amount
	})
	if err != nil {
		return nil, err // Settlement failed
	}
	// Increment the balance and append the ledger entry atomically
	var updated *domain.GiftCard
	err = s.db.Transaction(func(tx *gorm.DB) error {
		st := s.store.WithTx(tx) // Transaction-scoped store
		if updated, err = st.UpdateGiftCard(cardID, map[string]any{
			"balance":    gorm.Expr("balance + ?", amount), // In-database arithmetic
			"status":     domain.StatusActive,              // Reload reactivates the card
			"updated_at": time.Now(),                       // Touch the record
		}); err != nil {
			return err // Rollback on update failure
		}
		entry := &domain.Transaction{
			GiftCardID: cardID,             // Parent card
			Type:       domain.TxReload,    // Reload event
			Amount:     amount,             // Reloaded amount
			TxHash:     &result.TxHash,     // Settlement hash
			Status:     domain.TxConfirmed, // Mock settlement always confirms
		}
		return st.CreateTransaction(entry) // Rollback on ledger failure
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"card_id": cardID,      // Card reference
			"amount":  amount,      // Reload amount
			"error":   err.Error(), // Error message
		}).Error("Reload failed")
		return nil, err
	}
	// Log the reload event
	logrus.WithFields(logrus.Fields{
		"card_id":  cardID,                // Card reference
		"token_id": card.TokenID,          // Token identifier
		"amount":   amount.StringFixed(2), // Reloaded amount
		"type":     domain.TxReload,       // Event type
	}).Info("Gift card reloaded")
	return updated, nil
}

// GenerateProof fabricates a zero-knowledge balance proof for a card and
// stores it marked verified
func (s *Service) GenerateProof(ctx context.Context, cardID string) (*domain.ZkProof, error) {
	// Fetch the card
	card, err := s.store.GetGiftCard(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Fabricate the proof payload
	data, err := s.proofs.Generate(ctx, card.TokenID, card.Balance)
	if err != nil {
		return nil, err // Generation failed
	}
	raw, err := json.Marshal(data) // Store the payload as JSON
	if err != nil {
		return nil, err
	}
	proof := &domain.ZkProof{
		GiftCardID: cardID,        // Parent card
		ProofData:  raw,           // Structured proof payload
		Verified:   data.Verified, // Always true for the mock generator
	}
	if err := s.store.CreateZkProof(proof); err != nil {
		return nil, err // Insert failed
	}
	// Log the proof generation
	logrus.WithFields(logrus.Fields{
		"card_id":  cardID,       // Card reference
		"token_id": card.TokenID, // Token identifier
	}).Info("ZK proof generated")
	return proof, nil
}

// Get fetches a card by ID, flipping it to expired when its expiration
// timestamp has passed. Expiry is enforced lazily on read and on redemption;
// no background sweep exists.
func (s *Service) Get(cardID string) (*domain.GiftCard, error) {
	card, err := s.store.GetGiftCard(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.expireIfDue(card)
}

// ListByOwner returns an owner's cards, newest first, after flipping any
// overdue ones to expired
func (s *Service) ListByOwner(ownerID string) ([]domain.GiftCard, error) {
	// Batch-flip overdue cards before listing
	err := s.db.Model(&domain.GiftCard{}).
		Where("owner_id = ? AND status IN ? AND expires_at < ?",
			ownerID, []string{domain.StatusActive, domain.StatusPartiallyUsed}, time.Now()).
		Updates(map[string]any{"status": domain.StatusExpired, "updated_at": time.Now()}).Error
	if err != nil {
		return nil, err
	}
	return s.store.ListGiftCardsByOwner(ownerID)
}

// Transactions returns a card's ledger entries, newest first
func (s *Service) Transactions(cardID string) ([]domain.Transaction, error) {
	return s.store.ListTransactionsByGiftCard(cardID)
}

// Proofs returns a card's generated proofs, newest first
func (s *Service) Proofs(cardID string) ([]domain.ZkProof, error) {
	return s.store.ListZkProofsByGiftCard(cardID)
}

// expireIfDue persists the expired status for a spendable card whose
// expiration timestamp has passed
func (s *Service) expireIfDue(card *domain.GiftCard) (*domain.GiftCard, error) {
	spendable := card.Status == domain.StatusActive || card.Status == domain.StatusPartiallyUsed
	if !spendable || !card.IsExpired(time.Now()) {
		return card, nil // Nothing to do
	}
	updated, err := s.store.UpdateGiftCard(card.ID, map[string]any{
		"status":     domain.StatusExpired, // Expired before full redemption
		"updated_at": time.Now(),           // Touch the record
	})
	if err != nil {
		return nil, err
	}
	// Log the lazy expiry
	logrus.WithFields(logrus.Fields{
		"card_id":  card.ID,      // Card reference
		"token_id": card.TokenID, // Token identifier
	}).Info("Gift card expired")
	return updated, nil
}
