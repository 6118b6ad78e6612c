package store

import (
	"gifty/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Fixed-precision currency amounts
	"gorm.io/gorm"                  // GORM ORM library
)

// Store is the persistence layer over the five GIFTY tables: the gift card
// record store, the append-only transaction ledger and the supporting
// user/merchant/proof lookups. Not-found conditions surface as
// gorm.ErrRecordNotFound; callers translate them into API errors.
type Store struct {
	db *gorm.DB // Database handle, may be transaction-scoped
}

// New creates a Store over a database handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx returns a Store bound to an open transaction handle
func (s *Store) WithTx(tx *gorm.DB) *Store {
	return &Store{db: tx}
}

// DB exposes the underlying handle for transaction management
func (s *Store) DB() *gorm.DB {
	return s.db
}

// ---- Users ----

// GetUser fetches a user by ID
func (s *Store) GetUser(id string) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err // Not found or DB error
	}
	return &user, nil
}

// GetUserByUsername fetches a user by username
func (s *Store) GetUserByUsername(username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email
func (s *Store) GetUserByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user record
func (s *Store) CreateUser(user *domain.User) error {
	return s.db.Create(user).Error
}

// ---- Gift cards ----

// GetGiftCard fetches a gift card by ID
func (s *Store) GetGiftCard(id string) (*domain.GiftCard, error) {
	var card domain.GiftCard
	if err := s.db.First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// GetGiftCardByTokenID fetches a gift card by its token identifier
func (s *Store) GetGiftCardByTokenID(tokenID string) (*domain.GiftCard, error) {
	var card domain.GiftCard
	if err := s.db.First(&card, "token_id = ?", tokenID).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// ListGiftCardsByOwner returns an owner's gift cards, newest first
func (s *Store) ListGiftCardsByOwner(ownerID string) ([]domain.GiftCard, error) {
	var cards []domain.GiftCard
	err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&cards).Error
	return cards, err
}

// CreateGiftCard inserts a gift card record
func (s *Store) CreateGiftCard(card *domain.GiftCard) error {
	return s.db.Create(card).Error
}

// UpdateGiftCard applies a partial update by ID and returns the updated
// record, or gorm.ErrRecordNotFound when the card does not exist
func (s *Store) UpdateGiftCard(id string, updates map[string]any) (*domain.GiftCard, error) {
	res := s.db.Model(&domain.GiftCard{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error // DB error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound // No such card
	}
	return s.GetGiftCard(id) // Return the updated record
}

// ---- Merchants ----

// GetMerchant fetches a merchant by ID
func (s *Store) GetMerchant(id string) (*domain.Merchant, error) {
	var merchant domain.Merchant
	if err := s.db.First(&merchant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

// GetMerchantByUserID fetches a merchant by its backing user account
func (s *Store) GetMerchantByUserID(userID string) (*domain.Merchant, error) {
	var merchant domain.Merchant
	if err := s.db.First(&merchant, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

// CreateMerchant inserts a merchant record
func (s *Store) CreateMerchant(merchant *domain.Merchant) error {
	return s.db.Create(merchant).Error
}

// ListActiveMerchants returns all merchants accepting redemptions
func (s *Store) ListActiveMerchants() ([]domain.Merchant, error) {
	var merchants []domain.Merchant
	err := s.db.Where("is_active = ?", true).Find(&merchants).Error
	return merchants, err
}

// ---- Transaction ledger (append-only: insert and list only) ----

// CreateTransaction appends a ledger entry
func (s *Store) CreateTransaction(tx *domain.Transaction) error {
	return s.db.Create(tx).Error
}

// ListTransactionsByGiftCard returns a card's ledger entries, newest first
func (s *Store) ListTransactionsByGiftCard(giftCardID string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := s.db.Where("gift_card_id = ?", giftCardID).
		Order("created_at desc").
		Find(&txs).Error
	return txs, err
}

// ---- ZK proofs ----

// CreateZkProof inserts a proof record
func (s *Store) CreateZkProof(proof *domain.ZkProof) error {
	return s.db.Create(proof).Error
}

// ListZkProofsByGiftCard returns a card's proofs, newest first
func (s *Store) ListZkProofsByGiftCard(giftCardID string) ([]domain.ZkProof, error) {
	var proofs []domain.ZkProof
	err := s.db.Where("gift_card_id = ?", giftCardID).
		Order("created_at desc").
		Find(&proofs).Error
	return proofs, err
}

// ---- Aggregates (analytics) ----

// CountGiftCards returns the total number of issued cards
func (s *Store) CountGiftCards() (int64, error) {
	var count int64
	err := s.db.Model(&domain.GiftCard{}).Count(&count).Error
	return count, err
}

// SumGiftCardValue returns the total outstanding balance across all cards
func (s *Store) SumGiftCardValue() (decimal.Decimal, error) {
	var total decimal.NullDecimal // NULL when the table is empty
	row := s.db.Model(&domain.GiftCard{}).Select("SUM(balance)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// CountActiveMerchants returns the number of active merchants
func (s *Store) CountActiveMerchants() (int64, error) {
	var count int64
	err := s.db.Model(&domain.Merchant{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
