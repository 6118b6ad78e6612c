package store

import (
	"testing"
	"time"

	"gifty/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore creates a Store over an isolated in-memory SQLite database
func setupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet during tests
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(
		&domain.User{},
		&domain.GiftCard{},
		&domain.Merchant{},
		&domain.Transaction{},
		&domain.ZkProof{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return New(db), db
}

// seedUser inserts a user fixture
func seedUser(t *testing.T, st *Store, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Name:     "Test User",
	}
	require.NoError(t, st.CreateUser(user))
	return user
}

// seedCard inserts a gift card fixture
func seedCard(t *testing.T, st *Store, ownerID, tokenID string, balance string) *domain.GiftCard {
	t.Helper()
	card := &domain.GiftCard{
		TokenID:         tokenID,
		OwnerID:         ownerID,
		RecipientEmail:  "r@example.com",
		Title:           "Card",
		Balance:         decimal.RequireFromString(balance),
		OriginalBalance: decimal.RequireFromString(balance),
		Category:        "general",
		Status:          domain.StatusActive,
		ExpiresAt:       time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, st.CreateGiftCard(card))
	return card
}

func TestUserLookups(t *testing.T) {
	st, _ := setupTestStore(t)
	user := seedUser(t, st, "alice")

	byID, err := st.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := st.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := st.GetUserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = st.GetUser("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGiftCardLookups(t *testing.T) {
	st, _ := setupTestStore(t)
	user := seedUser(t, st, "alice")
	card := seedCard(t, st, user.ID, "GFC-1", "50.00")

	byID, err := st.GetGiftCard(card.ID)
	require.NoError(t, err)
	assert.Equal(t, "GFC-1", byID.TokenID)
	assert.True(t, byID.Balance.Equal(decimal.RequireFromString("50.00")))

	byToken, err := st.GetGiftCardByTokenID("GFC-1")
	require.NoError(t, err)
	assert.Equal(t, card.ID, byToken.ID)

	_, err = st.GetGiftCard("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListGiftCardsByOwner_NewestFirst(t *testing.T) {
	st, _ := setupTestStore(t)
	user := seedUser(t, st, "alice")
	other := seedUser(t, st, "bob")
	first := seedCard(t, st, user.ID, "GFC-1", "10.00")
	second := seedCard(t, st, user.ID, "GFC-2", "20.00")
	seedCard(t, st, other.ID, "GFC-3", "30.00") // Different owner, excluded

	cards, err := st.ListGiftCardsByOwner(user.ID)

	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, second.ID, cards[0].ID)
	assert.Equal(t, first.ID, cards[1].ID)
}

func TestUpdateGiftCard(t *testing.T) {
	st, _ := setupTestStore(t)
	user := seedUser(t, st, "alice")
	card := seedCard(t, st, user.ID, "GFC-1", "50.00")

	updated, err := st.UpdateGiftCard(card.ID, map[string]any{
		"status": domain.StatusPartiallyUsed,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartiallyUsed, updated.Status)
}

func TestUpdateGiftCard_NotFound(t *testing.T) {
	st, _ := setupTestStore(t)

	updated, err := st.UpdateGiftCard("missing", map[string]any{
		"status": domain.StatusExpired,
	})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTransactionLedger_InsertAndListNewestFirst(t *testing.T) {
	st, _ := setupTestStore(t)
	user := seedUser(t, st, "alice")
	card := seedCard(t, st, user.ID, "GFC-1", "50.00")

	creation := &domain.Transaction{
		GiftCardID: card.ID,
		Type:       domain.TxCreation,
		Amount:     decimal.RequireFromString("50.00"),
		Status:     domain.TxConfirmed,
	}
	require.NoError(t, st.CreateTransaction(creation))
	redemption := &domain.Transaction{
		GiftCardID: card.ID,
		Type:       domain.TxRedemption,
		Amount:     decimal.RequireFromString("20.00"),
		Status:     domain.TxConfirmed,
	}
	require.NoError(t, st.CreateTransaction(redemption))

	txs, err := st.ListTransactionsByGiftCard(card.ID)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, redemption.ID, txs[0].ID)
	assert.Equal(t, creation.ID, txs[1].ID)
}

func TestMerchants(t *testing.T) {
	st, _ := setupTestStore(t)
	user := seedUser(t, st, "alice")

	active := &domain.Merchant{UserID: user.ID, BusinessName: "Open Shop", Category: "retail", IsActive: true}
	require.NoError(t, st.CreateMerchant(active))
	inactive := &domain.Merchant{UserID: user.ID, BusinessName: "Closed Shop", Category: "retail", IsActive: false}
	require.NoError(t, st.CreateMerchant(inactive))

	merchants, err := st.ListActiveMerchants()
	require.NoError(t, err)
	require.Len(t, merchants, 1)
	assert.Equal(t, "Open Shop", merchants[0].BusinessName)

	byUser, err := st.GetMerchantByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUser.UserID)
}

func TestAggregates(t *testing.T) {
	st, _ := setupTestStore(t)
	user := seedUser(t, st, "alice")
	seedCard(t, st, user.ID, "GFC-1", "10.00")
	seedCard(t, st, user.ID, "GFC-2", "25.50")
	require.NoError(t, st.CreateMerchant(&domain.Merchant{
		UserID: user.ID, BusinessName: "Shop", Category: "retail", IsActive: true,
	}))

	count, err := st.CountGiftCards()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err := st.SumGiftCardValue()
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("35.50")), "got %s", total)

	merchants, err := st.CountActiveMerchants()
	require.NoError(t, err)
	assert.Equal(t, int64(1), merchants)
}

func TestAggregates_EmptyTables(t *testing.T) {
	st, _ := setupTestStore(t)

	total, err := st.SumGiftCardValue()
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
