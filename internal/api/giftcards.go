package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Cache TTLs and request timestamps

	"gifty/internal/domain"   // Importing domain models
	"gifty/internal/giftcard" // Lifecycle service
	"gifty/internal/utils"    // Cache helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Fixed-precision currency amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// cacheTTL is how long read responses stay cached
const cacheTTL = 60 * time.Second

// Cache keys per entity
func cardKey(id string) string      { return "giftcard:" + id }
func ownerKey(ownerID string) string { return "giftcards:owner:" + ownerID }
func txKey(id string) string        { return "giftcard:" + id + ":transactions" }
func proofsKey(id string) string    { return "giftcard:" + id + ":zkproofs" }

// invalidateCard drops every cache entry a card mutation can stale
func invalidateCard(rdb *redis.Client, card *domain.GiftCard) {
	ctx := context.Background() // Context for Redis operations
	_ = utils.DeleteCache(ctx, rdb,
		cardKey(card.ID),      // Single-card cache
		ownerKey(card.OwnerID), // Owner list cache
		txKey(card.ID),        // Ledger cache
		statsKey,              // Aggregate counters
	)
}

// respondError maps service failures to HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, giftcard.ErrNotFound):
		// Unknown identifier
		c.JSON(http.StatusNotFound, gin.H{"error": "Gift card not found"})
	case errors.Is(err, giftcard.ErrInsufficientBalance):
		// Redemption amount exceeds balance
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, giftcard.ErrCardExpired):
		// Card expired before full redemption
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gift card expired"})
	case errors.Is(err, giftcard.ErrValidation):
		// Malformed or missing input
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// Persistence or unexpected failure
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// CreateGiftCardRequest is the typed creation payload
type CreateGiftCardRequest struct {
	OwnerID        string          `json:"ownerId" binding:"required"`              // Purchasing user
	RecipientEmail string          `json:"recipientEmail" binding:"required,email"` // Recipient email
	Title          string          `json:"title" binding:"required"`                // Card title
	Message        string          `json:"message"`                                 // Optional gift message
	Balance        decimal.Decimal `json:"balance" binding:"required"`              // Initial balance
	Category       string          `json:"category"`                                // Category tag
	ExpiresAt      time.Time       `json:"expiresAt" binding:"required"`            // Expiration timestamp
}

// CreateGiftCardHandler mints a gift card
func CreateGiftCardHandler(svc *giftcard.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGiftCardRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request with field errors
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gift card data", "details": err.Error()})
			return
		}
		// Run the creation lifecycle
		card, err := svc.Create(c.Request.Context(), giftcard.CreateParams{
			OwnerID:         req.OwnerID,        // Purchasing user
			RecipientEmail:  req.RecipientEmail, // Recipient email
			Title:           req.Title,          // Card title
			Message:         req.Message,        // Gift message
			OriginalBalance: req.Balance,        // Initial balance
			Category:        req.Category,       // Category tag
			ExpiresAt:       req.ExpiresAt,      // Expiration timestamp
		})
		if err != nil {
			respondError(c, err) // Map service failure
			return
		}
		invalidateCard(rdb, card)            // Drop stale cache entries
		c.JSON(http.StatusCreated, card)     // Return the created card
	}
}

// ListGiftCardsHandler returns the owner's cards, newest first
func ListGiftCardsHandler(svc *giftcard.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.Query("userId") // Owner scoping is mandatory
		if ownerID == "" {
			// If missing, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "User ID required"})
			return
		}
		ctx := context.Background() // Context for Redis operations
		var cached []domain.GiftCard
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, ownerKey(ownerID), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached list
			return
		}
		// Fetch from the service (applies the lazy expiry sweep)
		cards, err := svc.ListByOwner(ownerID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"owner_id": ownerID,     // Owner reference
				"error":    err.Error(), // Error message
			}).Error("Failed to list gift cards")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gift cards"})
			return
		}
		_ = utils.SetCache(ctx, rdb, ownerKey(ownerID), cards, cacheTTL) // Cache the list
		c.JSON(http.StatusOK, cards)                                    // Return the list
	}
}

// GetGiftCardHandler returns a single card or 404
func GetGiftCardHandler(svc *giftcard.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")         // Card identifier
		ctx := context.Background() // Context for Redis operations
		var cached domain.GiftCard
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cardKey(id), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached card
			return
		}
		// Fetch from the service (applies the lazy expiry check)
		card, err := svc.Get(id)
		if err != nil {
			respondError(c, err) // Map service failure
			return
		}
		_ = utils.SetCache(ctx, rdb, cardKey(id), card, cacheTTL) // Cache the card
		c.JSON(http.StatusOK, card)                               // Return the card
	}
}

// RedeemRequest is the typed redemption payload
type RedeemRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"` // Redemption amount
	MerchantID string          `json:"merchantId"`                // Optional merchant reference
}

// RedeemGiftCardHandler spends balance at a merchant POS
func RedeemGiftCardHandler(svc *giftcard.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RedeemRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Run the redemption lifecycle
		card, err := svc.Redeem(c.Request.Context(), c.Param("id"), req.Amount, req.MerchantID)
		if err != nil {
			respondError(c, err) // Map service failure
			return
		}
		invalidateCard(rdb, card)   // Drop stale cache entries
		c.JSON(http.StatusOK, card) // Return the updated card
	}
}

// ReloadRequest is the typed reload payload
type ReloadRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"` // Reload amount
}

// ReloadGiftCardHandler tops up a card's balance
func ReloadGiftCardHandler(svc *giftcard.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReloadRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Run the reload lifecycle
		card, err := svc.Reload(c.Request.Context(), c.Param("id"), req.Amount)
		if err != nil {
			respondError(c, err) // Map service failure
			return
		}
		invalidateCard(rdb, card)   // Drop stale cache entries
		c.JSON(http.StatusOK, card) // Return the updated card
	}
}

// ListTransactionsHandler returns a card's ledger entries, newest first
func ListTransactionsHandler(svc *giftcard.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")         // Card identifier
		ctx := context.Background() // Context for Redis operations
		var cached []domain.Transaction
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, txKey(id), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached ledger
			return
		}
		// Fetch from the service
		txs, err := svc.Transactions(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		_ = utils.SetCache(ctx, rdb, txKey(id), txs, cacheTTL) // Cache the ledger
		c.JSON(http.StatusOK, txs)                             // Return the ledger
	}
}

// GenerateZkProofHandler fabricates and stores a balance proof for a card
func GenerateZkProofHandler(svc *giftcard.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Card identifier
		// Run the proof generation lifecycle
		proof, err := svc.GenerateProof(c.Request.Context(), id)
		if err != nil {
			respondError(c, err) // Map service failure
			return
		}
		// Invalidate the proof history cache
		_ = utils.DeleteCache(context.Background(), rdb, proofsKey(id))
		c.JSON(http.StatusOK, proof) // Return the proof
	}
}

// ListZkProofsHandler returns a card's proof history, newest first
func ListZkProofsHandler(svc *giftcard.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")         // Card identifier
		ctx := context.Background() // Context for Redis operations
		var cached []domain.ZkProof
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, proofsKey(id), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached proofs
			return
		}
		// Fetch from the service
		proofs, err := svc.Proofs(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proofs"})
			return
		}
		_ = utils.SetCache(ctx, rdb, proofsKey(id), proofs, cacheTTL) // Cache the proofs
		c.JSON(http.StatusOK, proofs)                                 // Return the proofs
	}
}
