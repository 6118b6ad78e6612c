package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"gifty/internal/domain" // Importing domain models
	"gifty/internal/store"  // Persistence layer
	"gifty/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// merchantsKey caches the active merchant list
const merchantsKey = "merchants:active"

// RegisterMerchantRequest is the typed merchant registration payload
type RegisterMerchantRequest struct {
	UserID        string `json:"userId" binding:"required"`       // Backing user account
	BusinessName  string `json:"businessName" binding:"required"` // Registered business name
	Category      string `json:"category" binding:"required"`     // Business category
	POSTerminalID string `json:"posTerminalId"`                   // Optional POS terminal identifier
}

// RegisterMerchantHandler registers a merchant for an existing user
func RegisterMerchantHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterMerchantRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid merchant data", "details": err.Error()})
			return
		}
		// The backing user must exist
		if _, err := st.GetUser(req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		merchant := domain.Merchant{
			UserID:       req.UserID,       // Backing user account
			BusinessName: req.BusinessName, // Registered business name
			Category:     req.Category,     // Business category
			IsActive:     true,             // New merchants accept redemptions
		}
		// Optional POS terminal identifier
		if req.POSTerminalID != "" {
			merchant.POSTerminalID = &req.POSTerminalID
		}
		// Insert the merchant
		if err := st.CreateMerchant(&merchant); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,  // Backing user
				"error":   err.Error(), // Error message
			}).Error("Failed to register merchant")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register merchant"})
			return
		}
		// Invalidate the active merchant list and counters
		_ = utils.DeleteCache(context.Background(), rdb, merchantsKey, statsKey)
		c.JSON(http.StatusCreated, merchant) // Return the created merchant
	}
}

// ListMerchantsHandler returns all active merchants
func ListMerchantsHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []domain.Merchant
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, merchantsKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached merchants
			return
		}
		// Fetch from the database
		merchants, err := st.ListActiveMerchants()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch merchants"})
			return
		}
		_ = utils.SetCache(ctx, rdb, merchantsKey, merchants, cacheTTL) // Cache the list
		c.JSON(http.StatusOK, merchants)                                // Return the list
	}
}
