package api

import (
	"gifty/internal/giftcard" // Lifecycle service
	"gifty/internal/store"    // Persistence layer

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Register mounts the GIFTY REST surface on a router
func Register(r *gin.Engine, svc *giftcard.Service, st *store.Store, rdb *redis.Client) {
	apiGroup := r.Group("/api") // All endpoints live under /api

	// Gift card routes
	apiGroup.GET("/gift-cards", ListGiftCardsHandler(svc, rdb))                    // List owner's cards
	apiGroup.GET("/gift-cards/:id", GetGiftCardHandler(svc, rdb))                  // Single card
	apiGroup.POST("/gift-cards", CreateGiftCardHandler(svc, rdb))                  // Mint a card
	apiGroup.PUT("/gift-cards/:id/redeem", RedeemGiftCardHandler(svc, rdb))        // Redeem at merchant POS
	apiGroup.PUT("/gift-cards/:id/reload", ReloadGiftCardHandler(svc, rdb))        // Top up balance
	apiGroup.GET("/gift-cards/:id/transactions", ListTransactionsHandler(svc, rdb)) // Ledger history
	apiGroup.POST("/gift-cards/:id/zk-proof", GenerateZkProofHandler(svc, rdb))    // Generate balance proof
	apiGroup.GET("/gift-cards/:id/zk-proofs", ListZkProofsHandler(svc, rdb))       // Proof history

	// Merchant routes
	apiGroup.GET("/merchants", ListMerchantsHandler(st, rdb))     // Active merchants
	apiGroup.POST("/merchants", RegisterMerchantHandler(st, rdb)) // Register a merchant

	// User routes
	apiGroup.POST("/users", RegisterUserHandler(st)) // Register a user account

	// Analytics routes
	apiGroup.GET("/analytics/stats", StatsHandler(st, rdb)) // Aggregate counters
}
