package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"gifty/internal/store" // Persistence layer
	"gifty/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// statsKey caches the aggregate counters
const statsKey = "analytics:stats"

// StatsResponse mixes live counters with the demo's fixed showcase metrics
type StatsResponse struct {
	TotalCards     int64  `json:"totalCards"`     // Total issued cards
	TotalValue     string `json:"totalValue"`     // Outstanding balance across all cards
	Merchants      int64  `json:"merchants"`      // Active merchant count
	AvgTime        string `json:"avgTime"`        // Fixed demo metric
	EmissionCost   string `json:"emissionCost"`   // Fixed demo metric
	RedemptionTime string `json:"redemptionTime"` // Fixed demo metric
	UXSuccess      string `json:"uxSuccess"`      // Fixed demo metric
	ZkProofs       string `json:"zkProofs"`       // Fixed demo metric
}

// StatsHandler returns the aggregate counters for the analytics page
func StatsHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached StatsResponse
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, statsKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached stats
			return
		}
		// Live counters
		totalCards, err := st.CountGiftCards()
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to count gift cards")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
			return
		}
		totalValue, err := st.SumGiftCardValue()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
			return
		}
		merchants, err := st.CountActiveMerchants()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
			return
		}
		stats := StatsResponse{
			TotalCards:     totalCards,                // Total issued cards
			TotalValue:     totalValue.StringFixed(2), // Outstanding balance
			Merchants:      merchants,                 // Active merchant count
			AvgTime:        "< 1min",                  // Fixed demo metric
			EmissionCost:   "0.3%",                    // Fixed demo metric
			RedemptionTime: "< 45s",                   // Fixed demo metric
			UXSuccess:      "92%",                     // Fixed demo metric
			ZkProofs:       "100%",                    // Fixed demo metric
		}
		_ = utils.SetCache(ctx, rdb, statsKey, stats, cacheTTL) // Cache the stats
		c.JSON(http.StatusOK, stats)                            // Return the stats
	}
}
