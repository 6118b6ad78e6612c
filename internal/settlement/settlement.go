package settlement

import (
	"context"   // Cancellation during the simulated delay
	"errors"    // Sentinel errors
	"math/rand" // Fabricated gas figures
	"time"      // Simulated settlement delay

	"gifty/internal/utils" // Random hex hashes

	"github.com/shopspring/decimal" // Fixed-precision currency amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// Settlement operations
const (
	OpCreateGiftCard = "createGiftCard" // Mint a card with its initial balance
	OpRedeemGiftCard = "redeemGiftCard" // Spend balance at a merchant
	OpReloadGiftCard = "reloadGiftCard" // Top up balance
)

// ErrUnknownOperation is returned for an operation the adapter does not support
var ErrUnknownOperation = errors.New("settlement: unknown operation")

// Payload carries the request data for a settlement call
type Payload struct {
	TokenID    string          // Gift card token identifier
	Amount     decimal.Decimal // Amount being settled
	Recipient  string          // Recipient email (creation only)
	MerchantID string          // Merchant reference (redemption only)
}

// Result is the fabricated settlement outcome
type Result struct {
	TxHash     string          // Settlement transaction hash
	TokenID    string          // Echoed token identifier
	TBAAddress string          // Custody account address (creation only)
	Amount     decimal.Decimal // Echoed amount
	MerchantID string          // Echoed merchant reference
	GasUsed    int64           // Fabricated gas cost
	Status     string          // Always "confirmed" for the mock adapter
}

// Port is the settlement contract the lifecycle service depends on.
// The mock adapter stands in for a real on-chain settlement backend;
// swapping in a real one must not touch the service.
type Port interface {
	Submit(ctx context.Context, op string, payload Payload) (Result, error)
}

// MockAdapter fabricates settlement results after a fixed delay.
// It never fails and never retries.
type MockAdapter struct {
	Delay time.Duration // Simulated confirmation delay
}

// NewMockAdapter creates a mock adapter with the given confirmation delay
func NewMockAdapter(delay time.Duration) *MockAdapter {
	return &MockAdapter{Delay: delay}
}

// Submit simulates an on-chain settlement call
func (a *MockAdapter) Submit(ctx context.Context, op string, payload Payload) (Result, error) {
	// Wait out the simulated confirmation delay
	if a.Delay > 0 {
		select {
		case <-time.After(a.Delay): // Delay elapsed
		case <-ctx.Done():
			return Result{}, ctx.Err() // Caller gave up
		}
	}
	// Log the simulated interaction
	logrus.WithFields(logrus.Fields{
		"operation": op,              // Settlement operation
		"token_id":  payload.TokenID, // Gift card token identifier
		"amount":    payload.Amount,  // Settled amount
	}).Info("Settlement simulated")
	// Fabricate a result shaped per operation
	switch op {
	case OpCreateGiftCard:
		return Result{
			TxHash:     "0x" + utils.RandomHex(32),                // Random transaction hash
			TokenID:    payload.TokenID,                           // Echo token identifier
			TBAAddress: utils.GenerateTBAAddress(payload.TokenID), // Derived custody address
			Amount:     payload.Amount,                            // Echo amount
			GasUsed:    50000 + rand.Int63n(100000),               // Fabricated mint cost
			Status:     "confirmed",                               // Always confirmed
		}, nil
	case OpRedeemGiftCard:
		return Result{
			TxHash:     "0x" + utils.RandomHex(32),  // Random transaction hash
			TokenID:    payload.TokenID,             // Echo token identifier
			Amount:     payload.Amount,              // Echo amount
			MerchantID: payload.MerchantID,          // Echo merchant reference
			GasUsed:    40000 + rand.Int63n(80000),  // Fabricated redemption cost
			Status:     "confirmed",                 // Always confirmed
		}, nil
	case OpReloadGiftCard:
		return Result{
			TxHash:  "0x" + utils.RandomHex(32), // Random transaction hash
			TokenID: payload.TokenID,            // Echo token identifier
			Amount:  payload.Amount,             // Echo amount
			GasUsed: 30000 + rand.Int63n(60000), // Fabricated reload cost
			Status:  "confirmed",                // Always confirmed
		}, nil
	default:
		return Result{}, ErrUnknownOperation // Unsupported operation
	}
}

// Static is a deterministic settlement double for tests: zero delay,
// fixed hash, and a record of every submitted call.
type Static struct {
	TxHash string   // Hash returned for every call
	Calls  []string // Operations submitted, in order
}

// Submit returns a fixed result immediately
func (s *Static) Submit(ctx context.Context, op string, payload Payload) (Result, error) {
	switch op {
	case OpCreateGiftCard, OpRedeemGiftCard, OpReloadGiftCard:
	default:
		return Result{}, ErrUnknownOperation // Unsupported operation
	}
	s.Calls = append(s.Calls, op) // Record the call
	hash := s.TxHash
	if hash == "" {
		hash = "0x" + utils.RandomHex(32) // Fall back to a random hash
	}
	return Result{
		TxHash:     hash,                                      // Deterministic hash
		TokenID:    payload.TokenID,                           // Echo token identifier
		TBAAddress: utils.GenerateTBAAddress(payload.TokenID), // Derived custody address
		Amount:     payload.Amount,                            // Echo amount
		MerchantID: payload.MerchantID,                        // Echo merchant reference
		GasUsed:    21000,                                     // Fixed gas figure
		Status:     "confirmed",                               // Always confirmed
	}, nil
}
