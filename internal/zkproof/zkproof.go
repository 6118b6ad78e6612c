package zkproof

import (
	"context" // Blocking-operation contract, matching the settlement port
	"strings" // Suffix formatting
	"time"    // Proof timestamps

	"gifty/internal/domain" // Proof payload type
	"gifty/internal/utils"  // Random hex commitments

	"github.com/google/uuid"        // Random proof suffixes
	"github.com/shopspring/decimal" // Fixed-precision currency amounts
)

// Port is the proof-generation contract the lifecycle service depends on.
// The mock generator fabricates payloads; a real prover would slot in here.
type Port interface {
	Generate(ctx context.Context, tokenID string, balance decimal.Decimal) (domain.ProofData, error)
}

// MockGenerator fabricates a balance proof and marks it verified
// unconditionally. No cryptography is involved.
type MockGenerator struct{}

// Generate fabricates a commitment/nullifier pair for a card balance
func (g *MockGenerator) Generate(ctx context.Context, tokenID string, balance decimal.Decimal) (domain.ProofData, error) {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7] // Short random suffix
	return domain.ProofData{
		BalanceProof: "zk_proof_" + suffix,         // Opaque proof string
		Commitment:   "0x" + utils.RandomHex(32),   // 64 hex digit commitment
		Nullifier:    "0x" + utils.RandomHex(32),   // 64 hex digit nullifier
		Verified:     true,                         // Mock proofs always verify
		Timestamp:    time.Now().UnixMilli(),       // Generation time
	}, nil
}

// Static is a deterministic proof double for tests
type Static struct {
	Proof domain.ProofData // Payload returned for every call
	Calls int              // Number of generations requested
}

// Generate returns the fixed payload
func (s *Static) Generate(ctx context.Context, tokenID string, balance decimal.Decimal) (domain.ProofData, error) {
	s.Calls++ // Record the call
	return s.Proof, nil
}
