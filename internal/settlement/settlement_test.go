package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockAdapter_CreateGiftCard(t *testing.T) {
	adapter := NewMockAdapter(0)

	result, err := adapter.Submit(context.Background(), OpCreateGiftCard, Payload{
		TokenID:   "GFC-1-abc",
		Amount:    decimal.RequireFromString("100.00"),
		Recipient: "bob@example.com",
	})

	require.NoError(t, err)
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, result.TxHash)
	assert.Equal(t, "GFC-1-abc", result.TokenID)
	assert.Regexp(t, `^0x[0-9a-f]{40}$`, result.TBAAddress)
	assert.Equal(t, "confirmed", result.Status)
	assert.GreaterOrEqual(t, result.GasUsed, int64(50000))
	assert.Less(t, result.GasUsed, int64(150000))
}

func TestMockAdapter_RedeemGiftCard(t *testing.T) {
	adapter := NewMockAdapter(0)

	result, err := adapter.Submit(context.Background(), OpRedeemGiftCard, Payload{
		TokenID:    "GFC-1-abc",
		Amount:     decimal.RequireFromString("25.00"),
		MerchantID: "merchant-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "merchant-1", result.MerchantID)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, "confirmed", result.Status)
	assert.GreaterOrEqual(t, result.GasUsed, int64(40000))
	assert.Less(t, result.GasUsed, int64(120000))
}

func TestMockAdapter_ReloadGiftCard(t *testing.T) {
	adapter := NewMockAdapter(0)

	result, err := adapter.Submit(context.Background(), OpReloadGiftCard, Payload{
		TokenID: "GFC-1-abc",
		Amount:  decimal.RequireFromString("10.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", result.Status)
	assert.GreaterOrEqual(t, result.GasUsed, int64(30000))
	assert.Less(t, result.GasUsed, int64(90000))
}

func TestMockAdapter_UnknownOperation(t *testing.T) {
	adapter := NewMockAdapter(0)

	_, err := adapter.Submit(context.Background(), "burnGiftCard", Payload{})

	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestMockAdapter_HonorsDelay(t *testing.T) {
	adapter := NewMockAdapter(30 * time.Millisecond)

	start := time.Now()
	_, err := adapter.Submit(context.Background(), OpReloadGiftCard, Payload{TokenID: "GFC-1"})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestMockAdapter_CancelledContext(t *testing.T) {
	adapter := NewMockAdapter(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Submit(ctx, OpCreateGiftCard, Payload{TokenID: "GFC-1"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatic_Deterministic(t *testing.T) {
	double := &Static{TxHash: "0xfixed"}

	first, err := double.Submit(context.Background(), OpCreateGiftCard, Payload{TokenID: "GFC-1"})
	require.NoError(t, err)
	second, err := double.Submit(context.Background(), OpRedeemGiftCard, Payload{TokenID: "GFC-1"})
	require.NoError(t, err)

	assert.Equal(t, "0xfixed", first.TxHash)
	assert.Equal(t, "0xfixed", second.TxHash)
	assert.Equal(t, []string{OpCreateGiftCard, OpRedeemGiftCard}, double.Calls)
}

func TestStatic_UnknownOperation(t *testing.T) {
	double := &Static{}

	_, err := double.Submit(context.Background(), "burnGiftCard", Payload{})

	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.Empty(t, double.Calls)
}
