package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUSD(t *testing.T) {
	rate := decimal.NewFromInt(1500)

	got, err := ToUSD(decimal.NewFromInt(150000), rate)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(100)))

	_, err = ToUSD(decimal.NewFromInt(1000), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = ToUSD(decimal.NewFromInt(1000), decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestToIQD(t *testing.T) {
	rate := decimal.NewFromInt(1450)

	got, err := ToIQD(decimal.NewFromInt(10), rate)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(14500)))

	_, err = ToIQD(decimal.NewFromInt(10), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestToUSD_RoundTripStaysWithinEpsilon(t *testing.T) {
	rate := decimal.RequireFromString("1473.5")
	original := decimal.RequireFromString("37.25")

	iqd, err := ToIQD(original, rate)
	require.NoError(t, err)
	back, err := ToUSD(iqd, rate)
	require.NoError(t, err)

	assert.True(t, back.Sub(original).Abs().LessThan(settleEpsilon))
}

func TestResolveRate(t *testing.T) {
	current := decimal.NewFromInt(1500)
	frozen := decimal.NewFromInt(1400)

	t.Run("uses frozen rate when present", func(t *testing.T) {
		debt := &Debt{ExchangeRateAtCreation: &frozen}
		got, err := ResolveRate(debt, current)
		require.NoError(t, err)
		assert.True(t, got.Equal(frozen))
	})

	t.Run("falls back to current rate", func(t *testing.T) {
		debt := &Debt{}
		got, err := ResolveRate(debt, current)
		require.NoError(t, err)
		assert.True(t, got.Equal(current))
	})

	t.Run("nil debt uses current rate", func(t *testing.T) {
		got, err := ResolveRate(nil, current)
		require.NoError(t, err)
		assert.True(t, got.Equal(current))
	})

	t.Run("rejects non-positive result", func(t *testing.T) {
		debt := &Debt{}
		_, err := ResolveRate(debt, decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidRate)
	})
}
