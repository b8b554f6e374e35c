package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashLedger_CreditDebit(t *testing.T) {
	l := NewCashLedger("main")

	require.NoError(t, l.Credit(decimal.NewFromInt(100), decimal.NewFromInt(50000)))
	assert.True(t, l.BalanceUSD.Equal(decimal.NewFromInt(100)))
	assert.True(t, l.BalanceIQD.Equal(decimal.NewFromInt(50000)))

	require.NoError(t, l.Debit(decimal.NewFromInt(40), decimal.NewFromInt(20000)))
	assert.True(t, l.BalanceUSD.Equal(decimal.NewFromInt(60)))
	assert.True(t, l.BalanceIQD.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, 3, l.GetVersion())
}

func TestCashLedger_DebitInsufficient(t *testing.T) {
	l := NewCashLedger("main")
	require.NoError(t, l.Credit(decimal.NewFromInt(10), decimal.Zero))

	err := l.Debit(decimal.NewFromInt(11), decimal.Zero)
	assert.ErrorIs(t, err, ErrInsufficientCash)
	assert.True(t, l.BalanceUSD.Equal(decimal.NewFromInt(10)), "failed debit must not move the balance")

	err = l.Debit(decimal.Zero, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrInsufficientCash)
}

func TestCashLedger_AcceptPayment(t *testing.T) {
	l := NewCashLedger("main")
	require.NoError(t, l.Credit(decimal.Zero, decimal.NewFromInt(10000)))

	// Tender 50000 IQD, hand back 2000: one movement, one version bump.
	before := l.GetVersion()
	require.NoError(t, l.AcceptPayment(decimal.Zero, decimal.NewFromInt(50000), decimal.Zero, decimal.NewFromInt(2000)))
	assert.True(t, l.BalanceIQD.Equal(decimal.NewFromInt(58000)))
	assert.Equal(t, before+1, l.GetVersion())

	// USD change can come out of the tender itself.
	require.NoError(t, l.AcceptPayment(decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(3), decimal.Zero))
	assert.True(t, l.BalanceUSD.Equal(decimal.NewFromInt(97)))

	// Change the drawer cannot cover is rejected.
	err := l.AcceptPayment(decimal.Zero, decimal.Zero, decimal.NewFromInt(1000), decimal.Zero)
	assert.ErrorIs(t, err, ErrInsufficientCash)
}

func TestCashLedger_ForceDebitGoesNegative(t *testing.T) {
	l := NewCashLedger("main")
	require.NoError(t, l.ForceDebit(decimal.NewFromInt(25), decimal.Zero))
	assert.True(t, l.BalanceUSD.Equal(decimal.NewFromInt(-25)))
}

func TestCashLedger_RejectsNegativeInputs(t *testing.T) {
	l := NewCashLedger("main")
	assert.Error(t, l.Credit(decimal.NewFromInt(-1), decimal.Zero))
	assert.Error(t, l.Debit(decimal.Zero, decimal.NewFromInt(-1)))
	assert.Error(t, l.ForceDebit(decimal.NewFromInt(-1), decimal.Zero))
}

func TestCashLedger_TotalUSDEquivalent(t *testing.T) {
	l := NewCashLedger("main")
	require.NoError(t, l.Credit(decimal.NewFromInt(100), decimal.NewFromInt(150000)))

	total, err := l.TotalUSDEquivalent(decimal.NewFromInt(1500))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(200)))

	_, err = l.TotalUSDEquivalent(decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestNewCashLedger_DefaultName(t *testing.T) {
	assert.Equal(t, DefaultDrawerName, NewCashLedger("").Name)
}

func TestNewExchangeRate(t *testing.T) {
	r, err := NewExchangeRate(decimal.NewFromInt(1480), "manual")
	require.NoError(t, err)
	assert.True(t, r.Rate.Equal(decimal.NewFromInt(1480)))

	_, err = NewExchangeRate(decimal.Zero, "manual")
	assert.ErrorIs(t, err, ErrInvalidRate)
}
