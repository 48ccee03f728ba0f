package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionKind_String(t *testing.T) {
	assert.Equal(t, "deposit", KindDeposit.String())
	assert.Equal(t, "withdrawal", KindWithdrawal.String())
	assert.Equal(t, "buy", KindBuy.String())
	assert.Equal(t, "sell", KindSell.String())
	assert.Equal(t, "unknown", TransactionKind(42).String())
}

func TestNewTradeTransaction(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	tx := NewTradeTransaction(ts, KindSell, "TSLA", 3, decimal.RequireFromString("700.10"))

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, ts, tx.Timestamp)
	assert.Equal(t, "TSLA", tx.Symbol)
	assert.Equal(t, int64(3), tx.Quantity)
	assert.True(t, tx.PricePerShare.Valid)
	assert.True(t, tx.CashAmount.Equal(decimal.RequireFromString("2100.30")))
}

func TestNewCashTransaction(t *testing.T) {
	tx := NewCashTransaction(time.Now(), KindDeposit, decimal.NewFromInt(50))
	other := NewCashTransaction(time.Now(), KindDeposit, decimal.NewFromInt(50))

	assert.NotEqual(t, tx.ID, other.ID)
	assert.Empty(t, tx.Symbol)
	assert.Zero(t, tx.Quantity)
	assert.False(t, tx.PricePerShare.Valid)
}
