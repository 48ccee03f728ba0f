package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the type of ledger movement.
type TransactionKind int

const (
	// KindDeposit adds cash to the account.
	KindDeposit TransactionKind = iota
	// KindWithdrawal removes cash from the account.
	KindWithdrawal
	// KindBuy exchanges cash for shares.
	KindBuy
	// KindSell exchanges shares for cash.
	KindSell
)

// kind string constants to avoid magic strings
const (
	kindStringDeposit    = "deposit"
	kindStringWithdrawal = "withdrawal"
	kindStringBuy        = "buy"
	kindStringSell       = "sell"
)

// String returns the string representation of the kind.
func (k TransactionKind) String() string {
	switch k {
	case KindDeposit:
		return kindStringDeposit
	case KindWithdrawal:
		return kindStringWithdrawal
	case KindBuy:
		return kindStringBuy
	case KindSell:
		return kindStringSell
	default:
		return "unknown"
	}
}

// IsTrade reports whether the kind moves shares.
func (k TransactionKind) IsTrade() bool {
	return k == KindBuy || k == KindSell
}

// Transaction is an immutable entry of the account audit trail.
// Symbol, Quantity and PricePerShare are populated only for buy and sell;
// for cash movements they hold the zero value and an invalid NullDecimal.
type Transaction struct {
	ID            string
	Timestamp     time.Time
	Kind          TransactionKind
	CashAmount    decimal.Decimal // deposit/withdrawal amount, buy cost or sell proceeds
	Symbol        string
	Quantity      int64
	PricePerShare decimal.NullDecimal
}

// NewCashTransaction records a deposit or withdrawal.
func NewCashTransaction(ts time.Time, kind TransactionKind, amount decimal.Decimal) Transaction {
	return Transaction{
		ID:         uuid.NewString(),
		Timestamp:  ts,
		Kind:       kind,
		CashAmount: amount,
	}
}

// NewTradeTransaction records a buy or sell executed at price.
func NewTradeTransaction(ts time.Time, kind TransactionKind, symbol string, quantity int64, price decimal.Decimal) Transaction {
	return Transaction{
		ID:            uuid.NewString(),
		Timestamp:     ts,
		Kind:          kind,
		CashAmount:    price.Mul(decimal.NewFromInt(quantity)),
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: decimal.NewNullDecimal(price),
	}
}
