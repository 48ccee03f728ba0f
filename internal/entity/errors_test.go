package entity

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: KindNone},
		{name: "not initialized", err: errors.WithStack(ErrNotInitialized), want: KindNotInitialized},
		{name: "already initialized", err: ErrAlreadyInitialized, want: KindAlreadyInitialized},
		{name: "invalid amount", err: errors.Wrap(ErrInvalidAmount, "deposit"), want: KindInvalidAmount},
		{name: "invalid quantity", err: errors.Wrap(ErrInvalidQuantity, "buy"), want: KindInvalidAmount},
		{name: "insufficient funds", err: errors.Wrap(ErrInsufficientFunds, "withdraw"), want: KindInsufficientFunds},
		{name: "insufficient shares", err: ErrInsufficientShares, want: KindInsufficientShares},
		{name: "unknown symbol", err: errors.Wrap(errors.Wrap(ErrUnknownSymbol, "XYZ"), "buy"), want: KindUnknownSymbol},
		{name: "unknown symbol by name", err: UnknownSymbol("MSFT"), want: KindUnknownSymbol},
		{name: "other", err: errors.New("feed down"), want: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrInvalidQuantity(t *testing.T) {
	err := errors.Wrap(ErrInvalidQuantity, "quantity must be greater than zero")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.NotErrorIs(t, errors.Wrap(ErrInvalidAmount, "x"), ErrInvalidQuantity)
	assert.Equal(t, "quantity must be greater than zero: invalid quantity", err.Error())
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "insufficient_funds", KindInsufficientFunds.String())
	assert.Equal(t, "unknown_symbol", KindUnknownSymbol.String())
	assert.Equal(t, "other", ErrorKind(99).String())
}

func TestUnknownSymbol(t *testing.T) {
	err := UnknownSymbol("MSFT")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
	assert.NotErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, "unknown share symbol: MSFT", err.Error())
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeSymbol("  aapl "))
	assert.Equal(t, "BRK.B", NormalizeSymbol("brk.b"))
	assert.Equal(t, "", NormalizeSymbol("   "))
}
