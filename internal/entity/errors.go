package entity

import (
	"strings"

	"github.com/pkg/errors"
)

// Ledger failures. Operations wrap these with details, use errors.Is to classify.
var (
	ErrNotInitialized     = errors.New("account is not initialized")
	ErrAlreadyInitialized = errors.New("account already created with initial deposit")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidQuantity    = invalidQuantityError{}
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrUnknownSymbol      = errors.New("unknown symbol")
)

// invalidQuantityError is a non-positive share count. It also matches ErrInvalidAmount.
type invalidQuantityError struct{}

func (invalidQuantityError) Error() string { return "invalid quantity" }

func (invalidQuantityError) Is(target error) bool {
	return target == ErrInvalidAmount
}

// unknownSymbolError names the symbol the oracle has no price for. It matches ErrUnknownSymbol.
type unknownSymbolError struct {
	symbol string
}

func (e unknownSymbolError) Error() string { return "unknown share symbol: " + e.symbol }

func (unknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

// UnknownSymbol reports that symbol has no price.
func UnknownSymbol(symbol string) error {
	return errors.WithStack(unknownSymbolError{symbol: symbol})
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ErrorKind classifies a ledger failure.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotInitialized
	KindAlreadyInitialized
	KindInvalidAmount
	KindInsufficientFunds
	KindInsufficientShares
	KindUnknownSymbol
	KindOther
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotInitialized:
		return "not_initialized"
	case KindAlreadyInitialized:
		return "already_initialized"
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindInsufficientShares:
		return "insufficient_shares"
	case KindUnknownSymbol:
		return "unknown_symbol"
	default:
		return "other"
	}
}

// KindOf maps err to its ErrorKind. Nil maps to KindNone.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotInitialized):
		return KindNotInitialized
	case errors.Is(err, ErrAlreadyInitialized):
		return KindAlreadyInitialized
	case errors.Is(err, ErrInvalidAmount):
		return KindInvalidAmount
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrInsufficientShares):
		return KindInsufficientShares
	case errors.Is(err, ErrUnknownSymbol):
		return KindUnknownSymbol
	default:
		return KindOther
	}
}
