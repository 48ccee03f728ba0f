package pricer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Pricer quotes the current price of a symbol.
// Unsupported symbols fail with entity.ErrUnknownSymbol.
type Pricer interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
