package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Holdings maps a symbol to the number of shares held. Entries are always positive.
type Holdings map[string]int64

// Clone returns an independent copy.
func (h Holdings) Clone() Holdings {
	clone := make(Holdings, len(h))
	for symbol, qty := range h {
		clone[symbol] = qty
	}
	return clone
}

// Symbols returns the held symbols in lexical order.
func (h Holdings) Symbols() []string {
	symbols := make([]string, 0, len(h))
	for symbol := range h {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Position is a holding priced at the current market.
type Position struct {
	Symbol   string
	Quantity int64
	Price    decimal.Decimal
	Value    decimal.Decimal
}

// NewPosition prices quantity shares of symbol.
func NewPosition(symbol string, quantity int64, price decimal.Decimal) Position {
	return Position{
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Value:    price.Mul(decimal.NewFromInt(quantity)),
	}
}

// Valuation is the account marked to market.
type Valuation struct {
	Cash      decimal.Decimal
	Positions []Position // sorted by symbol
	Holdings  decimal.Decimal
	Total     decimal.Decimal
}

// NewValuation sums cash and positions.
func NewValuation(cash decimal.Decimal, positions []Position) Valuation {
	holdings := decimal.Zero
	for _, p := range positions {
		holdings = holdings.Add(p.Value)
	}
	return Valuation{
		Cash:      cash,
		Positions: positions,
		Holdings:  holdings,
		Total:     cash.Add(holdings),
	}
}
