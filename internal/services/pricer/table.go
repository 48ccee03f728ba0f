package pricer

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/papertrader/internal/entity"
)

// DefaultPrices is the quote table used when no prices are configured.
var DefaultPrices = map[string]decimal.Decimal{
	"AAPL":  decimal.NewFromInt(150),
	"TSLA":  decimal.NewFromInt(700),
	"GOOGL": decimal.NewFromInt(2800),
}

// TablePricer serves fixed prices from an in-memory table.
type TablePricer struct {
	prices map[string]decimal.Decimal
}

// NewTablePricer copies prices into a new pricer. Every price must be positive.
func NewTablePricer(prices map[string]decimal.Decimal) (*TablePricer, error) {
	table := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		if strings.TrimSpace(symbol) == "" {
			return nil, errors.New("price table contains an empty symbol")
		}
		if !price.IsPositive() {
			return nil, errors.Errorf("price for %s must be positive, got %s", symbol, price.String())
		}
		table[symbol] = price
	}
	return &TablePricer{prices: table}, nil
}

// GetPrice returns the table price for symbol.
func (p *TablePricer) GetPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	price, ok := p.prices[symbol]
	if !ok {
		return decimal.Decimal{}, entity.UnknownSymbol(symbol)
	}
	return price, nil
}

// Symbols lists the supported symbols in lexical order.
func (p *TablePricer) Symbols() []string {
	symbols := make([]string, 0, len(p.prices))
	for symbol := range p.prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
