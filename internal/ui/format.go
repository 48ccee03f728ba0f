package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/papertrader/internal/entity"
)

const timestampLayout = "2006-01-02 15:04:05"

// Formatter renders ledger values as display text in one currency.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter creates a formatter for an ISO 4217 currency code.
func NewFormatter(code string) (*Formatter, error) {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &Formatter{currency: cur}, nil
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Money formats an amount with the currency symbol and digit grouping.
// Amounts beyond the int64 range of minor units are printed as plain decimals with the currency code.
func (f *Formatter) Money(amount decimal.Decimal) string {
	fraction := int32(f.currency.Fraction)
	minor := amount.Round(fraction).Shift(fraction)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return amount.StringFixed(fraction) + " " + f.currency.Code
	}
	return f.currency.Formatter().Format(minor.IntPart())
}

// Signed formats an amount with an explicit leading sign, zero counting as gain.
func (f *Formatter) Signed(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + f.Money(amount.Abs())
	}
	return "+" + f.Money(amount)
}

// Holdings renders one line per position.
func (f *Formatter) Holdings(v entity.Valuation) string {
	if len(v.Positions) == 0 {
		return "No holdings."
	}
	lines := make([]string, 0, len(v.Positions))
	for _, p := range v.Positions {
		lines = append(lines, fmt.Sprintf("%s: %d shares @ %s = %s",
			p.Symbol, p.Quantity, f.Money(p.Price), f.Money(p.Value)))
	}
	return strings.Join(lines, "\n")
}

// Transaction renders a single log entry.
func (f *Formatter) Transaction(tx entity.Transaction) string {
	ts := tx.Timestamp.Format(timestampLayout)
	label := capitalize(tx.Kind.String())
	if tx.Kind.IsTrade() {
		return fmt.Sprintf("%s - %s %d shares of %s @ %s",
			ts, label, tx.Quantity, tx.Symbol, f.Money(tx.PricePerShare.Decimal))
	}
	return fmt.Sprintf("%s - %s: %s", ts, label, f.Money(tx.CashAmount))
}

// Transactions renders the log oldest first.
func (f *Formatter) Transactions(txs []entity.Transaction) string {
	if len(txs) == 0 {
		return "No transactions yet."
	}
	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		lines = append(lines, f.Transaction(tx))
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
