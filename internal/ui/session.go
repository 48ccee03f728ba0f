package ui

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/papertrader/internal/entity"
)

type quoter interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

type account interface {
	Create(initialDeposit decimal.Decimal) error
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	Buy(ctx context.Context, symbol string, quantity int64) error
	Sell(ctx context.Context, symbol string, quantity int64) error
	CashBalance() decimal.Decimal
	Valuation(ctx context.Context) (entity.Valuation, error)
	PortfolioValue(ctx context.Context) (decimal.Decimal, error)
	ProfitLoss(ctx context.Context) (decimal.Decimal, error)
	Transactions() []entity.Transaction
}

// Session turns user actions into ledger calls and status text.
// Ledger failures are reported with their message unchanged.
type Session struct {
	account account
	quotes  quoter
	format  *Formatter
}

// NewSession binds a front-end session to an account and the price source it trades against.
func NewSession(a account, quotes quoter, f *Formatter) *Session {
	return &Session{account: a, quotes: quotes, format: f}
}

// Result is the outcome of one action.
type Result struct {
	Text string
	Err  error
}

func failed(err error) Result { return Result{Text: err.Error(), Err: err} }

// CreateAccount opens the account with its initial deposit.
func (s *Session) CreateAccount(initialDeposit decimal.Decimal) Result {
	if err := s.account.Create(initialDeposit); err != nil {
		return failed(err)
	}
	return Result{Text: fmt.Sprintf("Account created with initial deposit %s.", s.format.Money(initialDeposit))}
}

// Deposit adds cash.
func (s *Session) Deposit(amount decimal.Decimal) Result {
	if err := s.account.Deposit(amount); err != nil {
		return failed(err)
	}
	return Result{Text: fmt.Sprintf("Deposited %s successfully.", s.format.Money(amount))}
}

// Withdraw removes cash. The balance never goes negative.
func (s *Session) Withdraw(amount decimal.Decimal) Result {
	if err := s.account.Withdraw(amount); err != nil {
		return failed(err)
	}
	return Result{Text: fmt.Sprintf("Withdrew %s successfully.", s.format.Money(amount))}
}

// Buy purchases shares. The symbol is matched case-insensitively.
func (s *Session) Buy(ctx context.Context, symbol string, quantity int64) Result {
	symbol = entity.NormalizeSymbol(symbol)
	if err := s.account.Buy(ctx, symbol, quantity); err != nil {
		return failed(err)
	}
	return Result{Text: fmt.Sprintf("Bought %d shares of %s.", quantity, symbol)}
}

// Sell disposes of shares. A symbol without a price is reported as unknown
// even when nothing is held.
func (s *Session) Sell(ctx context.Context, symbol string, quantity int64) Result {
	symbol = entity.NormalizeSymbol(symbol)
	if _, err := s.quotes.GetPrice(ctx, symbol); err != nil {
		return failed(err)
	}
	if err := s.account.Sell(ctx, symbol, quantity); err != nil {
		return failed(err)
	}
	return Result{Text: fmt.Sprintf("Sold %d shares of %s.", quantity, symbol)}
}

// CashBalance shows uninvested cash.
func (s *Session) CashBalance() Result {
	return Result{Text: "Cash balance: " + s.format.Money(s.account.CashBalance())}
}

// Holdings lists every position at its current price.
func (s *Session) Holdings(ctx context.Context) Result {
	v, err := s.account.Valuation(ctx)
	if err != nil {
		return failed(err)
	}
	return Result{Text: s.format.Holdings(v)}
}

// PortfolioValue shows cash plus the market value of all holdings.
func (s *Session) PortfolioValue(ctx context.Context) Result {
	value, err := s.account.PortfolioValue(ctx)
	if err != nil {
		return failed(err)
	}
	return Result{Text: "Total portfolio value (cash + shares): " + s.format.Money(value)}
}

// ProfitLoss shows the gain or loss against the initial deposit.
func (s *Session) ProfitLoss(ctx context.Context) Result {
	pnl, err := s.account.ProfitLoss(ctx)
	if err != nil {
		return failed(err)
	}
	return Result{Text: "Profit/Loss relative to initial deposit: " + s.format.Signed(pnl)}
}

// Transactions lists the log oldest first.
func (s *Session) Transactions() Result {
	return Result{Text: s.format.Transactions(s.account.Transactions())}
}
