// Package ledger implements the simulated trading account: cash, share
// holdings and the transaction log, valued against an injected Pricer.
package ledger

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/papertrader/internal/entity"
	"go.uber.org/zap"
)

// Pricer defines an interface for getting the price of a share.
type Pricer interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Publisher receives the account state after every committed operation.
type Publisher interface {
	Publish(snapshot entity.AccountSnapshot)
}

// Option configures an Account.
type Option func(*Account)

// WithClock overrides the source of transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Account) {
		if now != nil {
			a.now = now
		}
	}
}

// WithPublisher attaches a snapshot publisher.
func WithPublisher(p Publisher) Option {
	return func(a *Account) {
		a.publisher = p
	}
}

// Account is a single-user trading account.
// It is safe for concurrent use: each mutation validates and commits under one lock.
type Account struct {
	mu             sync.RWMutex
	logger         *zap.Logger
	pricer         Pricer
	publisher      Publisher
	now            func() time.Time
	initialized    bool
	initialDeposit decimal.Decimal
	cash           decimal.Decimal
	holdings       entity.Holdings
	transactions   []entity.Transaction
}

// NewAccount creates an uninitialized account. Call Create before trading.
func NewAccount(pricer Pricer, logger *zap.Logger, opts ...Option) (*Account, error) {
	if pricer == nil {
		return nil, errors.New("pricer is required for Account")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Account{
		logger:         logger,
		pricer:         pricer,
		now:            time.Now,
		initialDeposit: decimal.Zero,
		cash:           decimal.Zero,
		holdings:       make(entity.Holdings),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Create opens the account with an initial deposit. It succeeds exactly once.
func (a *Account) Create(initialDeposit decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return a.reject("create", errors.WithStack(entity.ErrAlreadyInitialized))
	}
	if !initialDeposit.IsPositive() {
		return a.reject("create", errors.Wrapf(entity.ErrInvalidAmount,
			"initial deposit must be greater than zero, got %s", initialDeposit.String()))
	}

	a.initialized = true
	a.initialDeposit = initialDeposit
	a.cash = initialDeposit
	tx := entity.NewCashTransaction(a.now(), entity.KindDeposit, initialDeposit)
	a.commit(tx)

	a.logger.Info("account created", zap.String("initial_deposit", initialDeposit.String()))
	return nil
}

// Deposit adds amount to the cash balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCashMovement("deposit", amount); err != nil {
		return a.reject("deposit", err)
	}

	a.cash = a.cash.Add(amount)
	a.commit(entity.NewCashTransaction(a.now(), entity.KindDeposit, amount))

	a.logger.Info("deposit executed",
		zap.String("amount", amount.String()),
		zap.String("cash", a.cash.String()))
	return nil
}

// Withdraw removes amount from the cash balance. The balance never goes negative.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCashMovement("withdrawal", amount); err != nil {
		return a.reject("withdraw", err)
	}
	if amount.GreaterThan(a.cash) {
		return a.reject("withdraw", errors.Wrapf(entity.ErrInsufficientFunds,
			"cannot withdraw %s, cash balance is %s", amount.String(), a.cash.String()))
	}

	a.cash = a.cash.Sub(amount)
	a.commit(entity.NewCashTransaction(a.now(), entity.KindWithdrawal, amount))

	a.logger.Info("withdrawal executed",
		zap.String("amount", amount.String()),
		zap.String("cash", a.cash.String()))
	return nil
}

// Buy purchases quantity shares of symbol at the current price.
func (a *Account) Buy(ctx context.Context, symbol string, quantity int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkTrade(quantity); err != nil {
		return a.reject("buy", err)
	}
	if held := a.holdings[symbol]; held > math.MaxInt64-quantity {
		return a.reject("buy", errors.Wrapf(entity.ErrInvalidQuantity,
			"holding %d %s cannot grow by %d", held, symbol, quantity))
	}

	price, err := a.quote(ctx, symbol)
	if err != nil {
		return a.reject("buy", err)
	}

	tx := entity.NewTradeTransaction(a.now(), entity.KindBuy, symbol, quantity, price)
	if tx.CashAmount.GreaterThan(a.cash) {
		return a.reject("buy", errors.Wrapf(entity.ErrInsufficientFunds,
			"buying %d %s costs %s, cash balance is %s",
			quantity, symbol, tx.CashAmount.String(), a.cash.String()))
	}

	a.cash = a.cash.Sub(tx.CashAmount)
	a.holdings[symbol] += quantity
	a.commit(tx)

	a.logger.Info("buy executed",
		zap.String("symbol", symbol),
		zap.Int64("quantity", quantity),
		zap.String("price", price.String()),
		zap.String("cost", tx.CashAmount.String()))
	return nil
}

// Sell disposes of quantity shares of symbol at the current price.
// Selling more than is held is rejected; short positions are not supported.
func (a *Account) Sell(ctx context.Context, symbol string, quantity int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkTrade(quantity); err != nil {
		return a.reject("sell", err)
	}

	held := a.holdings[symbol]
	if quantity > held {
		return a.reject("sell", errors.Wrapf(entity.ErrInsufficientShares,
			"cannot sell %d %s, holding %d", quantity, symbol, held))
	}

	price, err := a.quote(ctx, symbol)
	if err != nil {
		return a.reject("sell", err)
	}

	tx := entity.NewTradeTransaction(a.now(), entity.KindSell, symbol, quantity, price)

	a.cash = a.cash.Add(tx.CashAmount)
	if remaining := held - quantity; remaining > 0 {
		a.holdings[symbol] = remaining
	} else {
		delete(a.holdings, symbol)
	}
	a.commit(tx)

	a.logger.Info("sell executed",
		zap.String("symbol", symbol),
		zap.Int64("quantity", quantity),
		zap.String("price", price.String()),
		zap.String("proceeds", tx.CashAmount.String()))
	return nil
}

// Initialized reports whether Create has succeeded.
func (a *Account) Initialized() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initialized
}

// InitialDeposit returns the profit/loss baseline, zero before creation.
func (a *Account) InitialDeposit() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initialDeposit
}

// CashBalance returns the cash balance, zero before creation.
func (a *Account) CashBalance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cash
}

// Holdings returns a copy of the share holdings.
func (a *Account) Holdings() entity.Holdings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.holdings.Clone()
}

// Transactions returns a copy of the transaction log, oldest first.
func (a *Account) Transactions() []entity.Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]entity.Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Valuation marks every holding to the current price.
// If any held symbol cannot be priced the whole valuation fails.
func (a *Account) Valuation(ctx context.Context) (entity.Valuation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	positions := make([]entity.Position, 0, len(a.holdings))
	for _, symbol := range a.holdings.Symbols() {
		price, err := a.quote(ctx, symbol)
		if err != nil {
			return entity.Valuation{}, err
		}
		positions = append(positions, entity.NewPosition(symbol, a.holdings[symbol], price))
	}

	return entity.NewValuation(a.cash, positions), nil
}

// PortfolioValue returns cash plus the market value of all holdings.
func (a *Account) PortfolioValue(ctx context.Context) (decimal.Decimal, error) {
	v, err := a.Valuation(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Total, nil
}

// ProfitLoss returns portfolio value minus the initial deposit, zero before creation.
func (a *Account) ProfitLoss(ctx context.Context) (decimal.Decimal, error) {
	a.mu.RLock()
	initialized, baseline := a.initialized, a.initialDeposit
	a.mu.RUnlock()
	if !initialized {
		return decimal.Zero, nil
	}

	v, err := a.Valuation(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Total.Sub(baseline), nil
}

// quote prices symbol. Unknown-symbol errors already name the symbol and pass through as is.
func (a *Account) quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, err := a.pricer.GetPrice(ctx, symbol)
	if errors.Is(err, entity.ErrUnknownSymbol) {
		return decimal.Zero, err
	}
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to get price for %s", symbol)
	}
	if !price.IsPositive() {
		return decimal.Zero, errors.Errorf("invalid price %s for %s", price.String(), symbol)
	}
	return price, nil
}

func (a *Account) checkCashMovement(kind string, amount decimal.Decimal) error {
	if !a.initialized {
		return errors.WithStack(entity.ErrNotInitialized)
	}
	if !amount.IsPositive() {
		return errors.Wrapf(entity.ErrInvalidAmount,
			"%s amount must be greater than zero, got %s", kind, amount.String())
	}
	return nil
}

func (a *Account) checkTrade(quantity int64) error {
	if !a.initialized {
		return errors.WithStack(entity.ErrNotInitialized)
	}
	if quantity <= 0 {
		return errors.Wrapf(entity.ErrInvalidQuantity,
			"quantity must be greater than zero, got %d", quantity)
	}
	return nil
}

// commit appends tx and publishes the resulting state. Callers hold the write lock.
func (a *Account) commit(tx entity.Transaction) {
	a.transactions = append(a.transactions, tx)
	if a.publisher == nil {
		return
	}
	a.publisher.Publish(entity.AccountSnapshot{
		Timestamp:        tx.Timestamp,
		Cash:             a.cash,
		Holdings:         a.holdings.Clone(),
		TransactionCount: len(a.transactions),
		Last:             tx,
	})
}

func (a *Account) reject(op string, err error) error {
	a.logger.Warn("operation rejected", zap.String("op", op), zap.Error(err))
	return err
}
