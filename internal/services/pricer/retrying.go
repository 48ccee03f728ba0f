package pricer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/papertrader/internal/entity"
	"github.com/vadiminshakov/papertrader/pkg/retrier"
	"go.uber.org/zap"
)

// RetryingPricer retries transient quote failures of a live feed.
// An unknown symbol is an input error and is returned after the first attempt.
type RetryingPricer struct {
	next    Pricer
	retrier *retrier.Retrier
	logger  *zap.Logger
}

// Transient reports whether a failed lookup is worth repeating. Unknown
// symbols and a finished context are not.
func Transient(err error) bool {
	switch {
	case errors.Is(err, entity.ErrUnknownSymbol),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

// NewRetryingPricer wraps next. A nil retrier uses the default backoff with Transient.
func NewRetryingPricer(next Pricer, r *retrier.Retrier, logger *zap.Logger) (*RetryingPricer, error) {
	if next == nil {
		return nil, errors.New("pricer is required for RetryingPricer")
	}
	if r == nil {
		r = retrier.New(retrier.WithRetryable(Transient))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingPricer{next: next, retrier: r, logger: logger}, nil
}

// GetPrice quotes symbol through the wrapped pricer.
func (p *RetryingPricer) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	attempt := 0
	return retrier.DoWithData(p.retrier, ctx, func(ctx context.Context) (decimal.Decimal, error) {
		attempt++
		price, err := p.next.GetPrice(ctx, symbol)
		if err == nil {
			return price, nil
		}
		if errors.Is(err, entity.ErrUnknownSymbol) {
			return decimal.Decimal{}, retrier.Permanent(err)
		}
		p.logger.Warn("price lookup failed",
			zap.String("symbol", symbol),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return decimal.Decimal{}, err
	})
}
