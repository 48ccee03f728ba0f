package pricer

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/papertrader/internal/entity"
	"github.com/vadiminshakov/papertrader/pkg/retrier"
	"go.uber.org/zap"
)

// flakyPricer fails the first failures calls, then quotes price.
type flakyPricer struct {
	failures int
	calls    int
	price    decimal.Decimal
	err      error
}

func (f *flakyPricer) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return decimal.Decimal{}, f.err
	}
	if f.calls <= f.failures {
		return decimal.Decimal{}, errors.New("feed unavailable")
	}
	return f.price, nil
}

func fastRetrier() *retrier.Retrier {
	return retrier.New(retrier.WithMaxRetries(3), retrier.WithInitialInterval(time.Millisecond))
}

func TestRetryingPricer_RecoversFromTransientFailures(t *testing.T) {
	next := &flakyPricer{failures: 2, price: decimal.NewFromInt(150)}
	p, err := NewRetryingPricer(next, fastRetrier(), zap.NewNop())
	require.NoError(t, err)

	price, err := p.GetPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 3, next.calls)
}

func TestRetryingPricer_UnknownSymbolNotRetried(t *testing.T) {
	next := &flakyPricer{err: entity.UnknownSymbol("XYZ")}
	p, err := NewRetryingPricer(next, fastRetrier(), nil)
	require.NoError(t, err)

	_, err = p.GetPrice(context.Background(), "XYZ")
	require.ErrorIs(t, err, entity.ErrUnknownSymbol)
	assert.Equal(t, 1, next.calls)
}

func TestRetryingPricer_GivesUp(t *testing.T) {
	next := &flakyPricer{failures: 100}
	p, err := NewRetryingPricer(next, fastRetrier(), nil)
	require.NoError(t, err)

	_, err = p.GetPrice(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, 4, next.calls)
}

func TestRetryingPricer_DefaultRetrierSkipsDoneContext(t *testing.T) {
	next := &flakyPricer{err: context.DeadlineExceeded}
	p, err := NewRetryingPricer(next, nil, nil)
	require.NoError(t, err)

	_, err = p.GetPrice(context.Background(), "AAPL")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, next.calls)
}

func TestTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "feed failure", err: errors.New("feed unavailable"), want: true},
		{name: "unknown symbol", err: entity.UnknownSymbol("XYZ"), want: false},
		{name: "wrapped unknown symbol", err: errors.Wrap(entity.ErrUnknownSymbol, "quote"), want: false},
		{name: "canceled", err: errors.Wrap(context.Canceled, "quote"), want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transient(tt.err))
		})
	}
}

func TestNewRetryingPricer_RequiresPricer(t *testing.T) {
	_, err := NewRetryingPricer(nil, nil, nil)
	assert.Error(t, err)
}
