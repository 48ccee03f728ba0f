// Package retrier re-runs failing operations with capped exponential backoff.
package retrier

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Backoff is the retry schedule. The zero value retries immediately, once.
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Retries    int
	// Jitter spreads each pause by up to ±Jitter of its length.
	Jitter float64
}

// DefaultBackoff is 200ms doubling to at most 5s, three retries, 10% jitter.
var DefaultBackoff = Backoff{
	Initial:    200 * time.Millisecond,
	Max:        5 * time.Second,
	Multiplier: 2,
	Retries:    3,
	Jitter:     0.1,
}

// Delay returns the un-jittered pause before retry n, counting from 1.
func (b Backoff) Delay(n int) time.Duration {
	if n < 1 {
		return 0
	}
	d := float64(b.Initial)
	for i := 1; i < n; i++ {
		d *= b.Multiplier
		if b.Max > 0 && d >= float64(b.Max) {
			return b.Max
		}
	}
	if b.Max > 0 && d > float64(b.Max) {
		return b.Max
	}
	return time.Duration(d)
}

// Retrier runs an operation until it succeeds, fails permanently, or the schedule is spent.
type Retrier struct {
	backoff   Backoff
	retryable func(error) bool
	sleep     func(ctx context.Context, d time.Duration) error
	random    func() float64
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithInitialInterval sets the pause before the first retry.
func WithInitialInterval(d time.Duration) Option {
	return func(r *Retrier) { r.backoff.Initial = d }
}

// WithMaxInterval caps every pause.
func WithMaxInterval(d time.Duration) Option {
	return func(r *Retrier) { r.backoff.Max = d }
}

// WithMultiplier sets the growth factor between pauses.
func WithMultiplier(m float64) Option {
	return func(r *Retrier) { r.backoff.Multiplier = m }
}

// WithMaxRetries sets how many attempts follow the first one.
func WithMaxRetries(n int) Option {
	return func(r *Retrier) { r.backoff.Retries = n }
}

// WithJitter sets the jitter factor (0.0 to 1.0).
func WithJitter(j float64) Option {
	return func(r *Retrier) { r.backoff.Jitter = j }
}

// WithRetryable sets the predicate deciding whether an error is worth another attempt.
// Errors marked with Permanent are never retried regardless of the predicate.
func WithRetryable(fn func(error) bool) Option {
	return func(r *Retrier) { r.retryable = fn }
}

// WithSleep replaces the wait between attempts.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Retrier) { r.sleep = fn }
}

// New returns a Retrier on DefaultBackoff with opts applied.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		backoff: DefaultBackoff,
		sleep:   sleepCtx,
		random:  rand.Float64,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backoff returns the schedule r follows.
func (r *Retrier) Backoff() Backoff { return r.backoff }

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err so that Do returns it without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

func (r *Retrier) pause(n int) time.Duration {
	d := r.backoff.Delay(n)
	if r.backoff.Jitter > 0 {
		d += time.Duration((r.random()*2 - 1) * r.backoff.Jitter * float64(d))
	}
	return max(d, 0)
}

func (r *Retrier) giveUp(err error) bool {
	if IsPermanent(err) {
		return true
	}
	return r.retryable != nil && !r.retryable(err)
}

// Do calls fn until it returns nil, a permanent error, or retries run out.
// A permanent error is returned without its marker. A cancelled ctx ends the
// wait between attempts with ctx.Err().
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	for n := 1; err != nil && !r.giveUp(err) && n <= r.backoff.Retries; n++ {
		if serr := r.sleep(ctx, r.pause(n)); serr != nil {
			return serr
		}
		err = fn(ctx)
	}

	var p *permanentError
	if errors.As(err, &p) {
		return p.err
	}
	return err
}

// DoWithData is Do for operations that produce a value.
func DoWithData[T any](r *Retrier, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}
