// Command papertrader runs an interactive single-account trading simulator.
// Shares are priced from a fixed quote table that can be configured via a
// YAML file or command-line arguments.
//
// Usage:
//
//	papertrader --config config.yaml
//	papertrader --prices AAPL=150,TSLA=700 --deposit 5000
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vadiminshakov/papertrader/config"
	"github.com/vadiminshakov/papertrader/internal/entity"
	"github.com/vadiminshakov/papertrader/internal/events"
	"github.com/vadiminshakov/papertrader/internal/services/ledger"
	"github.com/vadiminshakov/papertrader/internal/services/pricer"
	"github.com/vadiminshakov/papertrader/internal/ui"
	"github.com/vadiminshakov/papertrader/pkg/retrier"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("simulator stopped", zap.Error(err))
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	quotes, err := pricer.NewTablePricer(cfg.Prices)
	if err != nil {
		return err
	}
	prices, err := pricer.NewRetryingPricer(quotes, retrier.New(
		retrier.WithMaxRetries(cfg.PriceRetries),
		retrier.WithInitialInterval(cfg.PriceBackoff),
		retrier.WithRetryable(pricer.Transient),
	), logger)
	if err != nil {
		return err
	}

	broadcaster := events.NewBroadcaster(64)
	defer broadcaster.Close()
	go logSnapshots(broadcaster.Subscribe(), logger)

	account, err := ledger.NewAccount(prices, logger, ledger.WithPublisher(broadcaster))
	if err != nil {
		return err
	}

	formatter, err := ui.NewFormatter(cfg.Currency)
	if err != nil {
		return err
	}

	logger.Info("simulator started",
		zap.String("currency", cfg.Currency),
		zap.Strings("symbols", quotes.Symbols()),
		zap.Int("price_retries", cfg.PriceRetries))

	tui := ui.NewTUI(ui.NewSession(account, prices, formatter), os.Stdout, logger, quotes.Symbols(), cfg.InitialDeposit)
	return tui.Run(ctx)
}

func logSnapshots(ch <-chan entity.AccountSnapshot, logger *zap.Logger) {
	for s := range ch {
		logger.Debug("account snapshot",
			zap.String("cash", s.Cash.String()),
			zap.Int("holdings", len(s.Holdings)),
			zap.Int("transactions", s.TransactionCount),
			zap.String("last", s.Last.Kind.String()),
			zap.String("last_id", s.Last.ID))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
