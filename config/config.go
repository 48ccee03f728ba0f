package config

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/papertrader/internal/entity"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultCurrency       = "USD"
	defaultInitialDeposit = "1000"
	defaultLogLevel       = "info"
	defaultLogFile        = "papertrader.log"
	defaultPriceRetries   = 3
	defaultPriceBackoff   = "200ms"
)

var defaultPrices = map[string]string{
	"AAPL":  "150",
	"TSLA":  "700",
	"GOOGL": "2800",
}

// Config is the validated application configuration.
type Config struct {
	Currency       string
	InitialDeposit decimal.Decimal
	Prices         map[string]decimal.Decimal
	LogLevel       zapcore.Level
	LogFile        string
	// PriceRetries is how many times a failed quote is retried.
	PriceRetries int
	// PriceBackoff is the pause before the first retry. It doubles per attempt.
	PriceBackoff time.Duration
}

// ConfigTmp is the on-disk YAML form. Decimals are kept as strings.
type ConfigTmp struct {
	Currency       string            `yaml:"currency,omitempty"`
	InitialDeposit string            `yaml:"initial_deposit,omitempty"`
	Prices         map[string]string `yaml:"prices,omitempty"`
	LogLevel       string            `yaml:"log_level,omitempty"`
	LogFile        string            `yaml:"log_file,omitempty"`
	PriceRetries   *int              `yaml:"price_retries,omitempty"`
	PriceBackoff   string            `yaml:"price_backoff,omitempty"`
}

// Get reads configuration from the YAML file named by -config, or from flags.
func Get() (Config, error) {
	return parse(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) (Config, error) {
	path := fs.String("config", "", "path to yaml config")
	currency := fs.String("currency", defaultCurrency, "display currency, example: USD")
	deposit := fs.String("deposit", defaultInitialDeposit, "suggested initial deposit")
	prices := fs.String("prices", "", "quote table, example: AAPL=150,TSLA=700")
	logLevel := fs.String("loglevel", defaultLogLevel, "log level: debug, info, warn, error")
	logFile := fs.String("logfile", defaultLogFile, "log output file")
	priceRetries := fs.Int("priceretries", defaultPriceRetries, "retries for a failed price lookup")
	priceBackoff := fs.String("pricebackoff", defaultPriceBackoff, "pause before the first price retry, example: 200ms")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *path != "" {
		return getYaml(*path)
	}

	tmp := ConfigTmp{
		Currency:       *currency,
		InitialDeposit: *deposit,
		LogLevel:       *logLevel,
		LogFile:        *logFile,
		PriceRetries:   priceRetries,
		PriceBackoff:   *priceBackoff,
	}
	if *prices != "" {
		table, err := parsePriceList(*prices)
		if err != nil {
			return Config{}, fmt.Errorf("invalid --prices provided, --prices=%s: %w", *prices, err)
		}
		tmp.Prices = table
	}

	return tmp.toConfig()
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, fmt.Errorf("decode yaml config %s: %w", path, err)
	}

	return tmp.toConfig()
}

func (c ConfigTmp) toConfig() (Config, error) {
	if c.Currency == "" {
		c.Currency = defaultCurrency
	}
	if c.InitialDeposit == "" {
		c.InitialDeposit = defaultInitialDeposit
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	if len(c.Prices) == 0 {
		c.Prices = defaultPrices
	}
	if c.PriceBackoff == "" {
		c.PriceBackoff = defaultPriceBackoff
	}
	retries := defaultPriceRetries
	if c.PriceRetries != nil {
		retries = *c.PriceRetries
	}
	if retries < 0 {
		return Config{}, fmt.Errorf("incorrect 'price_retries' param in config: must not be negative, got %d", retries)
	}
	backoff, err := time.ParseDuration(c.PriceBackoff)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'price_backoff' param in config, error: %w", err)
	}
	if backoff <= 0 {
		return Config{}, fmt.Errorf("incorrect 'price_backoff' param in config: must be positive, got %s", backoff)
	}

	currency := strings.ToUpper(strings.TrimSpace(c.Currency))
	if money.GetCurrency(currency) == nil {
		return Config{}, fmt.Errorf("incorrect 'currency' param in config: unknown currency %q", c.Currency)
	}

	deposit, err := decimal.NewFromString(c.InitialDeposit)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'initial_deposit' param in config (must be a decimal), error: %w", err)
	}
	if !deposit.IsPositive() {
		return Config{}, fmt.Errorf("incorrect 'initial_deposit' param in config: must be greater than zero, got %s", deposit)
	}

	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'log_level' param in config, error: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(c.Prices))
	for rawSymbol, rawPrice := range c.Prices {
		symbol := entity.NormalizeSymbol(rawSymbol)
		if symbol == "" {
			return Config{}, fmt.Errorf("incorrect 'prices' param in config: empty symbol")
		}
		if _, dup := prices[symbol]; dup {
			return Config{}, fmt.Errorf("incorrect 'prices' param in config: duplicate symbol %s", symbol)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rawPrice))
		if err != nil {
			return Config{}, fmt.Errorf("incorrect price for %s in config (must be a decimal), error: %w", symbol, err)
		}
		if !price.IsPositive() {
			return Config{}, fmt.Errorf("incorrect price for %s in config: must be greater than zero, got %s", symbol, price)
		}
		prices[symbol] = price
	}

	return Config{
		Currency:       currency,
		InitialDeposit: deposit,
		Prices:         prices,
		LogLevel:       level,
		LogFile:        c.LogFile,
		PriceRetries:   retries,
		PriceBackoff:   backoff,
	}, nil
}

// parsePriceList parses "AAPL=150,TSLA=700".
func parsePriceList(s string) (map[string]string, error) {
	table := make(map[string]string)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		symbol, price, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("expected SYMBOL=PRICE, got %q", item)
		}
		table[symbol] = price
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no prices given")
	}
	return table, nil
}

// Symbols lists the configured symbols in lexical order.
func (c Config) Symbols() []string {
	symbols := make([]string, 0, len(c.Prices))
	for symbol := range c.Prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
