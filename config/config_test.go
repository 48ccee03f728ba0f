package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func parseArgs(args ...string) (Config, error) {
	return parse(flag.NewFlagSet("test", flag.ContinueOnError), args)
}

func TestParse_Defaults(t *testing.T) {
	c, err := parseArgs()
	require.NoError(t, err)

	assert.Equal(t, "USD", c.Currency)
	assert.True(t, c.InitialDeposit.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, zapcore.InfoLevel, c.LogLevel)
	assert.Equal(t, "papertrader.log", c.LogFile)
	assert.Equal(t, []string{"AAPL", "GOOGL", "TSLA"}, c.Symbols())
	assert.True(t, c.Prices["GOOGL"].Equal(decimal.NewFromInt(2800)))
	assert.Equal(t, 3, c.PriceRetries)
	assert.Equal(t, 200*time.Millisecond, c.PriceBackoff)
}

func TestParse_Flags(t *testing.T) {
	c, err := parseArgs(
		"-currency", "eur",
		"-deposit", "2500.50",
		"-prices", " msft=410.5, aapl=150 ",
		"-loglevel", "debug",
		"-logfile", "out.log",
		"-priceretries", "0",
		"-pricebackoff", "1s",
	)
	require.NoError(t, err)

	assert.Equal(t, "EUR", c.Currency)
	assert.True(t, c.InitialDeposit.Equal(decimal.RequireFromString("2500.50")))
	assert.Equal(t, zapcore.DebugLevel, c.LogLevel)
	assert.Equal(t, "out.log", c.LogFile)
	assert.Equal(t, []string{"AAPL", "MSFT"}, c.Symbols())
	assert.True(t, c.Prices["MSFT"].Equal(decimal.RequireFromString("410.5")))
	assert.Equal(t, 0, c.PriceRetries)
	assert.Equal(t, time.Second, c.PriceBackoff)
}

func TestParse_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad currency", args: []string{"-currency", "XXXX"}},
		{name: "zero deposit", args: []string{"-deposit", "0"}},
		{name: "non numeric deposit", args: []string{"-deposit", "abc"}},
		{name: "price without equals", args: []string{"-prices", "AAPL150"}},
		{name: "negative price", args: []string{"-prices", "AAPL=-1"}},
		{name: "empty symbol", args: []string{"-prices", "=10"}},
		{name: "duplicate symbol", args: []string{"-prices", "aapl=1,AAPL=2"}},
		{name: "bad level", args: []string{"-loglevel", "loud"}},
		{name: "negative retries", args: []string{"-priceretries", "-1"}},
		{name: "bad backoff", args: []string{"-pricebackoff", "soon"}},
		{name: "zero backoff", args: []string{"-pricebackoff", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParse_Yaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `currency: GBP
initial_deposit: "5000"
prices:
  VOD: "0.72"
  bp: "4.85"
log_level: warn
price_retries: 5
price_backoff: 50ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := parseArgs("-config", path, "-currency", "USD")
	require.NoError(t, err)

	assert.Equal(t, "GBP", c.Currency, "yaml wins over flags")
	assert.True(t, c.InitialDeposit.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, zapcore.WarnLevel, c.LogLevel)
	assert.Equal(t, "papertrader.log", c.LogFile)
	assert.Equal(t, []string{"BP", "VOD"}, c.Symbols())
	assert.True(t, c.Prices["VOD"].Equal(decimal.RequireFromString("0.72")))
	assert.Equal(t, 5, c.PriceRetries)
	assert.Equal(t, 50*time.Millisecond, c.PriceBackoff)
}

func TestParse_YamlErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := parseArgs("-config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("prices: [1, 2"), 0o644))
	_, err = parseArgs("-config", bad)
	assert.Error(t, err)

	zero := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("prices:\n  AAPL: \"0\"\n"), 0o644))
	_, err = parseArgs("-config", zero)
	assert.Error(t, err)
}

