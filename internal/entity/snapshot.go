package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSnapshot is the account state right after a committed operation.
type AccountSnapshot struct {
	Timestamp        time.Time
	Cash             decimal.Decimal
	Holdings         Holdings
	TransactionCount int
	Last             Transaction
}
