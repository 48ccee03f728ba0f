package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHoldings_Clone(t *testing.T) {
	h := Holdings{"AAPL": 5, "TSLA": 1}
	clone := h.Clone()
	clone["AAPL"] = 100
	delete(clone, "TSLA")

	assert.Equal(t, Holdings{"AAPL": 5, "TSLA": 1}, h)
	assert.Equal(t, []string{"AAPL", "TSLA"}, h.Symbols())
}

func TestNewValuation(t *testing.T) {
	v := NewValuation(decimal.NewFromInt(100), []Position{
		NewPosition("AAPL", 2, decimal.NewFromInt(150)),
		NewPosition("GOOGL", 1, decimal.NewFromInt(2800)),
	})

	assert.True(t, v.Positions[0].Value.Equal(decimal.NewFromInt(300)))
	assert.True(t, v.Holdings.Equal(decimal.NewFromInt(3100)))
	assert.True(t, v.Total.Equal(decimal.NewFromInt(3200)))

	empty := NewValuation(decimal.NewFromInt(7), nil)
	assert.True(t, empty.Holdings.IsZero())
	assert.True(t, empty.Total.Equal(decimal.NewFromInt(7)))
}
