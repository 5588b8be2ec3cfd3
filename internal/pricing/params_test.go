package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"trade-reconciler/internal/config"
)

func TestParseFullForm(t *testing.T) {
	params, err := Parse("10 5.5 XP 1 1 oak_log", config.DefaultCurrencyTable())

	assert.NoError(t, err)
	assert.True(t, params.BuyPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, params.SellPrice.Equal(decimal.RequireFromString("5.5")))
	assert.Equal(t, "XP", params.Unit)
	assert.True(t, params.IgnoreOwner)
	assert.True(t, params.IgnoreCorrectTrades)
	assert.Equal(t, "oak_log", params.ItemFilter)
}

func TestParseDefaults(t *testing.T) {
	params, err := Parse("10 5 CS", config.DefaultCurrencyTable())

	assert.NoError(t, err)
	assert.False(t, params.IgnoreOwner)
	assert.False(t, params.IgnoreCorrectTrades)
	assert.Empty(t, params.ItemFilter)
}

func TestParseUnitIsCaseInsensitive(t *testing.T) {
	params, err := Parse("1 1 cxp", config.DefaultCurrencyTable())

	assert.NoError(t, err)
	assert.Equal(t, "CXP", params.Unit)
}

func TestParseFailures(t *testing.T) {
	table := config.DefaultCurrencyTable()

	for _, text := range []string{
		"",
		"10",
		"10 5",        // unit missing
		"10 5 GOLD",   // unknown unit
		"-10 5 XP",    // negative price
		"ten five XP", // non-numeric prices
	} {
		_, err := Parse(text, table)
		assert.Error(t, err, "input %q", text)

		var perr *ErrParse
		assert.ErrorAs(t, err, &perr, "input %q", text)
	}
}
