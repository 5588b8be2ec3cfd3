package pricing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"trade-reconciler/internal/model"
)

// ErrParse is the failure every grammar deviation maps to. Callers treat it
// as "cannot classify mistrades" and may still report raw deltas.
type ErrParse struct {
	Input string
	Units []string
}

func (e *ErrParse) Error() string {
	msg := fmt.Sprintf("invalid pricing parameters %q: want \"<buyPrice> <sellPrice> <unit> [0|1] [0|1] [itemFilter]\"", e.Input)
	if len(e.Units) > 0 {
		msg += ", units: " + strings.Join(e.Units, ", ")
	}
	return msg
}

func parseFailure(text string, table *model.CurrencyTable) *ErrParse {
	units := table.Labels()
	sort.Strings(units)
	return &ErrParse{Input: text, Units: units}
}

// Grammar: buy price, sell price, settlement unit, then optional
// ignore-owner flag, ignore-correct-trades flag and item filter.
var paramPattern = regexp.MustCompile(
	`^(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s+([A-Za-z]+)(?:\s+(0|1))?(?:\s+(0|1))?(?:\s+(.+))?$`)

// Parse parses the compact parameter string. The unit is case-insensitive
// and must be a denomination label known to the currency table. There are
// no partial parses: anything off-grammar is an *ErrParse.
func Parse(text string, table *model.CurrencyTable) (model.PricingParameters, error) {
	m := paramPattern.FindStringSubmatch(text)
	if m == nil {
		return model.PricingParameters{}, parseFailure(text, table)
	}

	unit := strings.ToUpper(m[3])
	if _, ok := table.ByLabel(unit); !ok {
		return model.PricingParameters{}, parseFailure(text, table)
	}

	buy, err := decimal.NewFromString(m[1])
	if err != nil {
		return model.PricingParameters{}, parseFailure(text, table)
	}
	sell, err := decimal.NewFromString(m[2])
	if err != nil {
		return model.PricingParameters{}, parseFailure(text, table)
	}

	return model.PricingParameters{
		BuyPrice:            buy,
		SellPrice:           sell,
		Unit:                unit,
		IgnoreOwner:         m[4] == "1",
		IgnoreCorrectTrades: m[5] == "1",
		ItemFilter:          m[6],
	}, nil
}
