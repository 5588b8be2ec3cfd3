package mistrade

import (
	"sort"

	"github.com/shopspring/decimal"

	"trade-reconciler/internal/model"
)

// Classifier computes, per player, the deviation between what was paid and
// what the configured prices expect, plus any use of currency from outside
// the settlement unit's exchange track. The computation is purely
// algebraic; it never branches on player identity.
type Classifier struct {
	table *model.CurrencyTable
}

func New(table *model.CurrencyTable) *Classifier {
	return &Classifier{table: table}
}

// Classify evaluates every player in the ledger. Only players with a
// nonzero deviation or a wrong-track payment appear in the result; a
// deviation of exactly zero is "no deviation" and is omitted. Wrong-track
// amounts never contribute to the paid value; mismatch and deviation are
// independent signals.
func (c *Classifier) Classify(ledger model.PlayerLedger, params model.PricingParameters) model.MistradeResult {
	settlement, ok := c.table.ByLabel(params.Unit)
	if !ok {
		return model.MistradeResult{}
	}

	result := make(model.MistradeResult)

	for player, items := range ledger {
		productDelta := 0
		paidBase := decimal.Zero
		var wrong []string

		for item, count := range items {
			denom, isCurrency := c.table.ByItem(item)
			if !isCurrency {
				productDelta += count
				continue
			}
			if denom.Track != settlement.Track {
				wrong = append(wrong, denom.Label)
				continue
			}
			paidBase = paidBase.Add(decimal.NewFromInt(int64(count)).Mul(denom.MultiplierDecimal()))
		}

		// Multipliers are powers of two, so dividing down to settlement
		// units stays exact well within decimal's division precision.
		paid := paidBase.Div(settlement.MultiplierDecimal())

		// Expected signed currency movement: buyers put currency in, so a
		// sale by the shop expects +|delta|*buy; sellers take currency out,
		// so a purchase by the shop expects -delta*sell.
		var expected decimal.Decimal
		switch {
		case productDelta < 0:
			expected = decimal.NewFromInt(int64(-productDelta)).Mul(params.BuyPrice)
		case productDelta > 0:
			expected = decimal.NewFromInt(int64(productDelta)).Mul(params.SellPrice).Neg()
		default:
			expected = decimal.Zero
		}

		deviation := paid.Sub(expected)

		verdict := model.PlayerVerdict{}
		if !deviation.IsZero() {
			d := deviation
			verdict.PaymentDeviation = &d
		}
		if len(wrong) > 0 {
			sort.Strings(wrong)
			verdict.WrongCurrencies = wrong
		}

		if verdict.PaymentDeviation != nil || len(verdict.WrongCurrencies) > 0 {
			result[player] = verdict
		}
	}

	return result
}
