package ledger

import (
	"trade-reconciler/internal/classifier"
	"trade-reconciler/internal/model"
)

// Aggregator folds session lines into a per-player, per-item signed ledger.
// Addition is commutative, so session and line order never change the
// result.
type Aggregator struct {
	classifier *classifier.Classifier
}

func New(c *classifier.Classifier) *Aggregator {
	return &Aggregator{classifier: c}
}

// Aggregate replays every session's lines through the classifier and sums
// item events. Players on the ignore list are skipped entirely.
func (a *Aggregator) Aggregate(sessions []model.TradeSession, ignore map[string]struct{}) model.PlayerLedger {
	out := make(model.PlayerLedger)

	for _, sess := range sessions {
		for _, line := range sess.Lines {
			res := a.classifier.Classify(line)
			if res.Kind != classifier.KindItemEvent {
				// Page markers and stray markers inside a session carry no
				// item movement.
				continue
			}
			if _, skip := ignore[res.Event.Player]; skip {
				continue
			}
			out.Add(res.Event.Player, res.Event.Item, res.Event.Count)
		}
	}

	return out
}

// FilterByItem keeps only players whose ledger contains that exact item
// key; the whole player record is kept or dropped, never trimmed line by
// line. An empty item returns the ledger unchanged.
func FilterByItem(l model.PlayerLedger, item string) model.PlayerLedger {
	if item == "" {
		return l
	}
	filtered := make(model.PlayerLedger)
	for player, items := range l {
		if _, ok := items[item]; ok {
			filtered[player] = items
		}
	}
	return filtered
}

// CurrencyMovement sums the ledger's per-currency deltas across all
// players, keyed by denomination label. Zero aggregates are omitted.
func CurrencyMovement(l model.PlayerLedger, table *model.CurrencyTable) map[string]int {
	totals := make(map[string]int)
	for _, items := range l {
		for item, count := range items {
			if denom, ok := table.ByItem(item); ok {
				totals[denom.Label] += count
			}
		}
	}
	for label, total := range totals {
		if total == 0 {
			delete(totals, label)
		}
	}
	return totals
}
