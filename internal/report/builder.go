package report

import (
	"fmt"
	"sort"
	"strings"

	"trade-reconciler/internal/model"
)

// deviationDigits is the rounding applied to payment deviations for
// display. Round-half-even; the underlying arithmetic is exact.
const deviationDigits = 10

// Report is everything one reconciliation run produced. Params and
// Mistrades are nil/empty when the parameter string failed to parse and
// the run was downgraded to raw deltas only. Currency carries per-label
// movement totals over the unfiltered ledger: an item filter narrows the
// player listing, never the summary.
type Report struct {
	Sessions  []model.TradeSession
	Ledger    model.PlayerLedger
	Currency  map[string]int
	Params    *model.PricingParameters
	Mistrades model.MistradeResult
	Warnings  []string
}

// Render serializes a report into the plain-text form posted to the chat
// channel, one logical line per row so the chunker can split safely.
func Render(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Trade report - %d session(s)\n", len(r.Sessions))
	for _, sess := range r.Sessions {
		fmt.Fprintf(&b, "%s: %d line(s)\n", sess.Coordinate, len(sess.Lines))
	}

	renderCurrencyMovement(&b, r.Currency)
	renderPlayers(&b, r)
	renderMistrades(&b, r)

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "⚠ %s\n", w)
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderCurrencyMovement(b *strings.Builder, totals map[string]int) {
	b.WriteString("Currency movement:\n")

	if len(totals) == 0 {
		b.WriteString(" └ no currency movement\n")
		return
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(b, " └ %s %+d\n", label, totals[label])
	}
}

func renderPlayers(b *strings.Builder, r Report) {
	b.WriteString("Players:\n")

	players := make([]string, 0, len(r.Ledger))
	for player := range r.Ledger {
		// With ignore-correct-trades set, only flagged players are shown.
		if r.Params != nil && r.Params.IgnoreCorrectTrades {
			if _, flagged := r.Mistrades[player]; !flagged {
				continue
			}
		}
		players = append(players, player)
	}
	if len(players) == 0 {
		b.WriteString(" └ none\n")
		return
	}
	sort.Strings(players)

	for _, player := range players {
		fmt.Fprintf(b, "%s\n", player)
		items := make([]string, 0, len(r.Ledger[player]))
		for item := range r.Ledger[player] {
			items = append(items, item)
		}
		sort.Strings(items)
		for _, item := range items {
			fmt.Fprintf(b, " └ %s x%+d\n", item, r.Ledger[player][item])
		}
	}
}

func renderMistrades(b *strings.Builder, r Report) {
	if r.Params == nil {
		return
	}

	fmt.Fprintf(b, "Mistrades (unit %s, buy %s, sell %s):\n",
		r.Params.Unit, r.Params.BuyPrice, r.Params.SellPrice)

	if len(r.Mistrades) == 0 {
		b.WriteString(" └ none\n")
		return
	}

	players := make([]string, 0, len(r.Mistrades))
	for player := range r.Mistrades {
		players = append(players, player)
	}
	sort.Strings(players)

	for _, player := range players {
		verdict := r.Mistrades[player]
		fmt.Fprintf(b, "%s\n", player)
		if verdict.PaymentDeviation != nil {
			fmt.Fprintf(b, " └ payment deviation: %s %s\n",
				verdict.PaymentDeviation.RoundBank(deviationDigits), r.Params.Unit)
		}
		if len(verdict.WrongCurrencies) > 0 {
			fmt.Fprintf(b, " └ wrong currency: %s\n", strings.Join(verdict.WrongCurrencies, ", "))
		}
	}
}
