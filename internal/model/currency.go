package model

import "github.com/shopspring/decimal"

// Denomination describes one currency denomination: the in-game item id it
// appears as in container logs, its display label, the exchange track it
// belongs to and its multiplier relative to the track's base unit.
type Denomination struct {
	ItemID     string
	Label      string
	Track      string
	Multiplier int64
}

// CurrencyTable 货币表：按物品 id 和按 label 两种索引
type CurrencyTable struct {
	byItem  map[string]Denomination
	byLabel map[string]Denomination
}

func NewCurrencyTable(denoms []Denomination) *CurrencyTable {
	t := &CurrencyTable{
		byItem:  make(map[string]Denomination, len(denoms)),
		byLabel: make(map[string]Denomination, len(denoms)),
	}
	for _, d := range denoms {
		t.byItem[d.ItemID] = d
		t.byLabel[d.Label] = d
	}
	return t
}

// ByItem looks a denomination up by container-log item id.
func (t *CurrencyTable) ByItem(itemID string) (Denomination, bool) {
	d, ok := t.byItem[itemID]
	return d, ok
}

// ByLabel looks a denomination up by its display label (e.g. "CXP").
func (t *CurrencyTable) ByLabel(label string) (Denomination, bool) {
	d, ok := t.byLabel[label]
	return d, ok
}

// Labels returns all denomination labels, unordered.
func (t *CurrencyTable) Labels() []string {
	labels := make([]string, 0, len(t.byLabel))
	for l := range t.byLabel {
		labels = append(labels, l)
	}
	return labels
}

// Multiplier returns the denomination's track-base multiplier as a decimal.
func (d Denomination) MultiplierDecimal() decimal.Decimal {
	return decimal.NewFromInt(d.Multiplier)
}
