package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemEvent 代表一行容器日志里的一次物品变动
type ItemEvent struct {
	Player string `json:"player"`
	Item   string `json:"item"`
	// positive = added to the shop container, negative = removed
	Count int `json:"count"`
}

// PageMarker 分页行，本身不携带物品变动
type PageMarker struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Coordinate 店铺坐标，作为会话的 key
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(x%d/y%d/z%d)", c.X, c.Y, c.Z)
}

// CoordinateMarker 坐标标记行。Automatic 标记由游戏端在事件行之后追加，
// 需要分段器回看前一行
type CoordinateMarker struct {
	Coordinate
	Automatic bool `json:"automatic"`
}

// TradeSession 一个坐标下按顺序累积的原始行
type TradeSession struct {
	Coordinate Coordinate `json:"coordinate"`
	Lines      []string   `json:"lines"`
}

// PlayerLedger player -> item -> signed quantity total
type PlayerLedger map[string]map[string]int

// Add accumulates a signed count for a (player, item) pair.
func (l PlayerLedger) Add(player, item string, count int) {
	items, ok := l[player]
	if !ok {
		items = make(map[string]int)
		l[player] = items
	}
	items[item] += count
}

// PricingParameters 解析后的定价参数，解析成功后不可变
type PricingParameters struct {
	BuyPrice            decimal.Decimal `json:"buy_price"`
	SellPrice           decimal.Decimal `json:"sell_price"`
	Unit                string          `json:"unit"`
	IgnoreOwner         bool            `json:"ignore_owner"`
	IgnoreCorrectTrades bool            `json:"ignore_correct_trades"`
	ItemFilter          string          `json:"item_filter,omitempty"`
}

// PlayerVerdict is the per-player outcome of mistrade classification.
// PaymentDeviation is nil when payment matched expectation exactly.
type PlayerVerdict struct {
	PaymentDeviation *decimal.Decimal `json:"payment_deviation,omitempty"`
	WrongCurrencies  []string         `json:"wrong_currencies,omitempty"`
}

// MistradeResult player -> verdict
type MistradeResult map[string]PlayerVerdict
