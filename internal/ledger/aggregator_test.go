package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trade-reconciler/internal/classifier"
	"trade-reconciler/internal/config"
	"trade-reconciler/internal/model"
)

const logPrefix = "[12:34:56] [Render thread/INFO]: [System] [CHAT] "

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	c, err := classifier.New(classifier.Rules{
		ActionColor: cfg.ActionColorPattern,
		ActionPlain: cfg.ActionPlainPattern,
		Page:        cfg.PagePattern,
		Coordinate:  cfg.CoordPattern,
		CoordSuffix: cfg.CoordSuffix,
	})
	if err != nil {
		t.Fatalf("failed to compile rules: %v", err)
	}
	return New(c)
}

func added(player, item string, count string) string {
	return logPrefix + "3.5/h ago §a+ " + player + "§f added x" + count + " " + item + "§f."
}

func removed(player, item string, count string) string {
	return logPrefix + "3.5/h ago §c- " + player + "§f removed x" + count + " " + item + "§f."
}

func session(lines ...string) model.TradeSession {
	return model.TradeSession{Coordinate: model.Coordinate{X: 1, Y: 2, Z: 3}, Lines: lines}
}

func TestAggregateSumsAcrossSessions(t *testing.T) {
	a := newTestAggregator(t)

	out := a.Aggregate([]model.TradeSession{
		session(added("Steve", "oak_log", "5"), "f1/2"),
		session(removed("Steve", "oak_log", "2"), added("Alex", "gray_dye", "4")),
	}, nil)

	assert.Equal(t, model.PlayerLedger{
		"Steve": {"oak_log": 3},
		"Alex":  {"gray_dye": 4},
	}, out)
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	a := newTestAggregator(t)

	lines := []string{
		added("Steve", "oak_log", "5"),
		removed("Steve", "oak_log", "2"),
		added("Steve", "experience_bottle", "10"),
	}
	reversed := []string{lines[2], lines[1], lines[0]}

	forward := a.Aggregate([]model.TradeSession{session(lines...)}, nil)
	backward := a.Aggregate([]model.TradeSession{session(reversed...)}, nil)

	assert.Equal(t, forward, backward)
}

func TestAggregateRoundTripIsZero(t *testing.T) {
	a := newTestAggregator(t)

	out := a.Aggregate([]model.TradeSession{
		session(added("Steve", "oak_log", "7"), removed("Steve", "oak_log", "7")),
	}, nil)

	assert.Equal(t, 0, out["Steve"]["oak_log"])
}

func TestAggregateSkipsIgnoredPlayers(t *testing.T) {
	a := newTestAggregator(t)

	out := a.Aggregate([]model.TradeSession{
		session(added("XmasTiramisu", "oak_log", "5"), added("Alex", "oak_log", "1")),
	}, map[string]struct{}{"XmasTiramisu": {}})

	assert.NotContains(t, out, "XmasTiramisu")
	assert.Contains(t, out, "Alex")
}

func TestFilterByItemKeepsWholePlayer(t *testing.T) {
	full := model.PlayerLedger{
		"Steve": {"oak_log": 5, "experience_bottle": 9},
		"Alex":  {"gray_dye": 4},
	}

	// The filter drops players without the item but never trims the
	// surviving player's other entries.
	assert.Equal(t, model.PlayerLedger{
		"Steve": {"oak_log": 5, "experience_bottle": 9},
	}, FilterByItem(full, "oak_log"))

	assert.Equal(t, full, FilterByItem(full, ""))
}

func TestCurrencyMovementUnaffectedByFilter(t *testing.T) {
	table := config.DefaultCurrencyTable()
	full := model.PlayerLedger{
		"Steve": {"oak_log": 5},
		"Alex":  {"experience_bottle": 25},
	}

	// Totals taken before filtering still see the payer the filter drops.
	totals := CurrencyMovement(full, table)
	filtered := FilterByItem(full, "oak_log")

	assert.NotContains(t, filtered, "Alex")
	assert.Equal(t, map[string]int{"XP": 25}, totals)
}

func TestCurrencyMovement(t *testing.T) {
	table := config.DefaultCurrencyTable()

	totals := CurrencyMovement(model.PlayerLedger{
		"Steve": {"experience_bottle": 10, "oak_log": -3},
		"Alex":  {"experience_bottle": -4, "gray_dye": 2, "prismarine_shard": 5},
		"Bob":   {"prismarine_shard": -5},
	}, table)

	// Zero aggregates (CS here) disappear entirely.
	assert.Equal(t, map[string]int{"XP": 6, "AR": 2}, totals)
}
