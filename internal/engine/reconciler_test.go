package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"trade-reconciler/internal/classifier"
	"trade-reconciler/internal/config"
)

const logPrefix = "[12:34:56] [Render thread/INFO]: [System] [CHAT] "

func newTestReconciler(t *testing.T, ignore map[string]struct{}) *Reconciler {
	t.Helper()
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	r, err := NewReconciler(classifier.Rules{
		ActionColor: cfg.ActionColorPattern,
		ActionPlain: cfg.ActionPlainPattern,
		Page:        cfg.PagePattern,
		Coordinate:  cfg.CoordPattern,
		CoordSuffix: cfg.CoordSuffix,
	}, config.DefaultCurrencyTable(), ignore, cfg.ChunkLimit, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to build reconciler: %v", err)
	}
	return r
}

func TestRunEndToEnd(t *testing.T) {
	r := newTestReconciler(t, nil)

	result := r.Run([]string{
		"(x1/y2/z3)",
		logPrefix + "3.5/h ago §c- Steve§f removed x3 oak_log§f.",
		logPrefix + "3.4/h ago §a+ Steve§f added x25 experience_bottle§f.",
		"f1/1",
	}, "10 5 XP")

	assert.False(t, result.NoSessions)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, -3, result.Ledger["Steve"]["oak_log"])
	assert.Equal(t, 25, result.Ledger["Steve"]["experience_bottle"])
	assert.Contains(t, result.Mistrades, "Steve")

	text := strings.Join(result.Chunks, "\n")
	assert.Contains(t, text, "(x1/y2/z3): 3 line(s)")
	assert.Contains(t, text, " └ payment deviation: -5 XP")
}

func TestRunMalformedParamsDowngrades(t *testing.T) {
	r := newTestReconciler(t, nil)

	result := r.Run([]string{
		"(x1/y2/z3)",
		logPrefix + "3.5/h ago §a+ Steve§f added x5 oak_log§f.",
	}, "not a parameter string")

	// Raw deltas survive; classification does not.
	assert.Len(t, result.Warnings, 1)
	assert.Empty(t, result.Mistrades)
	assert.Equal(t, 5, result.Ledger["Steve"]["oak_log"])
	assert.Contains(t, strings.Join(result.Chunks, "\n"), "⚠")
}

func TestRunNoSessions(t *testing.T) {
	r := newTestReconciler(t, nil)

	result := r.Run([]string{"chatter", "more chatter"}, "10 5 XP")

	assert.True(t, result.NoSessions)
	assert.Equal(t, []string{NoSessionsMessage}, result.Chunks)
	assert.Empty(t, result.Ledger)
}

func TestRunItemFilterKeepsCurrencySummary(t *testing.T) {
	r := newTestReconciler(t, nil)

	result := r.Run([]string{
		"(x1/y2/z3)",
		logPrefix + "3.5/h ago §a+ Steve§f added x5 oak_log§f.",
		logPrefix + "3.4/h ago §a+ Alex§f added x25 experience_bottle§f.",
	}, "10 5 XP 0 0 oak_log")

	// The filter narrows the player listing, not the movement summary:
	// the payer drops out of the ledger but their currency still counts.
	assert.NotContains(t, result.Ledger, "Alex")
	assert.Contains(t, result.Ledger, "Steve")

	text := strings.Join(result.Chunks, "\n")
	assert.Contains(t, text, " └ XP +25")
	assert.NotContains(t, text, "no currency movement")
}

func TestRunIgnoreOwnerFlag(t *testing.T) {
	ignore := map[string]struct{}{"XmasTiramisu": {}}
	lines := []string{
		"(x1/y2/z3)",
		logPrefix + "3.5/h ago §a+ XmasTiramisu§f added x5 oak_log§f.",
		logPrefix + "3.5/h ago §a+ Alex§f added x2 oak_log§f.",
	}

	r := newTestReconciler(t, ignore)

	// The ignore list only applies when the flag asks for it.
	withFlag := r.Run(lines, "10 5 XP 1")
	assert.NotContains(t, withFlag.Ledger, "XmasTiramisu")
	assert.Contains(t, withFlag.Ledger, "Alex")

	withoutFlag := r.Run(lines, "10 5 XP")
	assert.Contains(t, withoutFlag.Ledger, "XmasTiramisu")
}
