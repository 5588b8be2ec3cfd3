package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trade-reconciler/internal/config"
	"trade-reconciler/internal/model"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	c, err := New(Rules{
		ActionColor: cfg.ActionColorPattern,
		ActionPlain: cfg.ActionPlainPattern,
		Page:        cfg.PagePattern,
		Coordinate:  cfg.CoordPattern,
		CoordSuffix: cfg.CoordSuffix,
	})
	if err != nil {
		t.Fatalf("failed to compile rules: %v", err)
	}
	return c
}

const logPrefix = "[12:34:56] [Render thread/INFO]: [System] [CHAT] "

func TestClassifyItemEventColorVariant(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(logPrefix + "3.5/h ago §a+ Steve§f added x5 experience_bottle§f.")
	assert.Equal(t, KindItemEvent, res.Kind)
	assert.Equal(t, "Steve", res.Event.Player)
	assert.Equal(t, "experience_bottle", res.Event.Item)
	assert.Equal(t, 5, res.Event.Count)
}

func TestClassifyItemEventRemovedIsNegative(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(logPrefix + "1.2/d ago §c- Alex§f removed x12 gray_dye§f.")
	assert.Equal(t, KindItemEvent, res.Kind)
	assert.Equal(t, "Alex", res.Event.Player)
	assert.Equal(t, "gray_dye", res.Event.Item)
	assert.Equal(t, -12, res.Event.Count)
}

func TestClassifyItemEventPlainVariantAfterStripping(t *testing.T) {
	c := newTestClassifier(t)

	// §z is not a color code the color template accepts, so this line only
	// matches after the escapes are stripped.
	res := c.Classify(logPrefix + "3.5/h ago §zc- Bob §zf removed x3 nether_star §zf.")
	assert.Equal(t, KindItemEvent, res.Kind)
	assert.Equal(t, "Bob", res.Event.Player)
	assert.Equal(t, "nether_star", res.Event.Item)
	assert.Equal(t, -3, res.Event.Count)
}

func TestClassifyPageMarker(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(logPrefix + "f2/5")
	assert.Equal(t, KindPageMarker, res.Kind)
	assert.Equal(t, model.PageMarker{Current: 2, Total: 5}, res.Page)
	assert.True(t, c.IsPage("f2/5"))
}

func TestClassifyCoordinateMarkers(t *testing.T) {
	c := newTestClassifier(t)

	manual := c.Classify("(x12/y64/z-30)")
	assert.Equal(t, KindCoordinateMarker, manual.Kind)
	assert.Equal(t, model.Coordinate{X: 12, Y: 64, Z: -30}, manual.Marker.Coordinate)
	assert.False(t, manual.Marker.Automatic)

	// The automatic form is the same shape plus the location suffix and
	// must win over the manual pattern.
	auto := c.Classify("(x12/y64/z-30) Market")
	assert.Equal(t, KindCoordinateMarker, auto.Kind)
	assert.Equal(t, model.Coordinate{X: 12, Y: 64, Z: -30}, auto.Marker.Coordinate)
	assert.True(t, auto.Marker.Automatic)
}

func TestClassifyIsTotal(t *testing.T) {
	c := newTestClassifier(t)

	for _, line := range []string{
		"",
		"hello there",
		logPrefix + "someone says added x5 things",
		"(x1/y2)",
	} {
		res := c.Classify(line)
		assert.Equal(t, KindUnrecognized, res.Kind, "line %q", line)
	}
}
