package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIndexSkipsIntermediateMasterwork(t *testing.T) {
	items := map[string]Item{
		"sword-0": {Name: "Soulvenom Sword", Masterwork: json.RawMessage(`0`)},
		"sword-3": {Name: "Soulvenom Sword", Masterwork: json.RawMessage(`"3"`)},
		"sword-4": {Name: "Soulvenom Sword", Masterwork: json.RawMessage(`4`)},
		"charm":   {Name: "Ember Charm"},
	}

	idx := BuildIndex(items)

	assert.Equal(t, 2, idx.Len())
	assert.Len(t, idx.Search("soulvenom"), 1)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	idx := BuildIndex(map[string]Item{
		"a": {Name: "Twisted Companion"},
		"b": {Name: "Companion Flute"},
		"c": {Name: "Unrelated"},
	})

	results := idx.Search("  COMPANION ")
	assert.Len(t, results, 2)
	assert.Empty(t, idx.Search("nothing matches this"))
}

func TestBuildIndexFallsBackToKey(t *testing.T) {
	idx := BuildIndex(map[string]Item{"mystery_key": {}})
	assert.Len(t, idx.Search("mystery"), 1)
}

func TestMasterworkTier(t *testing.T) {
	assert.Equal(t, -1, Item{}.MasterworkTier())
	assert.Equal(t, 2, Item{Masterwork: json.RawMessage(`2`)}.MasterworkTier())
	assert.Equal(t, 5, Item{Masterwork: json.RawMessage(`"5"`)}.MasterworkTier())
	assert.Equal(t, -1, Item{Masterwork: json.RawMessage(`"none"`)}.MasterworkTier())
}

func TestStatUnmarshalBothShapes(t *testing.T) {
	var item Item
	err := json.Unmarshal([]byte(`{
		"name": "Test",
		"stats": {
			"spell_power_percent": 12.5,
			"armor_flat": {"value": 2, "locked": true}
		}
	}`), &item)

	assert.NoError(t, err)
	assert.Equal(t, Stat{Value: 12.5}, item.Stats["spell_power_percent"])
	assert.Equal(t, Stat{Value: 2, Locked: true}, item.Stats["armor_flat"])
}
