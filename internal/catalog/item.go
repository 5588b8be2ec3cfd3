package catalog

import (
	"encoding/json"
	"strconv"
)

// Item is one entry of the upstream item catalog. The upstream JSON is
// loosely typed; fields missing for a given item simply stay zero.
type Item struct {
	Name       string          `json:"name"`
	Masterwork json.RawMessage `json:"masterwork,omitempty"`
	Type       string          `json:"type,omitempty"`
	BaseItem   string          `json:"base_item,omitempty"`
	Power      int             `json:"power,omitempty"`
	ClassName  string          `json:"class_name,omitempty"`
	Region     string          `json:"region,omitempty"`
	Tier       string          `json:"tier,omitempty"`
	Location   string          `json:"location,omitempty"`
	Stats      map[string]Stat `json:"stats,omitempty"`
}

// MasterworkTier returns the masterwork level, or -1 when the item has
// none. Upstream serializes the field as either a number or a string.
func (i Item) MasterworkTier() int {
	if len(i.Masterwork) == 0 {
		return -1
	}
	var n int
	if err := json.Unmarshal(i.Masterwork, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(i.Masterwork, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return -1
}

// Stat is a single item stat. Upstream encodes it either as a bare number
// or as an object carrying a locked flag.
type Stat struct {
	Value  float64
	Locked bool
}

func (s *Stat) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		s.Value = v
		s.Locked = false
		return nil
	}
	var obj struct {
		Value  float64 `json:"value"`
		Locked bool    `json:"locked"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	s.Value = obj.Value
	s.Locked = obj.Locked
	return nil
}

func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Locked {
		return json.Marshal(s.Value)
	}
	return json.Marshal(struct {
		Value  float64 `json:"value"`
		Locked bool    `json:"locked"`
	}{s.Value, s.Locked})
}
