package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FormatShort renders an item as a short multi-line text card for posting
// to the chat channel.
func FormatShort(item Item) string {
	var lines []string

	name := item.Name
	if mw := item.MasterworkTier(); mw != -1 {
		name = fmt.Sprintf("%s %d★", name, mw)
	}
	lines = append(lines, name)

	switch {
	case item.Type != "" && item.BaseItem != "":
		lines = append(lines, fmt.Sprintf("%s - %s", item.Type, item.BaseItem))
	case item.Type != "":
		lines = append(lines, item.Type)
	}

	if strings.Contains(strings.ToLower(item.Type), "charm") {
		var parts []string
		if item.Power > 0 {
			parts = append(parts, "Charm Power: "+strings.Repeat("★", item.Power))
		}
		if item.ClassName != "" {
			parts = append(parts, item.ClassName)
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, " - "))
		}
	}

	statKeys := make([]string, 0, len(item.Stats))
	for key := range item.Stats {
		statKeys = append(statKeys, key)
	}
	sort.Strings(statKeys)
	for _, key := range statKeys {
		stat := item.Stats[key]
		isPercent := strings.HasSuffix(key, "_percent")
		lines = append(lines, fmt.Sprintf(" └ %s %s", formatStatKey(key), formatStatValue(stat, isPercent)))
	}

	var meta []string
	for _, part := range []string{item.Region, item.Location, item.Tier} {
		if part != "" {
			meta = append(meta, part)
		}
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, " "))
	}

	return strings.Join(lines, "\n")
}

// formatStatKey turns a stat key like "spell_power_percent" into
// "Spell Power".
func formatStatKey(key string) string {
	for _, suffix := range []string{"_percent", "_flat"} {
		if strings.HasSuffix(key, suffix) {
			key = strings.TrimSuffix(key, suffix)
			break
		}
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func formatStatValue(stat Stat, isPercent bool) string {
	value := math.Round(stat.Value*100) / 100
	var out string
	if value > 0 {
		out = fmt.Sprintf("+ %s", trimFloat(value))
	} else {
		out = fmt.Sprintf("- %s", trimFloat(-value))
	}
	if isPercent {
		out += "%"
	}
	if stat.Locked {
		out += "🔒"
	}
	return out
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
