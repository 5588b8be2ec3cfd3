package catalog

import "strings"

type indexEntry struct {
	item      Item
	lowerName string
}

// Index is an in-memory substring-search index over catalog items.
// Intermediate masterwork tiers are excluded so only the final tier (or
// non-masterwork items) show up in search results.
type Index struct {
	entries []indexEntry
}

// BuildIndex builds the search index from a fetched catalog. When an item
// carries no name, the upstream key is used.
func BuildIndex(items map[string]Item) *Index {
	idx := &Index{}
	for key, item := range items {
		mw := item.MasterworkTier()
		if mw != -1 && mw < 4 {
			continue
		}
		name := item.Name
		if name == "" {
			name = key
		}
		idx.entries = append(idx.entries, indexEntry{
			item:      item,
			lowerName: strings.ToLower(name),
		})
	}
	return idx
}

// Search returns every indexed item whose name contains the query,
// case-insensitively.
func (i *Index) Search(query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	var results []Item
	for _, e := range i.entries {
		if strings.Contains(e.lowerName, q) {
			results = append(results, e.item)
		}
	}
	return results
}

// Len is the number of searchable items.
func (i *Index) Len() int {
	return len(i.entries)
}
