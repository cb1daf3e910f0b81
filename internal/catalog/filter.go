package catalog

import (
	"iter"
	"strings"
)

// AllCategories is the category value that disables category filtering.
const AllCategories = "all"

// Item is anything the storefront can search: products and rental items.
type Item interface {
	searchFields() (name, description, category string)
}

// FilterItems yields the items whose name or description contains query
// (case-insensitive) and whose category equals category. An empty query and
// the "all" category match everything. The returned sequence is lazy and can
// be ranged over more than once; input order is preserved.
func FilterItems[T Item](items []T, query, category string) iter.Seq[T] {
	needle := strings.ToLower(query)
	return func(yield func(T) bool) {
		for _, item := range items {
			if !matches(item, needle, category) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

func matches(item Item, needle, category string) bool {
	name, description, itemCategory := item.searchFields()
	if category != AllCategories && itemCategory != category {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), needle) ||
		strings.Contains(strings.ToLower(description), needle)
}
