// Package search reduces a catalog to the items whose title contains a query.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"arcade/internal/catalog"
)

// Matches reports whether needle occurs in haystack after Unicode case
// folding of both. The empty needle matches everything.
func Matches(haystack, needle string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

// Filter returns the items whose title matches query, in catalog order.
// Items without a title never match, not even the empty query.
func Filter(items []catalog.Item, query string) []catalog.Item {
	fold := cases.Fold()
	needle := fold.String(query)
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if !it.HasTitle() {
			continue
		}
		if strings.Contains(fold.String(it.Title), needle) {
			out = append(out, it)
		}
	}
	return out
}
