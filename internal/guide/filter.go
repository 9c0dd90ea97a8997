package guide

import (
	"strings"

	"github.com/jask/orderguide/internal/table"
)

// All is the selector value that disables the vendor or category filter.
const All = "All"

// Criteria narrows the guide. Zero values disable each predicate.
type Criteria struct {
	Search   string
	Vendor   string
	Category string
}

// Active reports whether any predicate would drop rows.
func (c Criteria) Active() bool {
	return c.Search != "" || enabled(c.Vendor) || enabled(c.Category)
}

// Filter returns the rows of t that satisfy every enabled predicate. The
// input table is never modified.
func Filter(t table.Table, c Criteria) table.Table {
	return t.Pick(Match(t, c))
}

// Match returns the positions of the rows of t that satisfy c, in order.
func Match(t table.Table, c Criteria) []int {
	vendorIdx, categoryIdx := -1, -1
	if enabled(c.Vendor) {
		vendorIdx = t.ColumnIndex(VendorColumn)
	}
	if enabled(c.Category) {
		// a guide without a Category column ignores the category filter
		categoryIdx = t.ColumnIndex(CategoryColumn)
	}
	query := strings.ToLower(c.Search)

	out := []int{}
	for i, row := range t.Rows {
		if !matchesSearch(row, query) {
			continue
		}
		if enabled(c.Vendor) && (vendorIdx < 0 || row[vendorIdx] != c.Vendor) {
			continue
		}
		if categoryIdx >= 0 && row[categoryIdx] != c.Category {
			continue
		}
		out = append(out, i)
	}
	return out
}

func enabled(selector string) bool {
	return selector != "" && selector != All
}

func matchesSearch(row []string, query string) bool {
	if query == "" {
		return true
	}
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), query) {
			return true
		}
	}
	return false
}
