package guide

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jask/orderguide/internal/table"
)

var amountCleaner = strings.NewReplacer("$", "", ",", "")

// Sort returns a copy of t ordered by column. Columns whose non-empty cells
// all read as amounts ("$1,204.50", "12") compare numerically; anything else
// compares case-insensitively. Empty cells go last in either direction.
func Sort(t table.Table, column string, descending bool) (table.Table, error) {
	order, err := Order(t, column, descending)
	if err != nil {
		return table.Table{}, err
	}
	return t.Pick(order), nil
}

// Order returns the row positions of t in Sort order.
func Order(t table.Table, column string, descending bool) ([]int, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("sort: unknown column %q", column)
	}
	amounts, numeric := parseAmounts(t.Rows, idx)

	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := order[a], order[b]
		ea, eb := blank(t.Rows[ra][idx]), blank(t.Rows[rb][idx])
		if ea || eb {
			return !ea && eb
		}
		var cmp int
		if numeric {
			cmp = amounts[ra].Cmp(amounts[rb])
		} else {
			cmp = strings.Compare(strings.ToLower(t.Rows[ra][idx]), strings.ToLower(t.Rows[rb][idx]))
		}
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return order, nil
}

func parseAmounts(rows [][]string, idx int) ([]decimal.Decimal, bool) {
	amounts := make([]decimal.Decimal, len(rows))
	found := false
	for i, row := range rows {
		raw := strings.TrimSpace(amountCleaner.Replace(row[idx]))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, false
		}
		amounts[i] = d
		found = true
	}
	return amounts, found
}

func blank(cell string) bool { return strings.TrimSpace(cell) == "" }
