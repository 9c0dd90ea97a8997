// Package guide builds the combined order guide from per-vendor price sheets
// and derives filtered and sorted views of it.
package guide

import (
	"fmt"

	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/vendor"
)

// Column names written onto every guide row.
const (
	VendorColumn   = "Vendor"
	MinOrderColumn = "Min Order"
	CategoryColumn = "Category"
)

// UnknownVendorError means a stored price sheet points at a vendor the
// registry does not know. It indicates a broken invariant, not bad input.
type UnknownVendorError struct {
	VendorID int
}

func (e *UnknownVendorError) Error() string {
	return fmt.Sprintf("price sheet references unknown vendor %d", e.VendorID)
}

// VendorLookup resolves vendor IDs.
type VendorLookup interface {
	Get(id int) (vendor.Vendor, bool)
}

// SheetSource iterates stored price sheets in upload order.
type SheetSource interface {
	Each(fn func(vendorID int, sheet table.Table) error) error
}

// Assemble concatenates every stored sheet, tagging each row with its
// vendor's name and minimum order. The result's columns are the union of all
// sheet columns in first-seen order; cells a sheet did not have stay empty.
func Assemble(vendors VendorLookup, sheets SheetSource) (table.Table, error) {
	var parts []table.Table
	err := sheets.Each(func(vendorID int, sheet table.Table) error {
		v, ok := vendors.Get(vendorID)
		if !ok {
			return &UnknownVendorError{VendorID: vendorID}
		}
		part := sheet.Clone()
		part.SetColumn(VendorColumn, v.Name)
		part.SetColumn(MinOrderColumn, v.MinOrder)
		parts = append(parts, part)
		return nil
	})
	if err != nil {
		return table.Table{}, err
	}
	return concat(parts), nil
}

func concat(parts []table.Table) table.Table {
	out := table.Table{Rows: [][]string{}}
	pos := map[string]int{}
	for _, p := range parts {
		for _, c := range p.Columns {
			if _, ok := pos[c]; !ok {
				pos[c] = len(out.Columns)
				out.Columns = append(out.Columns, c)
			}
		}
	}
	for _, p := range parts {
		for _, row := range p.Rows {
			merged := make([]string, len(out.Columns))
			for i, c := range p.Columns {
				merged[pos[c]] = row[i]
			}
			out.Rows = append(out.Rows, merged)
		}
	}
	return out
}

// Categories lists the distinct non-empty Category values in first-seen order.
func Categories(t table.Table) []string {
	idx := t.ColumnIndex(CategoryColumn)
	if idx < 0 {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, row := range t.Rows {
		c := row[idx]
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
