// Package table holds the in-memory tabular value shared by price sheets and
// the assembled order guide.
package table

import "slices"

// Table is a rectangular grid of string cells. Every row has exactly
// len(Columns) cells and column names are unique. A missing value is "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given columns.
func New(columns ...string) Table {
	return Table{Columns: slices.Clone(columns)}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of name, or -1.
func (t Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// HasColumn reports whether the table carries a column called name.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Value returns the cell at row i under column name, or "" when the column is absent.
func (t Table) Value(i int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][idx]
}

// Record returns row i keyed by column name.
func (t Table) Record(i int) map[string]string {
	out := make(map[string]string, len(t.Columns))
	for c, name := range t.Columns {
		out[name] = t.Rows[i][c]
	}
	return out
}

// Clone deep-copies the table so the copy can be mutated freely.
func (t Table) Clone() Table {
	out := Table{Columns: slices.Clone(t.Columns)}
	if t.Rows != nil {
		out.Rows = make([][]string, len(t.Rows))
		for i, row := range t.Rows {
			out.Rows[i] = slices.Clone(row)
		}
	}
	return out
}

// Head returns a copy holding at most the first n rows.
func (t Table) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return Table{Columns: t.Columns, Rows: t.Rows[:n]}.Clone()
}

// Pick returns a copy holding only the rows at the given indexes, in that order.
// Out-of-range indexes are ignored.
func (t Table) Pick(indexes []int) Table {
	out := Table{Columns: slices.Clone(t.Columns), Rows: make([][]string, 0, len(indexes))}
	for _, i := range indexes {
		if i < 0 || i >= len(t.Rows) {
			continue
		}
		out.Rows = append(out.Rows, slices.Clone(t.Rows[i]))
	}
	return out
}

// SetColumn assigns value to column name on every row, appending the column
// when the table does not have it yet. It mutates t in place.
func (t *Table) SetColumn(name, value string) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], value)
		}
		return
	}
	for i := range t.Rows {
		t.Rows[i][idx] = value
	}
}
