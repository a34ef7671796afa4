package dataset

import (
	"fmt"
	"strings"
)

// Cell is a single table value. Valid is false when the value is missing.
type Cell struct {
	Value string
	Valid bool
}

// Str returns a present cell holding s.
func Str(s string) Cell { return Cell{Value: s, Valid: true} }

// Null returns a missing cell.
func Null() Cell { return Cell{} }

// Table is an immutable, column-major record table. Every transform returns a
// new Table; the receiver is never modified.
type Table struct {
	columns []string
	index   map[string]int
	data    [][]Cell // data[col][row]
	rows    int
}

// New builds a table from row-major cells. Column names must be unique and
// non-empty, and every row must have exactly len(columns) cells.
func New(columns []string, rows [][]Cell) (*Table, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("column %d has an empty name", i+1)
		}
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		idx[c] = i
	}
	data := make([][]Cell, len(columns))
	for j := range data {
		data[j] = make([]Cell, len(rows))
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i+1, len(r), len(columns))
		}
		for j, c := range r {
			data[j][i] = c
		}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, index: idx, data: data, rows: len(rows)}, nil
}

// FromStrings is a convenience for tests and fixtures: empty strings become
// missing cells.
func FromStrings(columns []string, rows [][]string) (*Table, error) {
	cells := make([][]Cell, len(rows))
	for i, r := range rows {
		cells[i] = make([]Cell, len(r))
		for j, v := range r {
			if v == "" {
				cells[i][j] = Null()
			} else {
				cells[i][j] = Str(v)
			}
		}
	}
	return New(columns, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether name is a column of t.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]Cell, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]Cell, t.rows)
	copy(out, t.data[j])
	return out, nil
}

// At returns the cell at row i of the named column.
func (t *Table) At(i int, name string) (Cell, bool) {
	j, ok := t.index[name]
	if !ok || i < 0 || i >= t.rows {
		return Cell{}, false
	}
	return t.data[j][i], true
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]string, 0, len(names))
	data := make([][]Cell, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		j, ok := t.index[n]
		if !ok {
			return nil, fmt.Errorf("column %q not found", n)
		}
		if seen[n] {
			return nil, fmt.Errorf("column %q selected twice", n)
		}
		seen[n] = true
		cols = append(cols, n)
		data = append(data, t.data[j])
	}
	return t.with(cols, data, t.rows)
}

// DropColumns removes the named columns. Names that are not present are
// returned so callers can report them.
func (t *Table) DropColumns(names ...string) (*Table, []string) {
	drop := make(map[string]bool, len(names))
	var absent []string
	for _, n := range names {
		if !t.HasColumn(n) {
			absent = append(absent, n)
			continue
		}
		drop[n] = true
	}
	cols := make([]string, 0, len(t.columns))
	data := make([][]Cell, 0, len(t.columns))
	for j, c := range t.columns {
		if drop[c] {
			continue
		}
		cols = append(cols, c)
		data = append(data, t.data[j])
	}
	nt, _ := t.with(cols, data, t.rows)
	return nt, absent
}

// Filter keeps rows for which keep returns true, preserving order.
func (t *Table) Filter(keep func(row int) bool) *Table {
	var kept []int
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			kept = append(kept, i)
		}
	}
	data := make([][]Cell, len(t.columns))
	for j := range t.columns {
		col := make([]Cell, len(kept))
		for k, i := range kept {
			col[k] = t.data[j][i]
		}
		data[j] = col
	}
	nt, _ := t.with(t.columns, data, len(kept))
	return nt
}

// MapColumn returns a table where every cell of the named column is replaced
// by fn(cell).
func (t *Table) MapColumn(name string, fn func(Cell) Cell) (*Table, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	col := make([]Cell, t.rows)
	for i, c := range t.data[j] {
		col[i] = fn(c)
	}
	data := make([][]Cell, len(t.data))
	copy(data, t.data)
	data[j] = col
	return t.with(t.columns, data, t.rows)
}

// Records returns the header followed by each row as strings. Missing cells
// are rendered as empty strings.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, t.rows+1)
	out = append(out, t.Columns())
	for i := 0; i < t.rows; i++ {
		rec := make([]string, len(t.columns))
		for j := range t.columns {
			if c := t.data[j][i]; c.Valid {
				rec[j] = c.Value
			}
		}
		out = append(out, rec)
	}
	return out
}

// Column slices are shared between tables; they are never written after
// construction.
func (t *Table) with(cols []string, data [][]Cell, rows int) (*Table, error) {
	idx := make(map[string]int, len(cols))
	for j, c := range cols {
		idx[c] = j
	}
	c := make([]string, len(cols))
	copy(c, cols)
	return &Table{columns: c, index: idx, data: data, rows: rows}, nil
}
