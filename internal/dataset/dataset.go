// Package dataset holds the immutable survey table the analytics endpoints read from.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	domainerrors "github.com/listenupapp/attendance-insights/internal/errors"
)

// Cell is a single value in the table. Missing cells carry an empty Value.
type Cell struct {
	Value   string
	Missing bool
}

// Text returns the cell value, rendering missing cells as the empty string.
func (c Cell) Text() string {
	if c.Missing {
		return ""
	}
	return c.Value
}

// Record is one row rendered as field name to value, missing values as "".
// It marshals to a JSON object with keys in column order.
type Record struct {
	columns []string
	values  []string
}

// Get returns the value of field and whether the column exists.
func (r Record) Get(field string) (string, bool) {
	for i, name := range r.columns {
		if name == field {
			return r.values[i], true
		}
	}
	return "", false
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.columns)
}

// MarshalJSON renders the record as a JSON object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dataset is an ordered, read-only table. It is safe for concurrent use
// because nothing mutates it after construction.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// New builds a dataset from column names and rows of cells.
// Every row must have exactly one cell per column and column names must be unique.
func New(columns []string, rows [][]Cell) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, domainerrors.DatasetUnavailable(fmt.Sprintf("duplicate column %q", name))
		}
		index[name] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, domainerrors.DatasetUnavailable(
				fmt.Sprintf("row %d has %d values, expected %d", i+1, len(row), len(columns)))
		}
	}

	return &Dataset{
		columns: slices.Clone(columns),
		index:   index,
		rows:    rows,
	}, nil
}

// FromStrings builds a dataset from plain string rows, treating "" as missing.
func FromStrings(columns []string, rows [][]string) (*Dataset, error) {
	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]Cell, len(row))
		for j, v := range row {
			cells[i][j] = Cell{Value: v, Missing: v == ""}
		}
	}
	return New(columns, cells)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Columns returns the column names in file order.
func (d *Dataset) Columns() []string {
	return slices.Clone(d.columns)
}

// HasColumn reports whether the dataset has the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Require returns a FieldNotFound error for the first missing column, if any.
func (d *Dataset) Require(fields ...string) error {
	for _, f := range fields {
		if !d.HasColumn(f) {
			return domainerrors.FieldNotFound(f)
		}
	}
	return nil
}

// Values returns a copy of one column's cells in record order.
func (d *Dataset) Values(field string) ([]Cell, error) {
	col, ok := d.index[field]
	if !ok {
		return nil, domainerrors.FieldNotFound(field)
	}

	out := make([]Cell, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[col]
	}
	return out, nil
}

// Records renders every row as a field to value mapping.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.rows))
	for i, row := range d.rows {
		values := make([]string, len(row))
		for j, cell := range row {
			values[j] = cell.Text()
		}
		out[i] = Record{columns: d.columns, values: values}
	}
	return out
}
